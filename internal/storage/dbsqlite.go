package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS cells (
	keyspace TEXT NOT NULL,
	row_key  TEXT NOT NULL,
	family   TEXT NOT NULL,
	super    TEXT NOT NULL,
	name     TEXT NOT NULL,
	value    BLOB NOT NULL,
	ts       INTEGER NOT NULL,
	PRIMARY KEY (keyspace, row_key, family, super, name)
)`

const sqliteUpsert = `INSERT INTO cells (keyspace, row_key, family, super, name, value, ts)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (keyspace, row_key, family, super, name)
DO UPDATE SET value = excluded.value, ts = excluded.ts WHERE excluded.ts >= cells.ts`

// SQLite is a backend storing one table row per cell.
type SQLite struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLite opens (or creates) the database file at path.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; sqlite serialises writes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cells table: %w", err)
	}

	return &SQLite{db: db, path: path, now: time.Now}, nil
}

func (s *SQLite) Start() error {
	log.Info().Str("path", s.path).Msg("sqlite storage open")
	return nil
}

func (s *SQLite) Stop() error {
	return s.db.Close()
}

func (s *SQLite) Name() string {
	return "SQLite Storage"
}

// Insert upserts cells; a stored cell with a newer timestamp is kept.
func (s *SQLite) Insert(ctx context.Context, keyspace, rowKey, family, super string,
	cells []litetable.Cell) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsert)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, cell := range cells {
		value := cell.Value
		if value == nil {
			value = []byte{}
		}
		if _, err = stmt.ExecContext(ctx, keyspace, rowKey, family, super, cell.Name, value,
			cell.Timestamp); err != nil {
			return fmt.Errorf("upsert %s.%s: %w", super, cell.Name, err)
		}
	}

	return tx.Commit()
}

// Delete removes every cell under path written at or before timestamp. A zero timestamp is
// taken as now.
func (s *SQLite) Delete(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath,
	timestamp int64) error {
	if timestamp == 0 {
		timestamp = s.now().UnixNano()
	}

	query := `DELETE FROM cells WHERE keyspace = ? AND row_key = ? AND family = ? AND ts <= ?`
	args := []any{keyspace, rowKey, path.Family, timestamp}
	if path.Super != "" {
		query += ` AND super = ?`
		args = append(args, path.Super)
	}
	if path.Column != "" {
		query += ` AND name = ?`
		args = append(args, path.Column)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Slice reads one row. An empty superNames returns every super column of the family.
func (s *SQLite) Slice(ctx context.Context, keyspace, rowKey, family string,
	superNames []string) (_ []litetable.SuperSlice, err error) {
	query := `SELECT super, name, value, ts FROM cells WHERE keyspace = ? AND row_key = ? AND family = ?`
	args := []any{keyspace, rowKey, family}
	if len(superNames) > 0 {
		query += ` AND super IN (?` + strings.Repeat(`, ?`, len(superNames)-1) + `)`
		for _, name := range superNames {
			args = append(args, name)
		}
	}
	query += ` ORDER BY super, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select cells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []litetable.SuperSlice
	for rows.Next() {
		var (
			super string
			cell  litetable.Cell
		)
		if err := rows.Scan(&super, &cell.Name, &cell.Value, &cell.Timestamp); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if n := len(result); n == 0 || result[n-1].Name != super {
			result = append(result, litetable.SuperSlice{Name: super})
		}
		last := &result[len(result)-1]
		last.Columns = append(last.Columns, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
