// Package wal is an append-only JSON-lines log of backend mutations.
package wal

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	defaultWalDirectory = "wal"
	defaultWALFile      = "wal.log"
)

// Entry represents a Write-Ahead Log entry for a single backend mutation.
type Entry struct {
	ID        uuid.UUID            `json:"id"`
	Operation litetable.Operation  `json:"operation"`
	Keyspace  string               `json:"keyspace"`
	RowKey    string               `json:"row_key"`
	Path      litetable.ColumnPath `json:"path"`
	Cells     []litetable.Cell     `json:"cells,omitempty"`
	// Timestamp is the delete cutoff for delete entries.
	Timestamp int64     `json:"timestamp,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}

// NewEntry returns an entry with a fresh id.
func NewEntry(op litetable.Operation, keyspace, rowKey string, path litetable.ColumnPath) *Entry {
	return &Entry{
		ID:        uuid.New(),
		Operation: op,
		Keyspace:  keyspace,
		RowKey:    rowKey,
		Path:      path,
		LoggedAt:  time.Now().UTC(),
	}
}

type Manager struct {
	mu      sync.RWMutex
	walFile *os.File
	path    string
}

type Config struct {
	// Path where the WAL directory will be saved
	Path string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("data directory cannot be empty"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	walPath := filepath.Join(cfg.Path, defaultWalDirectory, defaultWALFile)
	if err := os.MkdirAll(filepath.Dir(walPath), 0750); err != nil {
		return nil, errors.New("failed to create WAL directory: " + err.Error())
	}

	file, err := os.OpenFile(walPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, errors.New("failed to open WAL file: " + err.Error())
	}

	return &Manager{
		walFile: file,
		path:    walPath,
	}, nil
}

// Apply appends the entry to the WAL file as one JSON line. A mutation is only applied to
// memory after Apply returns nil.
func (m *Manager) Apply(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if _, err = m.walFile.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write to WAL: %w", err)
	}

	return nil
}

// Close flushes and closes the WAL file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.walFile.Sync(); err != nil {
		return err
	}
	return m.walFile.Close()
}

// FilePath returns the location of the WAL file.
func (m *Manager) FilePath() string {
	return m.path
}
