// Package storage holds the persistent super column backends.
//
// Pebble and Badger are ordered key-value engines: each cell is one key built from
// keyspace/row/family/super/column and a value carrying the write time. Manager implements the
// backend contract on top of either engine. SQLite stores one table row per cell.
package storage

import (
	"context"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"sync"
	"time"
)

// mutation is one key write or delete inside an atomic batch.
type mutation struct {
	key    []byte
	value  []byte
	delete bool
}

// engine is the ordered key-value store underneath a Manager.
type engine interface {
	// get returns nil, nil when the key is missing.
	get(key []byte) ([]byte, error)
	// write applies every mutation atomically.
	write(muts []mutation) error
	// scan visits every key starting with prefix in key order.
	scan(prefix []byte, fn func(key, value []byte) error) error
	close() error
}

// Manager is a backend over an ordered key-value engine.
type Manager struct {
	db   engine
	name string
	// writes are read-modify-write for last-write-wins
	mutex sync.Mutex
	now   func() time.Time
}

func newManager(db engine, name string) *Manager {
	return &Manager{
		db:   db,
		name: name,
		now:  time.Now,
	}
}

func (m *Manager) Start() error {
	log.Info().Str("engine", m.name).Msg("storage engine open")
	return nil
}

func (m *Manager) Stop() error {
	return m.db.close()
}

func (m *Manager) Name() string {
	return m.name
}

// Insert writes cells with last-write-wins semantics.
func (m *Manager) Insert(_ context.Context, keyspace, rowKey, family, super string,
	cells []litetable.Cell) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	muts := make([]mutation, 0, len(cells))
	for _, cell := range cells {
		key := cellKey{keyspace, rowKey, family, super, cell.Name}.bytes()

		existing, err := m.db.get(key)
		if err != nil {
			return fmt.Errorf("%s: read %s.%s: %w", m.name, super, cell.Name, err)
		}
		if existing != nil {
			_, ts, err := decodeValue(existing)
			if err != nil {
				return err
			}
			if ts > cell.Timestamp {
				continue
			}
		}
		muts = append(muts, mutation{key: key, value: encodeValue(cell)})
	}

	if len(muts) == 0 {
		return nil
	}
	if err := m.db.write(muts); err != nil {
		return fmt.Errorf("%s: write: %w", m.name, err)
	}
	return nil
}

// Delete removes every cell under path written at or before timestamp. A zero timestamp is
// taken as now.
func (m *Manager) Delete(_ context.Context, keyspace, rowKey string, path litetable.ColumnPath,
	timestamp int64) error {
	if timestamp == 0 {
		timestamp = m.now().UnixNano()
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var muts []mutation
	err := m.db.scan(pathPrefix(keyspace, rowKey, path), func(key, value []byte) error {
		_, ts, err := decodeValue(value)
		if err != nil {
			return err
		}
		if ts <= timestamp {
			muts = append(muts, mutation{key: append([]byte(nil), key...), delete: true})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: scan: %w", m.name, err)
	}

	if len(muts) == 0 {
		return nil
	}
	if err := m.db.write(muts); err != nil {
		return fmt.Errorf("%s: delete: %w", m.name, err)
	}
	return nil
}

// Slice reads one row. An empty superNames returns every super column of the family.
func (m *Manager) Slice(_ context.Context, keyspace, rowKey, family string,
	superNames []string) ([]litetable.SuperSlice, error) {
	var prefixes [][]byte
	if len(superNames) == 0 {
		prefixes = append(prefixes, encodeKey(keyspace, rowKey, family))
	} else {
		seen := make(map[string]struct{}, len(superNames))
		for _, name := range superNames {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			prefixes = append(prefixes, encodeKey(keyspace, rowKey, family, name))
		}
	}

	index := make(map[string]int)
	var result []litetable.SuperSlice
	for _, prefix := range prefixes {
		err := m.db.scan(prefix, func(key, value []byte) error {
			k, err := decodeKey(key)
			if err != nil {
				return err
			}
			v, ts, err := decodeValue(value)
			if err != nil {
				return err
			}

			i, ok := index[k.super]
			if !ok {
				i = len(result)
				index[k.super] = i
				result = append(result, litetable.SuperSlice{Name: k.super})
			}
			result[i].Columns = append(result[i].Columns,
				litetable.Cell{Name: k.column, Value: v, Timestamp: ts})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", m.name, err)
		}
	}

	litetable.SortSlices(result)
	return result, nil
}
