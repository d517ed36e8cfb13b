// Package shard_storage is an in-memory super column backend.
//
// Rows are spread over a fixed number of shards by an FNV-1a hash of keyspace and row key. Each
// shard has its own lock, so writers to different rows rarely contend. Every mutation is
// appended to the write-ahead log before it touches memory, and the log is replayed on Start.
package shard_storage

import (
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"hash/fnv"
	"sync"
)

// family maps super column -> column -> cell.
type family map[string]map[string]litetable.Cell

// row maps family name -> family.
type row map[string]family

// shard is a manager for a single shard of in-memory rows.
type shard struct {
	data  map[string]row // rowID -> row
	mutex sync.RWMutex
}

// initializeDataShards creates count empty shards.
func initializeDataShards(count int) ([]*shard, error) {
	if count <= 0 {
		return nil, fmt.Errorf("shard count must be greater than 0")
	}

	shards := make([]*shard, count)
	for i := 0; i < count; i++ {
		shards[i] = &shard{
			data:  make(map[string]row),
			mutex: sync.RWMutex{},
		}
	}

	return shards, nil
}

// rowID joins keyspace and row key. Keyspaces may not contain NUL, so the join is unambiguous.
func rowID(keyspace, rowKey string) string {
	return keyspace + "\x00" + rowKey
}

// getShardIndex determines which shard a particular row ID belongs to.
func (m *Manager) getShardIndex(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(m.shardCount))
}

func (m *Manager) getShard(id string) *shard {
	return m.shardMap[m.getShardIndex(id)]
}

// insert applies cells with last-write-wins semantics. Callers hold the shard lock.
func (s *shard) insert(id, familyName, super string, cells []litetable.Cell) {
	r, ok := s.data[id]
	if !ok {
		r = make(row)
		s.data[id] = r
	}
	f, ok := r[familyName]
	if !ok {
		f = make(family)
		r[familyName] = f
	}
	cols, ok := f[super]
	if !ok {
		cols = make(map[string]litetable.Cell)
		f[super] = cols
	}

	for _, cell := range cells {
		if existing, ok := cols[cell.Name]; ok && existing.Timestamp > cell.Timestamp {
			continue
		}
		cell.Value = append([]byte(nil), cell.Value...)
		cols[cell.Name] = cell
	}
}

// remove drops every cell under path written at or before timestamp and prunes empty
// containers. Callers hold the shard lock.
func (s *shard) remove(id string, path litetable.ColumnPath, timestamp int64) {
	r, ok := s.data[id]
	if !ok {
		return
	}
	f, ok := r[path.Family]
	if !ok {
		return
	}

	for superName, cols := range f {
		if path.Super != "" && superName != path.Super {
			continue
		}
		for colName, cell := range cols {
			if path.Column != "" && colName != path.Column {
				continue
			}
			if cell.Timestamp <= timestamp {
				delete(cols, colName)
			}
		}
		if len(cols) == 0 {
			delete(f, superName)
		}
	}

	if len(f) == 0 {
		delete(r, path.Family)
	}
	if len(r) == 0 {
		delete(s.data, id)
	}
}
