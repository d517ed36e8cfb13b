package shard_storage

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/litetable/litetable-mapper/internal/wal"
)

// Insert logs and applies a write to one super column.
func (m *Manager) Insert(_ context.Context, keyspace, rowKey, familyName, super string,
	cells []litetable.Cell) error {
	e := wal.NewEntry(litetable.OperationInsert, keyspace, rowKey,
		litetable.ColumnPath{Family: familyName, Super: super})
	e.Cells = cells

	if err := m.writeAhead.Apply(e); err != nil {
		return err
	}
	return m.apply(e)
}

// Delete logs and applies a delete. A zero timestamp is taken as now, so the cutoff recorded in
// the WAL is the one replay will use.
func (m *Manager) Delete(_ context.Context, keyspace, rowKey string, path litetable.ColumnPath,
	timestamp int64) error {
	if timestamp == 0 {
		timestamp = m.now().UnixNano()
	}
	e := wal.NewEntry(litetable.OperationDelete, keyspace, rowKey, path)
	e.Timestamp = timestamp

	if err := m.writeAhead.Apply(e); err != nil {
		return err
	}
	return m.apply(e)
}
