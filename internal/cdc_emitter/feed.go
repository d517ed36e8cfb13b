package cdc_emitter

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/litetable"
)

type backend interface {
	Insert(ctx context.Context, keyspace, rowKey, family, super string, cells []litetable.Cell) error
	Delete(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath, timestamp int64) error
	Slice(ctx context.Context, keyspace, rowKey, family string, superNames []string) ([]litetable.SuperSlice, error)
}

type emitter interface {
	Emit(e *Event)
}

// Feed wraps a backend and emits an event for every mutation the backend accepts.
type Feed struct {
	backend backend
	emitter emitter
}

func NewFeed(b backend, e emitter) *Feed {
	return &Feed{backend: b, emitter: e}
}

func (f *Feed) Insert(ctx context.Context, keyspace, rowKey, family, super string,
	cells []litetable.Cell) error {
	if err := f.backend.Insert(ctx, keyspace, rowKey, family, super, cells); err != nil {
		return err
	}
	f.emitter.Emit(&Event{
		Operation: litetable.OperationInsert,
		Keyspace:  keyspace,
		RowKey:    rowKey,
		Path:      litetable.ColumnPath{Family: family, Super: super},
		Cells:     cells,
	})
	return nil
}

func (f *Feed) Delete(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath,
	timestamp int64) error {
	if err := f.backend.Delete(ctx, keyspace, rowKey, path, timestamp); err != nil {
		return err
	}
	f.emitter.Emit(&Event{
		Operation: litetable.OperationDelete,
		Keyspace:  keyspace,
		RowKey:    rowKey,
		Path:      path,
		Timestamp: timestamp,
	})
	return nil
}

func (f *Feed) Slice(ctx context.Context, keyspace, rowKey, family string,
	superNames []string) ([]litetable.SuperSlice, error) {
	return f.backend.Slice(ctx, keyspace, rowKey, family, superNames)
}
