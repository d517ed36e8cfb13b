// Package entity maps rows of a super column family onto in-memory objects.
//
// A SuperColumnFamily holds one row: an ordered set of named SuperColumns, each of which holds
// an ordered set of Columns. Containers are populated from literal maps or JSON, mutated in
// place, flushed with Save and hydrated with Load. All store traffic goes through the Store
// interface, so the graph itself never touches the network.
//
// Entity graphs are not safe for concurrent use. A row and its super columns must be owned by a
// single goroutine at a time.
package entity

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/litetable"
)

//go:generate mockgen -destination=store_mock.go -package=entity -source=store.go

// Store is the store client the entity graph saves through and loads from. Every call returns
// its own error, so failures are never read back from shared state.
type Store interface {
	// ResolveConsistency returns the level that will actually be used for a request.
	ResolveConsistency(requested litetable.Consistency) litetable.Consistency
	// DeleteColumnPath removes everything under path written at or before timestamp. A zero
	// timestamp means now.
	DeleteColumnPath(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath,
		timestamp int64, level litetable.Consistency) error
	// GetSlice reads the super columns of one row.
	GetSlice(ctx context.Context, keyspace, rowKey, family string,
		predicate *litetable.SlicePredicate, level litetable.Consistency) ([]litetable.SuperSlice, error)
	// GetSliceMulti reads the named super columns of several rows. Rows without data are
	// absent from the result.
	GetSliceMulti(ctx context.Context, keyspace string, rowKeys []string, family string,
		superNames []string, predicate *litetable.SlicePredicate,
		level litetable.Consistency) (map[string][]litetable.SuperSlice, error)
	// Insert writes cells under path.Family / path.Super.
	Insert(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath,
		cells []litetable.Cell, level litetable.Consistency) error
}
