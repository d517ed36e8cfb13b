package storage

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/client"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

var (
	_ client.Backend = (*Manager)(nil)
	_ client.Backend = (*SQLite)(nil)
)

type backend interface {
	client.Backend
	Start() error
	Stop() error
	Name() string
}

// backends opens every persistent backend in a fresh directory.
func backends(t *testing.T) map[string]func(t *testing.T) backend {
	return map[string]func(t *testing.T) backend{
		"pebble": func(t *testing.T) backend {
			m, err := NewPebble(filepath.Join(t.TempDir(), "pebble"))
			require.NoError(t, err)
			return m
		},
		"badger": func(t *testing.T) backend {
			m, err := NewBadger("")
			require.NoError(t, err)
			return m
		},
		"sqlite": func(t *testing.T) backend {
			s, err := NewSQLite(filepath.Join(t.TempDir(), "cells.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func open(t *testing.T, newBackend func(t *testing.T) backend) backend {
	t.Helper()
	b := newBackend(t)
	require.NoError(t, b.Start())
	t.Cleanup(func() { _ = b.Stop() })
	return b
}

func cell(name, value string, ts int64) litetable.Cell {
	return litetable.Cell{Name: name, Value: []byte(value), Timestamp: ts}
}

// flatten lists super/column=value for easy comparison.
func flatten(supers []litetable.SuperSlice) []string {
	var out []string
	for _, sc := range supers {
		for _, c := range sc.Columns {
			out = append(out, sc.Name+"/"+c.Name+"="+string(c.Value))
		}
	}
	return out
}

func TestBackend_InsertAndSlice(t *testing.T) {
	ctx := context.Background()

	for name, newBackend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t, newBackend)

			require.NoError(t, b.Insert(ctx, "ks", "row-1", "Users", "settings",
				[]litetable.Cell{cell("theme", "dark", 10)}))
			require.NoError(t, b.Insert(ctx, "ks", "row-1", "Users", "profile",
				[]litetable.Cell{cell("name", "alice", 10), cell("age", "30", 10)}))
			require.NoError(t, b.Insert(ctx, "ks", "row-1", "Users", "profile",
				[]litetable.Cell{cell("name", "bob", 5), cell("age", "31", 11)}))
			// same key, other family and other row
			require.NoError(t, b.Insert(ctx, "ks", "row-1", "Groups", "profile",
				[]litetable.Cell{cell("name", "admins", 10)}))
			require.NoError(t, b.Insert(ctx, "ks", "row-10", "Users", "profile",
				[]litetable.Cell{cell("name", "carol", 10)}))

			got, err := b.Slice(ctx, "ks", "row-1", "Users", nil)
			require.NoError(t, err)
			require.Equal(t, []string{"profile/age=31", "profile/name=alice", "settings/theme=dark"},
				flatten(got))
			require.Equal(t, int64(11), got[0].Columns[0].Timestamp)

			got, err = b.Slice(ctx, "ks", "row-1", "Users", []string{"settings", "missing"})
			require.NoError(t, err)
			require.Equal(t, []string{"settings/theme=dark"}, flatten(got))

			got, err = b.Slice(ctx, "ks", "nobody", "Users", nil)
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}

func TestBackend_Delete(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		path      litetable.ColumnPath
		timestamp int64
		want      []string
	}{
		"whole family": {
			path:      litetable.ColumnPath{Family: "Users"},
			timestamp: 100,
		},
		"one super column": {
			path:      litetable.ColumnPath{Family: "Users", Super: "profile"},
			timestamp: 100,
			want:      []string{"settings/theme=dark"},
		},
		"one column": {
			path:      litetable.ColumnPath{Family: "Users", Super: "profile", Column: "age"},
			timestamp: 100,
			want:      []string{"profile/name=alice", "settings/theme=dark"},
		},
		"newer cells survive an older delete": {
			path:      litetable.ColumnPath{Family: "Users"},
			timestamp: 15,
			want:      []string{"profile/name=alice"},
		},
		"zero timestamp means now": {
			path: litetable.ColumnPath{Family: "Users", Super: "settings"},
			want: []string{"profile/age=30", "profile/name=alice"},
		},
	}

	for backendName, newBackend := range backends(t) {
		for name, tc := range tests {
			t.Run(backendName+"/"+name, func(t *testing.T) {
				b := open(t, newBackend)

				require.NoError(t, b.Insert(ctx, "ks", "r", "Users", "profile",
					[]litetable.Cell{cell("name", "alice", 20), cell("age", "30", 10)}))
				require.NoError(t, b.Insert(ctx, "ks", "r", "Users", "settings",
					[]litetable.Cell{cell("theme", "dark", 10)}))
				require.NoError(t, b.Delete(ctx, "ks", "r", tc.path, tc.timestamp))

				got, err := b.Slice(ctx, "ks", "r", "Users", nil)
				require.NoError(t, err)
				require.Equal(t, tc.want, flatten(got))
			})
		}
	}
}

func TestPebble_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "pebble")

	m, err := NewPebble(dir)
	require.NoError(t, err)
	require.NoError(t, m.Insert(ctx, "ks", "r", "Users", "profile",
		[]litetable.Cell{cell("name", "alice", 1)}))
	require.NoError(t, m.Stop())

	reopened, err := NewPebble(dir)
	require.NoError(t, err)
	defer reopened.Stop()

	got, err := reopened.Slice(ctx, "ks", "r", "Users", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"profile/name=alice"}, flatten(got))
	require.Equal(t, "Pebble Storage", reopened.Name())
}

func TestNewSQLite_RequiresPath(t *testing.T) {
	_, err := NewSQLite("")
	require.Error(t, err)
}
