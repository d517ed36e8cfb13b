package shard_storage

import (
	"context"
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/litetable/litetable-mapper/internal/wal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func TestGetShardIndex(t *testing.T) {
	tests := map[string]struct {
		shardCount int
		rowKeys    []string
	}{
		"single shard returns zero index": {
			shardCount: 1,
			rowKeys:    []string{"user:1", "user:2", "user:3"},
		},
		"multiple shards distribute keys": {
			shardCount: 8,
			rowKeys:    []string{"user:1", "user:2", "user:3", "keyA", "keyB", "keyC", "o"},
		},
		"large number of shards": {
			shardCount: 64,
			rowKeys:    []string{"user:1", "user:2", "post:10", "post:11", "comment:5"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			manager := &Manager{shardCount: tc.shardCount}

			for _, key := range tc.rowKeys {
				id := rowID("ks", key)
				first := manager.getShardIndex(id)
				require.GreaterOrEqual(t, first, 0)
				require.Less(t, first, tc.shardCount)

				for i := 0; i < 100; i++ {
					require.Equal(t, first, manager.getShardIndex(id))
				}
			}
		})
	}
}

func TestGetShardIndex_Distribution(t *testing.T) {
	manager := &Manager{shardCount: 8}
	counts := make([]int, 8)
	for i := 0; i < 8000; i++ {
		counts[manager.getShardIndex(rowID("ks", fmt.Sprintf("row:%d", i)))]++
	}
	for i, c := range counts {
		require.Greater(t, c, 500, "shard %d is underused", i)
	}
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := map[string]struct {
		cfg       *Config
		wantErr   bool
		wantCount int
	}{
		"missing WAL": {
			cfg:     &Config{ShardCount: 2},
			wantErr: true,
		},
		"too many shards": {
			cfg:     &Config{ShardCount: 1000, WAL: NewMockwriteAhead(ctrl)},
			wantErr: true,
		},
		"default shard count": {
			cfg:       &Config{WAL: NewMockwriteAhead(ctrl)},
			wantCount: defaultShardCount,
		},
		"explicit shard count": {
			cfg:       &Config{ShardCount: 16, WAL: NewMockwriteAhead(ctrl)},
			wantCount: 16,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := New(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, got.shardMap, tc.wantCount)
			require.Equal(t, "Shard Storage", got.Name())
		})
	}
}

func newTestManager(t *testing.T) (*Manager, *MockwriteAhead) {
	t.Helper()
	w := NewMockwriteAhead(gomock.NewController(t))
	m, err := New(&Config{ShardCount: 4, WAL: w})
	require.NoError(t, err)
	return m, w
}

func cell(name, value string, ts int64) litetable.Cell {
	return litetable.Cell{Name: name, Value: []byte(value), Timestamp: ts}
}

func TestManager_InsertAndSlice(t *testing.T) {
	ctx := context.Background()
	m, w := newTestManager(t)
	w.EXPECT().Apply(gomock.Any()).Return(nil).Times(3)

	require.NoError(t, m.Insert(ctx, "ks", "row-1", "Users", "profile",
		[]litetable.Cell{cell("name", "alice", 10), cell("age", "30", 10)}))
	require.NoError(t, m.Insert(ctx, "ks", "row-1", "Users", "settings",
		[]litetable.Cell{cell("theme", "dark", 10)}))
	// an older write loses to the stored cell
	require.NoError(t, m.Insert(ctx, "ks", "row-1", "Users", "profile",
		[]litetable.Cell{cell("name", "bob", 5)}))

	got, err := m.Slice(ctx, "ks", "row-1", "Users", nil)
	require.NoError(t, err)
	require.Equal(t, []litetable.SuperSlice{
		{Name: "profile", Columns: []litetable.Cell{cell("age", "30", 10), cell("name", "alice", 10)}},
		{Name: "settings", Columns: []litetable.Cell{cell("theme", "dark", 10)}},
	}, got)

	got, err = m.Slice(ctx, "ks", "row-1", "Users", []string{"settings", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "settings", got[0].Name)

	got, err = m.Slice(ctx, "other", "row-1", "Users", nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestManager_Slice_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m, w := newTestManager(t)
	w.EXPECT().Apply(gomock.Any()).Return(nil)

	require.NoError(t, m.Insert(ctx, "ks", "r", "F", "s", []litetable.Cell{cell("c", "v", 1)}))

	got, err := m.Slice(ctx, "ks", "r", "F", nil)
	require.NoError(t, err)
	got[0].Columns[0].Value[0] = 'x'

	again, err := m.Slice(ctx, "ks", "r", "F", nil)
	require.NoError(t, err)
	require.Equal(t, []byte("v"), again[0].Columns[0].Value)
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		path      litetable.ColumnPath
		timestamp int64
		want      []string // remaining super/column pairs
	}{
		"whole family": {
			path:      litetable.ColumnPath{Family: "Users"},
			timestamp: 100,
			want:      nil,
		},
		"one super column": {
			path:      litetable.ColumnPath{Family: "Users", Super: "profile"},
			timestamp: 100,
			want:      []string{"settings/theme"},
		},
		"one column": {
			path:      litetable.ColumnPath{Family: "Users", Super: "profile", Column: "age"},
			timestamp: 100,
			want:      []string{"profile/name", "settings/theme"},
		},
		"newer cells survive an older delete": {
			path:      litetable.ColumnPath{Family: "Users"},
			timestamp: 15,
			want:      []string{"profile/name"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, w := newTestManager(t)
			w.EXPECT().Apply(gomock.Any()).Return(nil).Times(3)

			require.NoError(t, m.Insert(ctx, "ks", "r", "Users", "profile",
				[]litetable.Cell{cell("name", "alice", 20), cell("age", "30", 10)}))
			require.NoError(t, m.Insert(ctx, "ks", "r", "Users", "settings",
				[]litetable.Cell{cell("theme", "dark", 10)}))
			require.NoError(t, m.Delete(ctx, "ks", "r", tc.path, tc.timestamp))

			got, err := m.Slice(ctx, "ks", "r", "Users", nil)
			require.NoError(t, err)

			var remaining []string
			for _, sc := range got {
				for _, c := range sc.Columns {
					remaining = append(remaining, sc.Name+"/"+c.Name)
				}
			}
			require.Equal(t, tc.want, remaining)
		})
	}
}

func TestManager_Delete_ZeroTimestampUsesNow(t *testing.T) {
	ctx := context.Background()
	m, w := newTestManager(t)

	var logged *wal.Entry
	w.EXPECT().Apply(gomock.Any()).Return(nil)
	w.EXPECT().Apply(gomock.Any()).DoAndReturn(func(e *wal.Entry) error {
		logged = e
		return nil
	})

	require.NoError(t, m.Insert(ctx, "ks", "r", "F", "s", []litetable.Cell{cell("c", "v", 1)}))
	require.NoError(t, m.Delete(ctx, "ks", "r", litetable.ColumnPath{Family: "F"}, 0))

	require.NotNil(t, logged)
	require.Greater(t, logged.Timestamp, int64(0))

	got, err := m.Slice(ctx, "ks", "r", "F", nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestManager_WALFailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	m, w := newTestManager(t)
	boom := errors.New("disk full")
	w.EXPECT().Apply(gomock.Any()).Return(boom)

	err := m.Insert(ctx, "ks", "r", "F", "s", []litetable.Cell{cell("c", "v", 1)})
	require.ErrorIs(t, err, boom)

	got, err := m.Slice(ctx, "ks", "r", "F", nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestManager_StartReplaysWAL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	w, err := wal.New(&wal.Config{Path: dir})
	require.NoError(t, err)
	m, err := New(&Config{WAL: w})
	require.NoError(t, err)
	require.NoError(t, m.Start())

	require.NoError(t, m.Insert(ctx, "ks", "r", "Users", "profile",
		[]litetable.Cell{cell("name", "alice", 10), cell("age", "30", 10)}))
	require.NoError(t, m.Delete(ctx, "ks", "r",
		litetable.ColumnPath{Family: "Users", Super: "profile", Column: "age"}, 10))
	require.NoError(t, m.Stop())

	reopened, err := wal.New(&wal.Config{Path: dir})
	require.NoError(t, err)
	restored, err := New(&Config{WAL: reopened})
	require.NoError(t, err)
	require.NoError(t, restored.Start())
	defer restored.Stop()

	got, err := restored.Slice(ctx, "ks", "r", "Users", nil)
	require.NoError(t, err)
	require.Equal(t, []litetable.SuperSlice{
		{Name: "profile", Columns: []litetable.Cell{cell("name", "alice", 10)}},
	}, got)
}

func TestManager_StartReplayError(t *testing.T) {
	m, w := newTestManager(t)
	w.EXPECT().Replay(gomock.Any()).DoAndReturn(func(fn func(*wal.Entry) error) error {
		return fn(&wal.Entry{Operation: litetable.OperationUnknown})
	})
	require.Error(t, m.Start())
}
