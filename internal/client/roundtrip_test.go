package client_test

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/client"
	"github.com/litetable/litetable-mapper/internal/entity"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/litetable/litetable-mapper/internal/shard_storage"
	"github.com/litetable/litetable-mapper/internal/wal"
	"github.com/stretchr/testify/require"
	"testing"
)

func newStore(t *testing.T) *client.Client {
	t.Helper()
	w, err := wal.New(&wal.Config{Path: t.TempDir()})
	require.NoError(t, err)
	backend, err := shard_storage.New(&shard_storage.Config{WAL: w})
	require.NoError(t, err)
	require.NoError(t, backend.Start())
	t.Cleanup(func() { _ = backend.Stop() })

	c, err := client.New(&client.Config{Backend: backend})
	require.NoError(t, err)
	return c
}

func value(t *testing.T, f *entity.SuperColumnFamily, super, column string) string {
	t.Helper()
	sc, ok := f.GetSuper(super)
	require.True(t, ok, "super column %q", super)
	col, ok := sc.GetColumn(column)
	require.True(t, ok, "column %s.%s", super, column)
	return col.String()
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	written := entity.NewSuperColumnFamily(store, "Keyspace1", "Users")
	written.SetKeyID("row-1")
	require.True(t, written.Populate(
		entity.JSON(`{"profile":{"name":"alice","age":"30"},"settings":{"theme":"dark"}}`),
		entity.PolicyInherit))
	require.True(t, written.Save(ctx))
	require.False(t, written.IsModified())

	read := entity.NewSuperColumnFamily(store, "Keyspace1", "Users")
	require.True(t, read.Load(ctx, entity.WithKeyID("row-1")))
	require.True(t, read.IsLoaded())
	require.False(t, read.IsModified())
	require.Equal(t, []string{"profile", "settings"}, read.Names())
	require.Equal(t, "alice", value(t, read, "profile", "name"))
	require.Equal(t, "30", value(t, read, "profile", "age"))
	require.Equal(t, "dark", value(t, read, "settings", "theme"))

	t.Run("column delete", func(t *testing.T) {
		sc, _ := read.GetSuper("profile")
		col, _ := sc.GetColumn("age")
		col.Delete()
		require.True(t, read.Save(ctx))

		again := entity.NewSuperColumnFamily(store, "Keyspace1", "Users")
		require.True(t, again.Load(ctx, entity.WithKeyID("row-1")))
		profile, _ := again.GetSuper("profile")
		_, ok := profile.GetColumn("age")
		require.False(t, ok)
	})

	t.Run("load without auto-create only fills known super columns", func(t *testing.T) {
		partial := entity.NewSuperColumnFamily(store, "Keyspace1", "Users")
		partial.SetAutoCreate(entity.PolicyOff)
		partial.AddColumn("settings").AddColumn("theme")

		require.True(t, partial.Load(ctx, entity.WithKeyID("row-1")))
		require.Equal(t, []string{"settings"}, partial.Names())
		require.Equal(t, "dark", value(t, partial, "settings", "theme"))
	})

	t.Run("row delete", func(t *testing.T) {
		read.Delete()
		require.True(t, read.Save(ctx))
		require.Zero(t, read.Len())

		gone := entity.NewSuperColumnFamily(store, "Keyspace1", "Users")
		require.False(t, gone.Load(ctx, entity.WithKeyID("row-1")))
		require.ErrorIs(t, gone.LastError(), litetable.ErrNotFound)
	})
}
