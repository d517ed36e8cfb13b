package cdc_emitter

import (
	"context"
	"errors"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func TestFeed_Insert(t *testing.T) {
	cells := []litetable.Cell{{Name: "theme", Value: []byte("dark"), Timestamp: 7}}

	tests := map[string]struct {
		backendErr error
		wantEmit   bool
	}{
		"emits after insert": {
			wantEmit: true,
		},
		"no event when backend fails": {
			backendErr: errors.New("disk full"),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			b := NewMockbackend(ctrl)
			e := NewMockemitter(ctrl)

			b.EXPECT().Insert(gomock.Any(), "app", "user:1", "Users", "settings", cells).Return(tc.backendErr)
			if tc.wantEmit {
				e.EXPECT().Emit(gomock.Any()).Do(func(ev *Event) {
					req.Equal(litetable.OperationInsert, ev.Operation)
					req.Equal("app", ev.Keyspace)
					req.Equal("user:1", ev.RowKey)
					req.Equal(litetable.ColumnPath{Family: "Users", Super: "settings"}, ev.Path)
					req.Equal(cells, ev.Cells)
				})
			}

			err := NewFeed(b, e).Insert(context.Background(), "app", "user:1", "Users", "settings", cells)
			if tc.backendErr != nil {
				req.ErrorIs(err, tc.backendErr)
				return
			}
			req.NoError(err)
		})
	}
}

func TestFeed_Delete(t *testing.T) {
	path := litetable.ColumnPath{Family: "Users", Super: "profile", Column: "age"}

	tests := map[string]struct {
		backendErr error
		wantEmit   bool
	}{
		"emits after delete": {
			wantEmit: true,
		},
		"no event when backend fails": {
			backendErr: context.Canceled,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			b := NewMockbackend(ctrl)
			e := NewMockemitter(ctrl)

			b.EXPECT().Delete(gomock.Any(), "app", "user:1", path, int64(42)).Return(tc.backendErr)
			if tc.wantEmit {
				e.EXPECT().Emit(gomock.Any()).Do(func(ev *Event) {
					req.Equal(litetable.OperationDelete, ev.Operation)
					req.Equal(path, ev.Path)
					req.Equal(int64(42), ev.Timestamp)
					req.Empty(ev.Cells)
				})
			}

			err := NewFeed(b, e).Delete(context.Background(), "app", "user:1", path, 42)
			if tc.backendErr != nil {
				req.ErrorIs(err, tc.backendErr)
				return
			}
			req.NoError(err)
		})
	}
}

func TestFeed_Slice(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	b := NewMockbackend(ctrl)
	e := NewMockemitter(ctrl)

	want := []litetable.SuperSlice{{Name: "profile"}}
	b.EXPECT().Slice(gomock.Any(), "app", "user:1", "Users", []string{"profile"}).Return(want, nil)

	got, err := NewFeed(b, e).Slice(context.Background(), "app", "user:1", "Users", []string{"profile"})
	req.NoError(err)
	req.Equal(want, got)
}
