package shard_storage

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/litetable"
)

// Slice returns copies of the requested super columns of one row. An empty superNames selects
// every super column in the family. A missing row is an empty result, not an error.
func (m *Manager) Slice(_ context.Context, keyspace, rowKey, familyName string,
	superNames []string) ([]litetable.SuperSlice, error) {
	id := rowID(keyspace, rowKey)
	s := m.getShard(id)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	f, ok := s.data[id][familyName]
	if !ok {
		return nil, nil
	}

	var result []litetable.SuperSlice
	collect := func(name string, cols map[string]litetable.Cell) {
		sc := litetable.SuperSlice{Name: name, Columns: make([]litetable.Cell, 0, len(cols))}
		for _, cell := range cols {
			cell.Value = append([]byte(nil), cell.Value...)
			sc.Columns = append(sc.Columns, cell)
		}
		result = append(result, sc)
	}

	if len(superNames) == 0 {
		for name, cols := range f {
			collect(name, cols)
		}
	} else {
		for _, name := range superNames {
			if cols, ok := f[name]; ok {
				collect(name, cols)
			}
		}
	}

	litetable.SortSlices(result)
	return result, nil
}
