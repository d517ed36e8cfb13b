package litetable

import (
	"errors"
	"sort"
)

var (
	// ErrNotFound is returned when a row has no data under the requested family.
	ErrNotFound = errors.New("row not found")
)

// Cell is a single leaf column as it is stored: a name, a value and the time it was written.
type Cell struct {
	Name      string `json:"name"`
	Value     []byte `json:"value"`
	Timestamp int64  `json:"timestamp"` // unix nanos
}

// SuperSlice is one super column returned by a slice query.
//
// Example:
//
//	SuperSlice{
//	  Name: "profile",
//	  Columns: []Cell{
//	    {Name: "age", Value: []byte("30")},
//	    {Name: "name", Value: []byte("alice")},
//	  },
//	}
//
// Columns are always ordered by name.
type SuperSlice struct {
	Name    string `json:"name"`
	Columns []Cell `json:"columns"`
}

// ColumnPath addresses a delete or write target. Family is always required; Super narrows the
// target to one super column and Column narrows it further to a single cell.
type ColumnPath struct {
	Family string `json:"family"`
	Super  string `json:"super,omitempty"`
	Column string `json:"column,omitempty"`
}

// SlicePredicate restricts a slice query. ColumnNames takes precedence over the range fields.
type SlicePredicate struct {
	ColumnNames []string `json:"names,omitempty"`
	Start       string   `json:"start,omitempty"`
	Finish      string   `json:"finish,omitempty"`
	Reversed    bool     `json:"reversed,omitempty"`
	Count       int      `json:"count,omitempty"`
}

// Apply filters an ordered list of super columns by the predicate. A nil predicate returns the
// input untouched.
func (p *SlicePredicate) Apply(supers []SuperSlice) []SuperSlice {
	if p == nil {
		return supers
	}

	var out []SuperSlice
	if len(p.ColumnNames) > 0 {
		wanted := make(map[string]struct{}, len(p.ColumnNames))
		for _, n := range p.ColumnNames {
			wanted[n] = struct{}{}
		}
		for _, sc := range supers {
			if _, ok := wanted[sc.Name]; ok {
				out = append(out, sc)
			}
		}
	} else {
		for _, sc := range supers {
			if p.Start != "" && sc.Name < p.Start {
				continue
			}
			if p.Finish != "" && sc.Name > p.Finish {
				continue
			}
			out = append(out, sc)
		}
	}

	if p.Reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if p.Count > 0 && len(out) > p.Count {
		out = out[:p.Count]
	}
	return out
}

// SortSlices orders super columns, and the cells inside each of them, by name.
func SortSlices(supers []SuperSlice) {
	sort.Slice(supers, func(i, j int) bool { return supers[i].Name < supers[j].Name })
	for _, sc := range supers {
		sort.Slice(sc.Columns, func(i, j int) bool { return sc.Columns[i].Name < sc.Columns[j].Name })
	}
}
