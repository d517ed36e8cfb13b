package grpc

import "github.com/litetable/litetable-mapper/internal/litetable"

// InsertRequest writes cells under one super column.
type InsertRequest struct {
	Keyspace string           `json:"keyspace"`
	RowKey   string           `json:"row_key"`
	Family   string           `json:"family"`
	Super    string           `json:"super"`
	Cells    []litetable.Cell `json:"cells"`
}

// DeleteRequest removes everything under Path written at or before Timestamp.
type DeleteRequest struct {
	Keyspace  string               `json:"keyspace"`
	RowKey    string               `json:"row_key"`
	Path      litetable.ColumnPath `json:"path"`
	Timestamp int64                `json:"timestamp"`
}

// SliceRequest reads one row. Empty SuperNames selects every super column.
type SliceRequest struct {
	Keyspace   string   `json:"keyspace"`
	RowKey     string   `json:"row_key"`
	Family     string   `json:"family"`
	SuperNames []string `json:"super_names,omitempty"`
}

type SliceResponse struct {
	Supers []litetable.SuperSlice `json:"supers"`
}

type Empty struct{}
