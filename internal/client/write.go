package client

import (
	"context"
	"errors"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"time"
)

// Insert writes cells under path.Family / path.Super. Cells without a timestamp are stamped with
// the current time; every cell of one call shares that time.
func (c *Client) Insert(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath,
	cells []litetable.Cell, level litetable.Consistency) (err error) {
	start := time.Now()
	defer func() { c.metrics.observe(opInsert, start, err) }()

	if err = validateInsert(keyspace, rowKey, path, cells); err != nil {
		return err
	}

	now := c.now().UnixNano()
	stamped := make([]litetable.Cell, len(cells))
	for i, cell := range cells {
		if cell.Timestamp == 0 {
			cell.Timestamp = now
		}
		stamped[i] = cell
	}

	log.Debug().
		Str("keyspace", keyspace).
		Str("key", rowKey).
		Str("family", path.Family).
		Str("super", path.Super).
		Int("cells", len(stamped)).
		Stringer("consistency", c.ResolveConsistency(level)).
		Msg("insert")

	return c.backend.Insert(ctx, keyspace, rowKey, path.Family, path.Super, stamped)
}

func validateInsert(keyspace, rowKey string, path litetable.ColumnPath, cells []litetable.Cell) error {
	errGrp := []error{validateRow(keyspace, rowKey, path.Family)}
	if path.Super == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "super column required"))
	}
	if path.Column != "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "insert path cannot name a column"))
	}
	if len(cells) == 0 {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "no cells to insert"))
	}
	for _, cell := range cells {
		if cell.Name == "" {
			errGrp = append(errGrp, newError(ErrInvalidRequest, "column name required"))
			break
		}
	}
	return errors.Join(errGrp...)
}
