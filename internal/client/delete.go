package client

import (
	"context"
	"errors"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"time"
)

// DeleteColumnPath removes the row, super column or column addressed by path. Only cells written
// at or before timestamp are removed; a zero timestamp means now.
func (c *Client) DeleteColumnPath(ctx context.Context, keyspace, rowKey string,
	path litetable.ColumnPath, timestamp int64, level litetable.Consistency) (err error) {
	start := time.Now()
	defer func() { c.metrics.observe(opDelete, start, err) }()

	errGrp := []error{validateRow(keyspace, rowKey, path.Family)}
	if path.Column != "" && path.Super == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "column %q has no super column",
			path.Column))
	}
	if err = errors.Join(errGrp...); err != nil {
		return err
	}

	if timestamp == 0 {
		timestamp = c.now().UnixNano()
	}

	log.Debug().
		Str("keyspace", keyspace).
		Str("key", rowKey).
		Interface("path", path).
		Int64("timestamp", timestamp).
		Stringer("consistency", c.ResolveConsistency(level)).
		Msg("delete")

	return c.backend.Delete(ctx, keyspace, rowKey, path, timestamp)
}
