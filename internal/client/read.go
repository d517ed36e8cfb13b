package client

import (
	"context"
	"errors"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
	"time"
)

// GetSlice reads the super columns of one row, filtered by predicate. A row without data returns
// litetable.ErrNotFound.
func (c *Client) GetSlice(ctx context.Context, keyspace, rowKey, family string,
	predicate *litetable.SlicePredicate, level litetable.Consistency) (_ []litetable.SuperSlice, err error) {
	start := time.Now()
	defer func() { c.metrics.observe(opSlice, start, err) }()

	level = c.ResolveConsistency(level)
	if err = errors.Join(validateRow(keyspace, rowKey, family), validateRead(level)); err != nil {
		return nil, err
	}

	var names []string
	if predicate != nil {
		names = predicate.ColumnNames
	}

	result, err := c.backend.Slice(ctx, keyspace, rowKey, family, names)
	if err != nil {
		return nil, err
	}

	result = predicate.Apply(result)
	if len(result) == 0 {
		return nil, newError(litetable.ErrNotFound, "key %q in %s.%s", rowKey, keyspace, family)
	}

	log.Debug().
		Str("keyspace", keyspace).
		Str("key", rowKey).
		Str("family", family).
		Int("supers", len(result)).
		Stringer("consistency", level).
		Msgf("slice latency: %v", time.Since(start))

	return result, nil
}

// GetSliceMulti reads the named super columns of several rows. Rows without any of the named
// super columns are left out of the result.
func (c *Client) GetSliceMulti(ctx context.Context, keyspace string, rowKeys []string,
	family string, superNames []string, predicate *litetable.SlicePredicate,
	level litetable.Consistency) (_ map[string][]litetable.SuperSlice, err error) {
	start := time.Now()
	defer func() { c.metrics.observe(opSliceMulti, start, err) }()

	level = c.ResolveConsistency(level)

	errGrp := []error{validateRead(level)}
	if keyspace == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "keyspace required"))
	}
	if family == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "family required"))
	}
	if len(rowKeys) == 0 {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "row keys required"))
	}
	if len(superNames) == 0 {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "super column names required"))
	}
	if err = errors.Join(errGrp...); err != nil {
		return nil, err
	}

	result := make(map[string][]litetable.SuperSlice, len(rowKeys))
	for _, key := range rowKeys {
		if key == "" {
			return nil, newError(ErrInvalidRequest, "row key required")
		}
		if _, seen := result[key]; seen {
			continue
		}

		slices, err := c.backend.Slice(ctx, keyspace, key, family, superNames)
		if err != nil {
			return nil, err
		}

		slices = predicate.Apply(slices)
		if len(slices) > 0 {
			result[key] = slices
		}
	}

	log.Debug().
		Str("keyspace", keyspace).
		Strs("keys", rowKeys).
		Str("family", family).
		Strs("supers", superNames).
		Int("rows", len(result)).
		Stringer("consistency", level).
		Msgf("multi slice latency: %v", time.Since(start))

	return result, nil
}
