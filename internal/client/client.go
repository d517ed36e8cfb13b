// Package client is the store client the entity layer talks to. It validates requests, resolves
// consistency levels, stamps write times, applies slice predicates and records metrics, and
// leaves the actual reading and writing to a Backend.
package client

import (
	"context"
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

//go:generate mockgen -destination=backend_mock.go -package=client -source=client.go

// Backend stores super column data. Implementations must be safe for concurrent use.
//
// Writes are last-write-wins by timestamp, deletes remove every cell under the path written at
// or before the delete timestamp, and Slice returns super columns and their cells ordered by
// name. A row with no data is an empty result, not an error.
type Backend interface {
	Insert(ctx context.Context, keyspace, rowKey, family, super string, cells []litetable.Cell) error
	Delete(ctx context.Context, keyspace, rowKey string, path litetable.ColumnPath, timestamp int64) error
	// Slice reads one row. An empty superNames returns every super column.
	Slice(ctx context.Context, keyspace, rowKey, family string, superNames []string) ([]litetable.SuperSlice, error)
}

type Client struct {
	backend            Backend
	defaultConsistency litetable.Consistency
	metrics            *metrics
	now                func() time.Time
}

type Config struct {
	Backend Backend
	// DefaultConsistency is used when a call does not request a level. Defaults to ONE.
	DefaultConsistency litetable.Consistency
	// Registerer receives the client's metrics. Optional.
	Registerer prometheus.Registerer
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Backend == nil {
		errGrp = append(errGrp, errors.New("backend cannot be nil"))
	}
	if c.DefaultConsistency < litetable.ConsistencyUnset || c.DefaultConsistency > litetable.ConsistencyAll {
		errGrp = append(errGrp, fmt.Errorf("unknown default consistency: %d", c.DefaultConsistency))
	}
	return errors.Join(errGrp...)
}

// New creates a new store client
func New(cfg *Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	level := cfg.DefaultConsistency
	if level == litetable.ConsistencyUnset {
		level = litetable.ConsistencyOne
	}

	return &Client{
		backend:            cfg.Backend,
		defaultConsistency: level,
		metrics:            newMetrics(cfg.Registerer),
		now:                time.Now,
	}, nil
}

// ResolveConsistency returns requested, or the client default when requested is unset.
func (c *Client) ResolveConsistency(requested litetable.Consistency) litetable.Consistency {
	if requested == litetable.ConsistencyUnset {
		return c.defaultConsistency
	}
	return requested
}

func validateRow(keyspace, rowKey, family string) error {
	var errGrp []error
	if keyspace == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "keyspace required"))
	}
	if rowKey == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "row key required"))
	}
	if family == "" {
		errGrp = append(errGrp, newError(ErrInvalidRequest, "family required"))
	}
	return errors.Join(errGrp...)
}

func validateRead(level litetable.Consistency) error {
	if level == litetable.ConsistencyAny {
		return newError(ErrInvalidConsistency, "%s is only valid for writes", level)
	}
	return nil
}
