package shard_storage

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/litetable/litetable-mapper/internal/wal"
	"github.com/rs/zerolog/log"
	"time"
)

//go:generate mockgen -destination=manager_mock.go -package=shard_storage -source=manager.go

const defaultShardCount = 4

type writeAhead interface {
	Apply(e *wal.Entry) error
	Replay(fn func(e *wal.Entry) error) error
	Close() error
}

// Manager is a sharded in-memory backend.
type Manager struct {
	shardCount int
	shardMap   []*shard
	writeAhead writeAhead
	now        func() time.Time
}

type Config struct {
	// ShardCount defaults to 4.
	ShardCount int
	WAL        writeAhead
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ShardCount < 0 || c.ShardCount > 256 {
		errGrp = append(errGrp, errors.New("shard count must be between 1 and 256"))
	}
	if c.WAL == nil {
		errGrp = append(errGrp, errors.New("WAL cannot be nil"))
	}
	return errors.Join(errGrp...)
}

// New creates a new shard storage manager
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	count := cfg.ShardCount
	if count == 0 {
		count = defaultShardCount
	}

	shards, err := initializeDataShards(count)
	if err != nil {
		return nil, err
	}

	return &Manager{
		shardCount: count,
		shardMap:   shards,
		writeAhead: cfg.WAL,
		now:        time.Now,
	}, nil
}

// Start replays the write-ahead log into memory.
func (m *Manager) Start() error {
	start := time.Now()
	replayed := 0

	err := m.writeAhead.Replay(func(e *wal.Entry) error {
		replayed++
		return m.apply(e)
	})
	if err != nil {
		return fmt.Errorf("failed to replay WAL: %w", err)
	}

	log.Info().
		Int("entries", replayed).
		Str("duration", time.Since(start).String()).
		Msg("Shard storage restored from WAL")
	return nil
}

func (m *Manager) Stop() error {
	return m.writeAhead.Close()
}

func (m *Manager) Name() string {
	return "Shard Storage"
}

// apply routes a logged mutation to its shard.
func (m *Manager) apply(e *wal.Entry) error {
	id := rowID(e.Keyspace, e.RowKey)
	s := m.getShard(id)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch e.Operation {
	case litetable.OperationInsert:
		s.insert(id, e.Path.Family, e.Path.Super, e.Cells)
	case litetable.OperationDelete:
		s.remove(id, e.Path, e.Timestamp)
	default:
		return fmt.Errorf("unknown WAL operation: %s", e.Operation)
	}
	return nil
}
