package main

import (
	"context"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/app"
	"github.com/litetable/litetable-mapper/internal/cdc_emitter"
	"github.com/litetable/litetable-mapper/internal/client"
	"github.com/litetable/litetable-mapper/internal/config"
	"github.com/litetable/litetable-mapper/internal/server"
	"github.com/litetable/litetable-mapper/internal/server/grpc"
	"github.com/litetable/litetable-mapper/internal/shard_storage"
	"github.com/litetable/litetable-mapper/internal/storage"
	"github.com/litetable/litetable-mapper/internal/wal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"path/filepath"
	"time"
)

// backend is a store the daemon owns and serves.
type backend interface {
	app.Dependency
	client.Backend
}

func main() {
	application, err := initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	if err = application.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}
}

func initialize() (*app.App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	// storage first: it must be ready before anything serves it
	deps := []app.Dependency{store}

	var served client.Backend = store
	if cfg.CDCPort != 0 {
		emitter, err := cdc_emitter.New(&cdc_emitter.Config{
			Address: cfg.ServerAddress,
			Port:    cfg.CDCPort,
		})
		if err != nil {
			return nil, err
		}
		deps = append(deps, emitter)
		served = cdc_emitter.NewFeed(store, emitter)
	}

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Address:    cfg.ServerAddress,
		Port:       cfg.ServerPort,
		Backend:    served,
		Registerer: prometheus.DefaultRegisterer,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, grpcServer)

	if cfg.MetricsPort != 0 {
		metricsServer, err := server.New(&server.Config{
			Address: cfg.ServerAddress,
			Port:    cfg.MetricsPort,
		})
		if err != nil {
			return nil, err
		}
		deps = append(deps, metricsServer)
	}

	log.Info().
		Str("backend", cfg.Backend).
		Str("dataDir", cfg.DataDir).
		Bool("cdc", cfg.CDCPort != 0).
		Msg("LiteTable configured")

	return app.CreateApp(&app.Config{
		ServiceName: "LiteTable Super Column Store",
		StopTimeout: 30 * time.Second,
	}, deps...)
}

func newBackend(cfg *config.Config) (backend, error) {
	var (
		b   backend
		err error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		walManager, walErr := wal.New(&wal.Config{Path: cfg.DataDir})
		if walErr != nil {
			return nil, walErr
		}
		b, err = shard_storage.New(&shard_storage.Config{
			ShardCount: cfg.ShardCount,
			WAL:        walManager,
		})
	case config.BackendPebble:
		b, err = storage.NewPebble(filepath.Join(cfg.DataDir, "pebble"))
	case config.BackendBadger:
		b, err = storage.NewBadger(filepath.Join(cfg.DataDir, "badger"))
	case config.BackendSQLite:
		b, err = storage.NewSQLite(filepath.Join(cfg.DataDir, "litetable.db"))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", cfg.Backend, err)
	}
	return b, nil
}
