package main

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
)

type observability struct {
	logger  eventstore.ContextualLogger
	metrics eventstore.MetricsCollector
	tracing eventstore.TracingCollector
}

// openPostgresStore connects with the configured adapter. The returned close func releases the connections.
func openPostgresStore(
	ctx context.Context,
	cfg config.PostgresConfig,
	obs observability,
) (*postgresengine.EventStore, func(), error) {
	options := []postgresengine.Option{postgresengine.WithTableName(cfg.TableName)}
	if obs.logger != nil {
		options = append(options, postgresengine.WithLogger(obs.logger))
	}
	if obs.metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.metrics))
	}
	if obs.tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.tracing))
	}

	switch cfg.Adapter {
	case config.AdapterSQLDB:
		db, err := config.NewSQLDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.AdapterSQLXDB:
		db, err := config.NewSQLXDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		pool, err := config.NewPGXPool(ctx, cfg, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}

		if cfg.ReplicaDSN == "" {
			store, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
			if err != nil {
				pool.Close()
				return nil, nil, err
			}

			return store, pool.Close, nil
		}

		replica, err := config.NewPGXPool(ctx, cfg, cfg.ReplicaDSN)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		store, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(pool, replica, options...)
		if err != nil {
			pool.Close()
			replica.Close()
			return nil, nil, err
		}

		return store, func() { pool.Close(); replica.Close() }, nil
	}
}

// openEventStore opens the store selected by kind.
func openEventStore(
	ctx context.Context,
	kind string,
	cfg config.PostgresConfig,
	obs observability,
) (shell.EventStore, func(), error) {
	switch kind {
	case storeMemory:
		options := []memoryengine.Option{}
		if obs.logger != nil {
			options = append(options, memoryengine.WithLogger(obs.logger))
		}
		if obs.metrics != nil {
			options = append(options, memoryengine.WithMetrics(obs.metrics))
		}

		return memoryengine.NewEventStore(options...), func() {}, nil

	case storePostgres:
		store, closeStore, err := openPostgresStore(ctx, cfg, obs)
		if err != nil {
			return nil, nil, err
		}

		return store, closeStore, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q, use %s or %s", kind, storePostgres, storeMemory)
	}
}
