package main

import (
	"context"
	"fmt"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/localstore"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/db"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/redis"
)

// openGuestStore builds the guest cart store for the configured driver. The
// returned close func releases the backing connection.
func openGuestStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*localstore.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		dbClient, err := db.New(ctx, cfg.Store.Driver, cfg.DB, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap database: %w", err)
		}
		backend, err := localstore.NewGormBackend(ctx, dbClient)
		if err != nil {
			_ = dbClient.Close()
			return nil, noop, fmt.Errorf("prepare guest cart table: %w", err)
		}
		store, err := localstore.New(backend, cfg.Store.Key, logg)
		if err != nil {
			_ = dbClient.Close()
			return nil, noop, err
		}
		return store, dbClient.Close, nil

	case config.StoreDriverRedis:
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap redis: %w", err)
		}
		backend := localstore.NewRedisBackend(redisClient, cfg.Store.TTL)
		store, err := localstore.New(backend, redisClient.GuestCartKey(cfg.Store.Key), logg)
		if err != nil {
			_ = redisClient.Close()
			return nil, noop, err
		}
		return store, redisClient.Close, nil

	case config.StoreDriverMemory:
		store, err := localstore.New(localstore.NewMemoryBackend(), cfg.Store.Key, logg)
		return store, noop, err
	}

	return nil, noop, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
