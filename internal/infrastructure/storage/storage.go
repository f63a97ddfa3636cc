// Package storage wires the repository implementation selected by
// configuration, plus the optional Redis token cache.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-api/internal/core/ports"
	"github.com/99minutos/inventory-api/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/inventory-api/internal/infrastructure/db/mongo"
	rediscache "github.com/99minutos/inventory-api/internal/infrastructure/db/redis"
	"github.com/99minutos/inventory-api/internal/infrastructure/db/sqlstore"
	"github.com/99minutos/inventory-api/internal/pkg/config"
)

// Backend holds the repositories of one storage driver together with its
// readiness checks and teardown.
type Backend struct {
	Users  ports.UserRepository
	Items  ports.ItemRepository
	Tokens ports.TokenRepository

	// Checks maps a dependency name to its ping, for the readiness probe.
	Checks map[string]func(context.Context) error

	closers []func(context.Context) error
}

// Close releases every client opened by Open, newest first.
func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

func (b *Backend) onClose(fn func(context.Context) error) {
	b.closers = append(b.closers, fn)
}

// Open connects to the configured driver, applies schema setup and, when
// enabled, wraps the token repository with the Redis cache. On error every
// client opened so far is closed. cacheOpts apply to the token cache only.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, cacheOpts ...rediscache.TokenCacheOption) (_ *Backend, err error) {
	b := &Backend{Checks: make(map[string]func(context.Context) error)}
	defer func() {
		if err != nil {
			_ = b.Close(ctx)
		}
	}()

	switch cfg.StorageDriver {
	case config.DriverMemory:
		s := memory.NewStore()
		b.Users, b.Items, b.Tokens = s.Users(), s.Items(), s.Tokens()

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.onClose(client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		b.Users = mongostore.NewUserRepository(db)
		b.Items = mongostore.NewItemRepository(db)
		b.Tokens = mongostore.NewTokenRepository(db)
		b.Checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	case config.DriverPostgres:
		db, err := sqlstore.OpenPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := b.useSQL(ctx, db, sqlstore.Postgres, log); err != nil {
			return nil, err
		}

	case config.DriverSQLite:
		db, err := sqlstore.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := b.useSQL(ctx, db, sqlstore.SQLite, log); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}

	if cfg.Redis.Enabled {
		client, err := rediscache.Connect(ctx, rediscache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		b.onClose(func(context.Context) error { return client.Close() })
		b.Tokens = rediscache.NewTokenCache(b.Tokens, client, cfg.Redis.TokenCacheTTL, log, cacheOpts...)
		b.Checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	log.Info().
		Str("driver", cfg.StorageDriver).
		Bool("token_cache", cfg.Redis.Enabled).
		Msg("storage ready")

	return b, nil
}

func (b *Backend) useSQL(ctx context.Context, db *sql.DB, dialect sqlstore.Dialect, log zerolog.Logger) error {
	s := sqlstore.New(db, dialect)
	b.onClose(func(context.Context) error { return s.Close() })

	if err := sqlstore.Migrate(ctx, db, dialect, log); err != nil {
		return err
	}
	b.Users, b.Items, b.Tokens = s.Users(), s.Items(), s.Tokens()
	b.Checks[s.Name()] = s.Ping
	return nil
}
