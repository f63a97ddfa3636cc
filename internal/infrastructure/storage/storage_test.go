package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/inventory-api/internal/core/domain"
	rediscache "github.com/99minutos/inventory-api/internal/infrastructure/db/redis"
	"github.com/99minutos/inventory-api/internal/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	b, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverMemory}, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close(context.Background())

	assert.NotNil(t, b.Users)
	assert.NotNil(t, b.Items)
	assert.NotNil(t, b.Tokens)
	assert.Empty(t, b.Checks)
}

func TestOpen_SQLiteWithRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := &config.Config{StorageDriver: config.DriverSQLite}
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "inventory.db")
	cfg.Redis = config.RedisConfig{Enabled: true, Addr: mr.Addr(), TokenCacheTTL: time.Minute}

	b, err := Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close(ctx)

	assert.IsType(t, &rediscache.TokenCache{}, b.Tokens)
	require.Contains(t, b.Checks, "sqlite")
	require.Contains(t, b.Checks, "redis")
	for name, ping := range b.Checks {
		assert.NoError(t, ping(ctx), name)
	}

	now := time.Now().UTC()
	require.NoError(t, b.Users.Create(ctx, &domain.User{ID: "u1", Email: "a@x.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, b.Tokens.Create(ctx, &domain.AccessToken{Token: "tok", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))

	got, err := b.Tokens.FindValid(ctx, "tok", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageDriver: "cassandra"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpen_RedisUnavailableClosesStore(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.DriverMemory}
	cfg.Redis = config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
