package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

const (
	tokenKeyPrefix     = "access_token:"
	DefaultTokenMaxTTL = 5 * time.Minute
)

// TokenCache is a read-through cache in front of a TokenRepository.
// Entries are keyed by the SHA-256 of the token and never outlive the
// token's own expiration. Redis failures are logged and the call falls
// through to the wrapped repository.
type TokenCache struct {
	next   ports.TokenRepository
	client redis.Cmdable
	maxTTL time.Duration
	log    zerolog.Logger

	// results counts lookups by "hit", "miss" or "error". Optional.
	results *prometheus.CounterVec
}

type TokenCacheOption func(*TokenCache)

// WithResultCounter records every lookup on counter, labelled by result.
func WithResultCounter(counter *prometheus.CounterVec) TokenCacheOption {
	return func(c *TokenCache) { c.results = counter }
}

var _ ports.TokenRepository = (*TokenCache)(nil)

func NewTokenCache(next ports.TokenRepository, client redis.Cmdable, maxTTL time.Duration, log zerolog.Logger, opts ...TokenCacheOption) *TokenCache {
	if maxTTL <= 0 {
		maxTTL = DefaultTokenMaxTTL
	}
	c := &TokenCache{
		next:   next,
		client: client,
		maxTTL: maxTTL,
		log:    log.With().Str("component", "token_cache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type cachedToken struct {
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

func (c *TokenCache) Create(ctx context.Context, token *domain.AccessToken) error {
	if err := c.next.Create(ctx, token); err != nil {
		return err
	}
	c.store(ctx, token, time.Now())
	return nil
}

func (c *TokenCache) FindValid(ctx context.Context, token string, now time.Time) (*domain.AccessToken, error) {
	raw, err := c.client.Get(ctx, cacheKey(token)).Bytes()
	switch {
	case err == nil:
		var ct cachedToken
		if jerr := json.Unmarshal(raw, &ct); jerr == nil {
			c.count("hit")
			at := &domain.AccessToken{Token: token, UserID: ct.UserID, ExpiresAt: time.UnixMilli(ct.ExpiresAt).UTC()}
			if !at.ValidAt(now) {
				return nil, domain.ErrTokenNotFound
			}
			return at, nil
		}
		c.count("error")
		c.log.Warn().Msg("discarding malformed token cache entry")
	case errors.Is(err, redis.Nil):
		c.count("miss")
	default:
		c.count("error")
		c.log.Warn().Err(err).Msg("token cache read failed")
	}

	at, err := c.next.FindValid(ctx, token, now)
	if err != nil {
		return nil, err
	}
	c.store(ctx, at, now)
	return at, nil
}

func (c *TokenCache) store(ctx context.Context, token *domain.AccessToken, now time.Time) {
	ttl := token.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return
	}
	ttl = min(ttl, c.maxTTL)

	raw, err := json.Marshal(cachedToken{UserID: token.UserID, ExpiresAt: token.ExpiresAt.UnixMilli()})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(token.Token), raw, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("token cache write failed")
	}
}

func (c *TokenCache) count(result string) {
	if c.results != nil {
		c.results.WithLabelValues(result).Inc()
	}
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return tokenKeyPrefix + hex.EncodeToString(sum[:])
}
