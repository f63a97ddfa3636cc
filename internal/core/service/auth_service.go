package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

// DefaultTokenTTL is how long an issued access token stays valid.
const DefaultTokenTTL = 86400 * time.Second

// AuthService implements credential checks and opaque access-token issuance.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenRepository
	hasher   ports.PasswordHasher
	tokenGen ports.TokenGenerator
	tokenTTL time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// Option customises an AuthService.
type Option func(*AuthService)

// WithClock overrides the time source used for expiration.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

// WithTokenGenerator overrides the token source.
func WithTokenGenerator(g ports.TokenGenerator) Option {
	return func(s *AuthService) { s.tokenGen = g }
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenRepository,
	hasher ports.PasswordHasher,
	tokenTTL time.Duration,
	log zerolog.Logger,
	opts ...Option,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	s := &AuthService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		tokenGen: RandomTokenGenerator{},
		tokenTTL: tokenTTL,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate looks the user up by email exactly once and verifies the
// password. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// CreateAccessToken issues and persists a new token for user.
func (s *AuthService) CreateAccessToken(ctx context.Context, user *domain.User) (*domain.AccessToken, error) {
	raw, err := s.tokenGen.Generate()
	if err != nil {
		return nil, err
	}

	token := &domain.AccessToken{
		Token:     raw,
		UserID:    user.ID,
		ExpiresAt: s.now().UTC().Add(s.tokenTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist access token")
		return nil, fmt.Errorf("create access token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Time("expires_at", token.ExpiresAt).Msg("access token issued")
	return token, nil
}

// Login authenticates the credentials and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AccessToken, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.CreateAccessToken(ctx, user)
}

// ResolveToken returns the owner of an unexpired token, or ErrUnauthorized.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	at, err := s.tokens.FindValid(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	user, err := s.users.FindByID(ctx, at.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("user_id", at.UserID).Msg("access token references a missing user")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return user, nil
}
