package memory

import (
	"context"
	"time"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

type TokenRepository struct {
	s *Store
}

func (r *TokenRepository) Create(_ context.Context, token *domain.AccessToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[token.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.tokens[token.Token]; ok {
		return domain.ErrTokenExists
	}
	r.s.tokens[token.Token] = *token
	return nil
}

func (r *TokenRepository) FindValid(_ context.Context, token string, now time.Time) (*domain.AccessToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tokens[token]
	if !ok || !t.ValidAt(now) {
		return nil, domain.ErrTokenNotFound
	}
	return &t, nil
}
