package ports

import (
	"context"
	"time"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// TokenRepository persists access tokens. Expired tokens are never deleted;
// FindValid simply ignores them.
type TokenRepository interface {
	// Create stores token. Returns domain.ErrTokenExists on collision and
	// domain.ErrUserNotFound when the referenced user does not exist.
	Create(ctx context.Context, token *domain.AccessToken) error
	// FindValid returns the token when its expiration is strictly after now,
	// domain.ErrTokenNotFound otherwise.
	FindValid(ctx context.Context, token string, now time.Time) (*domain.AccessToken, error)
}
