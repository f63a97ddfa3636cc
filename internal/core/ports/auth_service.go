package ports

import (
	"context"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// PasswordHasher hashes and verifies stored credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash. It never fails loudly.
	Verify(plain, hash string) bool
}

// TokenGenerator produces unguessable opaque token strings.
type TokenGenerator interface {
	Generate() (string, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	CreateAccessToken(ctx context.Context, user *domain.User) (*domain.AccessToken, error)
	Login(ctx context.Context, email, password string) (*domain.AccessToken, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}
