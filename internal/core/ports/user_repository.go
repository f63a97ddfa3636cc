package ports

import (
	"context"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// UserRepository persists users. Implementations enforce uniqueness of ID and Email.
type UserRepository interface {
	// Create inserts user. Returns domain.ErrUserExists when the id or email is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user ordered by id.
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies upd to the user and returns the stored result.
	Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error)
}
