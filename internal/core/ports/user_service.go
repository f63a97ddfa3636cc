package ports

import (
	"context"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// CreateUserInput is the DTO passed from the transport layer to UserService.
type CreateUserInput struct {
	ID       string // optional; generated when empty
	Email    string
	Password string
}

// UpdateUserInput carries a partial user update. Nil fields are not changed.
type UpdateUserInput struct {
	Email    *string
	Password *string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
}
