package ports

import (
	"context"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// CreateItemInput is the DTO passed from the transport layer to ItemService.
type CreateItemInput struct {
	ID          string // optional; generated when empty
	Name        string
	Description *string
	Price       float64
	Stock       int
}

// UpdateItemInput carries a partial item update. Nil fields are not changed.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

// ListItemsInput carries the list query parameters.
type ListItemsInput struct {
	MinPrice *float64
	Limit    *int // only applied together with MinPrice; nil = default
}

type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, input ListItemsInput) ([]*domain.Item, error)
	Update(ctx context.Context, id string, input UpdateItemInput) (*domain.Item, error)
}
