package ports

import (
	"context"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

// ItemFilter carries the optional list constraints.
type ItemFilter struct {
	MinPrice *float64 // optional: price >= MinPrice
	Limit    int      // 0 = unlimited
}

// ItemRepository persists items.
type ItemRepository interface {
	// Create inserts item. Returns domain.ErrItemExists when the id is taken.
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// List returns items matching filter ordered by id.
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, error)
	Update(ctx context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error)
}
