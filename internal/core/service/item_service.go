package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type ItemService struct {
	repo   ports.ItemRepository
	logger zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

// Create validates the item before it reaches storage.
func (s *ItemService) Create(ctx context.Context, input ports.CreateItemInput) (*domain.Item, error) {
	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	item := &domain.Item{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", item.ID).Msg("item created")
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all items, or at most Limit items priced at or above MinPrice
// when MinPrice is set.
func (s *ItemService) List(ctx context.Context, input ports.ListItemsInput) ([]*domain.Item, error) {
	if input.MinPrice == nil {
		return s.repo.List(ctx, ports.ItemFilter{})
	}

	limit := defaultListLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	if limit < 1 || limit > maxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, maxListLimit)
	}

	return s.repo.List(ctx, ports.ItemFilter{MinPrice: input.MinPrice, Limit: limit})
}

// Update changes only the supplied fields after range-checking them.
func (s *ItemService) Update(ctx context.Context, id string, input ports.UpdateItemInput) (*domain.Item, error) {
	upd := domain.ItemUpdate{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	item, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", id).Msg("item updated")
	return item, nil
}
