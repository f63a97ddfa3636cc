package memory

import (
	"context"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

type ItemRepository struct {
	s *Store
}

func cloneItem(i domain.Item) *domain.Item {
	if i.Description != nil {
		d := *i.Description
		i.Description = &d
	}
	return &i
}

func (r *ItemRepository) Create(_ context.Context, item *domain.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[item.ID]; ok {
		return domain.ErrItemExists
	}
	r.s.items[item.ID] = *cloneItem(*item)
	return nil
}

func (r *ItemRepository) FindByID(_ context.Context, id string) (*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return cloneItem(it), nil
}

func (r *ItemRepository) List(_ context.Context, f ports.ItemFilter) ([]*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Item, 0, len(r.s.items))
	for _, id := range sortedKeys(r.s.items) {
		it := r.s.items[id]
		if f.MinPrice != nil && it.Price < *f.MinPrice {
			continue
		}
		out = append(out, cloneItem(it))
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *ItemRepository) Update(_ context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	upd.Apply(&it)
	r.s.items[id] = it
	return cloneItem(it), nil
}
