package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users       map[string]*domain.User
	createCalls int
	findErr     error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.createCalls++
	for _, u := range r.users {
		if u.ID == user.ID || u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	upd.Apply(u)
	return cloneUser(u), nil
}

type stubItemRepo struct {
	items       map[string]*domain.Item
	createCalls int
	lastFilter  ports.ItemFilter
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*domain.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) error {
	r.createCalls++
	if _, ok := r.items[item.ID]; ok {
		return domain.ErrItemExists
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubItemRepo) List(_ context.Context, f ports.ItemFilter) ([]*domain.Item, error) {
	r.lastFilter = f
	out := make([]*domain.Item, 0, len(r.items))
	for _, it := range r.items {
		clone := *it
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	upd.Apply(it)
	clone := *it
	return &clone, nil
}

type stubTokenRepo struct {
	tokens    map[string]*domain.AccessToken
	createErr error // if set, Create returns this error
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*domain.AccessToken)}
}

func (r *stubTokenRepo) Create(_ context.Context, t *domain.AccessToken) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.tokens[t.Token]; ok {
		return domain.ErrTokenExists
	}
	clone := *t
	r.tokens[t.Token] = &clone
	return nil
}

func (r *stubTokenRepo) FindValid(_ context.Context, token string, now time.Time) (*domain.AccessToken, error) {
	t, ok := r.tokens[token]
	if !ok || !t.ValidAt(now) {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

// fixedTokens hands out a predetermined sequence of tokens.
type fixedTokens struct {
	next []string
}

func (g *fixedTokens) Generate() (string, error) {
	tok := g.next[0]
	g.next = g.next[1:]
	return tok, nil
}
