// Package storetest is a behavioural suite every repository implementation
// must pass. Store packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

// Repos bundles the three repositories of one backend.
type Repos struct {
	Users  ports.UserRepository
	Items  ports.ItemRepository
	Tokens ports.TokenRepository
}

// Factory returns fresh, empty repositories for each subtest.
type Factory func(t *testing.T) Repos

func Run(t *testing.T, newRepos Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newRepos(t)) })
	t.Run("user email conflict", func(t *testing.T) { testUserConflict(t, newRepos(t)) })
	t.Run("user partial update", func(t *testing.T) { testUserUpdate(t, newRepos(t)) })
	t.Run("items", func(t *testing.T) { testItems(t, newRepos(t)) })
	t.Run("item filter", func(t *testing.T) { testItemFilter(t, newRepos(t)) })
	t.Run("item partial update", func(t *testing.T) { testItemUpdate(t, newRepos(t)) })
	t.Run("tokens", func(t *testing.T) { testTokens(t, newRepos(t)) })
	t.Run("token foreign key", func(t *testing.T) { testTokenForeignKey(t, newRepos(t)) })
}

func strPtr(s string) *string { return &s }

func newUser(id, email string) *domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.User{ID: id, Email: email, PasswordHash: "hash-" + id, CreatedAt: now, UpdatedAt: now}
}

func testUsers(t *testing.T, r Repos) {
	ctx := context.Background()

	require.NoError(t, r.Users.Create(ctx, newUser("u2", "b@x.com")))
	require.NoError(t, r.Users.Create(ctx, newUser("u1", "a@x.com")))

	got, err := r.Users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "hash-u1", got.PasswordHash)

	got, err = r.Users.FindByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ID)

	_, err = r.Users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = r.Users.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	all, err := r.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u1", all[0].ID)
	assert.Equal(t, "u2", all[1].ID)
}

func testUserConflict(t *testing.T, r Repos) {
	ctx := context.Background()

	require.NoError(t, r.Users.Create(ctx, newUser("u1", "a@x.com")))
	assert.ErrorIs(t, r.Users.Create(ctx, newUser("u2", "a@x.com")), domain.ErrUserExists)
	assert.ErrorIs(t, r.Users.Create(ctx, newUser("u1", "other@x.com")), domain.ErrUserExists)

	all, err := r.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "u1", all[0].ID)
	assert.Equal(t, "a@x.com", all[0].Email)

	require.NoError(t, r.Users.Create(ctx, newUser("u3", "c@x.com")))
	_, err = r.Users.Update(ctx, "u3", domain.UserUpdate{Email: strPtr("a@x.com")})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func testUserUpdate(t *testing.T, r Repos) {
	ctx := context.Background()

	require.NoError(t, r.Users.Create(ctx, newUser("u1", "a@x.com")))

	updated, err := r.Users.Update(ctx, "u1", domain.UserUpdate{Email: strPtr("new@x.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)
	assert.Equal(t, "hash-u1", updated.PasswordHash)

	got, err := r.Users.FindByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	_, err = r.Users.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	updated, err = r.Users.Update(ctx, "u1", domain.UserUpdate{PasswordHash: strPtr("rehashed")})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)
	assert.Equal(t, "rehashed", updated.PasswordHash)

	_, err = r.Users.Update(ctx, "missing", domain.UserUpdate{Email: strPtr("z@x.com")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func testItems(t *testing.T, r Repos) {
	ctx := context.Background()

	desc := "a sturdy hammer"
	require.NoError(t, r.Items.Create(ctx, &domain.Item{ID: "i1", Name: "Hammer", Description: &desc, Price: 12.5, Stock: 3}))
	require.NoError(t, r.Items.Create(ctx, &domain.Item{ID: "i2", Name: "Nail", Price: 0.1, Stock: 10000}))

	got, err := r.Items.FindByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "Hammer", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.InDelta(t, 12.5, got.Price, 1e-9)
	assert.Equal(t, 3, got.Stock)

	got, err = r.Items.FindByID(ctx, "i2")
	require.NoError(t, err)
	assert.Nil(t, got.Description)

	_, err = r.Items.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.ErrorIs(t, r.Items.Create(ctx, &domain.Item{ID: "i1", Name: "Dup", Price: 1, Stock: 1}), domain.ErrItemExists)

	all, err := r.Items.List(ctx, ports.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "i1", all[0].ID)
}

func testItemFilter(t *testing.T, r Repos) {
	ctx := context.Background()

	for i, price := range []float64{5, 50, 500, 5000} {
		id := string(rune('a' + i))
		require.NoError(t, r.Items.Create(ctx, &domain.Item{ID: id, Name: "item " + id, Price: price, Stock: 1}))
	}

	minPrice := 50.0
	got, err := r.Items.List(ctx, ports.ItemFilter{MinPrice: &minPrice, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "c", "d"}, []string{got[0].ID, got[1].ID, got[2].ID})

	got, err = r.Items.List(ctx, ports.ItemFilter{MinPrice: &minPrice, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func testItemUpdate(t *testing.T, r Repos) {
	ctx := context.Background()

	desc := "original text"
	require.NoError(t, r.Items.Create(ctx, &domain.Item{ID: "i1", Name: "Hammer", Description: &desc, Price: 10, Stock: 5}))

	stock := 7
	updated, err := r.Items.Update(ctx, "i1", domain.ItemUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Hammer", updated.Name)
	assert.InDelta(t, 10.0, updated.Price, 1e-9)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "original text", *updated.Description)

	got, err := r.Items.FindByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	_, err = r.Items.Update(ctx, "missing", domain.ItemUpdate{Stock: &stock})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func testTokens(t *testing.T, r Repos) {
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, r.Users.Create(ctx, newUser("u1", "a@x.com")))

	live := &domain.AccessToken{Token: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	expired := &domain.AccessToken{Token: "expired", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, r.Tokens.Create(ctx, live))
	require.NoError(t, r.Tokens.Create(ctx, expired))

	got, err := r.Tokens.FindValid(ctx, "live", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.WithinDuration(t, live.ExpiresAt, got.ExpiresAt, time.Millisecond)

	_, err = r.Tokens.FindValid(ctx, "expired", now)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	_, err = r.Tokens.FindValid(ctx, "live", live.ExpiresAt)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound, "expiry is exclusive")

	_, err = r.Tokens.FindValid(ctx, "unknown", now)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	dup := &domain.AccessToken{Token: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	assert.ErrorIs(t, r.Tokens.Create(ctx, dup), domain.ErrTokenExists)
}

func testTokenForeignKey(t *testing.T, r Repos) {
	ctx := context.Background()

	orphan := &domain.AccessToken{Token: "orphan", UserID: "ghost", ExpiresAt: time.Now().Add(time.Hour)}
	assert.ErrorIs(t, r.Tokens.Create(ctx, orphan), domain.ErrUserNotFound)
}
