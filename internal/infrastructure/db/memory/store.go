// Package memory holds map-backed repositories for tests and local runs.
// A single Store guards users, items and tokens with one lock so the token
// foreign key can be checked against the user table atomically.
package memory

import (
	"sort"
	"sync"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

type Store struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string // email -> user id
	items   map[string]domain.Item
	tokens  map[string]domain.AccessToken
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
		items:   make(map[string]domain.Item),
		tokens:  make(map[string]domain.AccessToken),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Items returns the item repository view of the store.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// Tokens returns the access token repository view of the store.
func (s *Store) Tokens() *TokenRepository { return &TokenRepository{s: s} }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
