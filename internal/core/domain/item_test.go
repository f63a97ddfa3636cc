package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"minimal", Item{Name: "ab", Price: 0, Stock: 0}, false},
		{"upper bounds", Item{Name: strings.Repeat("n", 50), Description: strPtr(strings.Repeat("d", 500)), Price: 1e8, Stock: 10000}, false},
		{"name too short", Item{Name: "a", Price: 1, Stock: 1}, true},
		{"name too long", Item{Name: strings.Repeat("n", 51), Price: 1, Stock: 1}, true},
		{"description too short", Item{Name: "ab", Description: strPtr("ab"), Price: 1, Stock: 1}, true},
		{"description too long", Item{Name: "ab", Description: strPtr(strings.Repeat("d", 501)), Price: 1, Stock: 1}, true},
		{"negative price", Item{Name: "ab", Price: -1, Stock: 1}, true},
		{"price too high", Item{Name: "ab", Price: 1e8 + 1, Stock: 1}, true},
		{"NaN price", Item{Name: "ab", Price: math.NaN(), Stock: 1}, true},
		{"negative stock", Item{Name: "ab", Price: 1, Stock: -1}, true},
		{"stock too high", Item{Name: "ab", Price: 1, Stock: 10001}, true},
		{"multibyte name counts runes", Item{Name: "ñá", Price: 1, Stock: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestItemUpdate_ValidateAndApply(t *testing.T) {
	stock := 10001
	if err := (ItemUpdate{Stock: &stock}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := (ItemUpdate{}).Validate(); err != nil {
		t.Fatalf("empty update is valid, got %v", err)
	}

	item := Item{ID: "i1", Name: "Hammer", Description: strPtr("steel head"), Price: 10, Stock: 5}
	price := 12.5
	upd := ItemUpdate{Price: &price}
	upd.Apply(&item)

	if item.Price != 12.5 || item.Stock != 5 || item.Name != "Hammer" || *item.Description != "steel head" {
		t.Fatalf("only price should change: %+v", item)
	}
	if !(ItemUpdate{}).IsEmpty() || upd.IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
}

func TestUserUpdate_Apply(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", PasswordHash: "h1"}
	email := "b@x.com"
	UserUpdate{Email: &email}.Apply(&u)

	if u.Email != "b@x.com" || u.PasswordHash != "h1" {
		t.Fatalf("email-only update changed the hash: %+v", u)
	}
}

func TestAccessToken_ValidAt(t *testing.T) {
	exp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := &AccessToken{ExpiresAt: exp}

	if !tok.ValidAt(exp.Add(-time.Nanosecond)) {
		t.Error("token should be valid before expiry")
	}
	if tok.ValidAt(exp) {
		t.Error("expiry is exclusive")
	}
}
