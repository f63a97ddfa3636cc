package domain

import "time"

// TokenTypeBearer is the only token type the API issues.
const TokenTypeBearer = "bearer"

// AccessToken binds an opaque bearer token to a user until ExpiresAt.
type AccessToken struct {
	Token     string    `json:"access_token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidAt reports whether the token is still usable at t. Expiry is exclusive.
func (t *AccessToken) ValidAt(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
