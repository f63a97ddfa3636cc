package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrItemNotFound = errors.New("item not found")
	ErrItemExists   = errors.New("item already exists")

	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthorized       = errors.New("invalid or expired token")

	// ErrTokenNotFound is returned by token stores when no unexpired token matches.
	ErrTokenNotFound = errors.New("access token not found")
	// ErrTokenExists signals a token collision, which is a data integrity failure.
	ErrTokenExists = errors.New("access token already exists")

	ErrValidation = errors.New("validation failed")
)
