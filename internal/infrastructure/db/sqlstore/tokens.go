package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

type TokenRepository struct {
	s *Store
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	_, err := r.s.db.ExecContext(ctx, r.s.q(
		`INSERT INTO access_tokens (access_token, user_id, expires_at) VALUES (?, ?, ?)`),
		token.Token, token.UserID, toMillis(token.ExpiresAt),
	)
	if err != nil {
		switch {
		case r.s.dialect.IsForeignKeyViolation(err):
			return domain.ErrUserNotFound
		case r.s.dialect.IsUniqueViolation(err):
			return domain.ErrTokenExists
		}
		return fmt.Errorf("insert access token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindValid(ctx context.Context, token string, now time.Time) (*domain.AccessToken, error) {
	var (
		at        domain.AccessToken
		expiresAt int64
	)
	err := r.s.db.QueryRowContext(ctx, r.s.q(
		`SELECT access_token, user_id, expires_at FROM access_tokens
		 WHERE access_token = ? AND expires_at > ?`),
		token, toMillis(now),
	).Scan(&at.Token, &at.UserID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find access token: %w", err)
	}
	at.ExpiresAt = fromMillis(expiresAt)
	return &at, nil
}
