package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

type UserRepository struct {
	s *Store
}

const userColumns = `id, email, password_hash, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.s.db.ExecContext(ctx, r.s.q(
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`),
		user.ID, user.Email, user.PasswordHash, toMillis(user.CreatedAt), toMillis(user.UpdatedAt),
	)
	if err != nil {
		if r.s.dialect.IsUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, r.s.db, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, r.s.db, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.q(`SELECT `+userColumns+` FROM users ORDER BY id`))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	sets := []string{"updated_at = ?"}
	args := []any{toMillis(time.Now().UTC())}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	args = append(args, id)

	var user *domain.User
	err := r.s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, r.s.q(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
		if err != nil {
			if r.s.dialect.IsUniqueViolation(err) {
				return domain.ErrUserExists
			}
			return fmt.Errorf("update user: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrUserNotFound
		}
		user, err = r.findOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, db DBTX, query string, arg any) (*domain.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, r.s.q(query), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return &u, nil
}
