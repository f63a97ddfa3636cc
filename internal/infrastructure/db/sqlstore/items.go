package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

type ItemRepository struct {
	s *Store
}

const itemColumns = `id, name, description, price, stock`

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	_, err := r.s.db.ExecContext(ctx, r.s.q(
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?)`),
		item.ID, item.Name, nullString(item.Description), item.Price, item.Stock,
	)
	if err != nil {
		if r.s.dialect.IsUniqueViolation(err) {
			return domain.ErrItemExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	return r.findOne(ctx, r.s.db, id)
}

func (r *ItemRepository) List(ctx context.Context, f ports.ItemFilter) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any

	if f.MinPrice != nil {
		query += ` WHERE price >= ?`
		args = append(args, *f.MinPrice)
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.s.db.QueryContext(ctx, r.s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

func (r *ItemRepository) Update(ctx context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error) {
	var (
		sets []string
		args []any
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *upd.Price)
	}
	if upd.Stock != nil {
		sets = append(sets, "stock = ?")
		args = append(args, *upd.Stock)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	args = append(args, id)

	var item *domain.Item
	err := r.s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, r.s.q(`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrItemNotFound
		}
		item, err = r.findOne(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) findOne(ctx context.Context, db DBTX, id string) (*domain.Item, error) {
	it, err := scanItem(db.QueryRowContext(ctx, r.s.q(`SELECT `+itemColumns+` FROM items WHERE id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return it, nil
}

func scanItem(row scanner) (*domain.Item, error) {
	var (
		it   domain.Item
		desc sql.NullString
	)
	if err := row.Scan(&it.ID, &it.Name, &desc, &it.Price, &it.Stock); err != nil {
		return nil, err
	}
	if desc.Valid {
		it.Description = &desc.String
	}
	return &it, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
