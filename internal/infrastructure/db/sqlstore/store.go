// Package sqlstore implements the repositories on database/sql. The same
// queries run on PostgreSQL (pgx) and SQLite (modernc); a Dialect covers
// placeholders and constraint error codes. Timestamps are stored as unix
// milliseconds so both engines compare them the same way.
package sqlstore

import (
	"context"
	"database/sql"
	"time"
)

const defaultTimeout = 5 * time.Second

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Users() *UserRepository   { return &UserRepository{s: s} }
func (s *Store) Items() *ItemRepository   { return &ItemRepository{s: s} }
func (s *Store) Tokens() *TokenRepository { return &TokenRepository{s: s} }

// Name identifies the backing engine in health reports.
func (s *Store) Name() string { return s.dialect.Name() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) q(query string) string { return s.dialect.Rebind(query) }

// withTx runs fn inside a transaction, committing on success and rolling back
// on error or panic.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
