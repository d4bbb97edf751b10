// Package repository provides hand-written PostgreSQL queries over a pgx
// connection pool. Services depend on the Querier interface so unit tests
// can substitute an in-memory implementation; transactional work goes
// through Store.WithTx so a whole unit of work commits or rolls back as
// one.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a row does not exist. Callers translate it
// into a domain not-found or a silent no-op depending on context.
var ErrNotFound = errors.New("repository: not found")

// DBTX is the subset of pgx behavior shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries executes individual statements against db.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given connection, pool, or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Store combines the query surface with transaction control.
type Store interface {
	Querier

	// WithTx runs fn inside a single database transaction. If fn returns an
	// error the transaction is rolled back and the error returned unchanged.
	WithTx(ctx context.Context, fn func(q Querier) error) error
}

// SQLStore is the production Store backed by a pgx pool.
type SQLStore struct {
	*Queries
	pool *pgxpool.Pool
}

var _ Store = (*SQLStore)(nil)

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries: New(pool),
		pool:    pool,
	}
}

// WithTx implements Store.
func (s *SQLStore) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
// Used to detect products that cannot be deleted because orders reference
// them.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// noRows translates pgx.ErrNoRows into ErrNotFound, leaving other errors
// untouched.
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
