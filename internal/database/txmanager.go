package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// txKey carries the ambient *sql.Tx. A typed nil marks a context detached from it.
type txKey struct{}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a function as one unit of work. Repositories pick the transaction up
// through GetTx.
type TxManager interface {
	// WithTx runs fn in a new read-write transaction. A transaction already present in
	// ctx is never joined.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// WithReadOnlyTx runs fn in a read-only repeatable-read transaction, so every
	// query fn issues sees the same snapshot.
	WithReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager returns a TxManager over db.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

var readOnlySnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

func (m *sqlTxManager) WithReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, readOnlySnapshot, fn)
}

// run commits when fn returns nil and rolls back otherwise. fn's error is returned as is,
// joined with the rollback error when the rollback fails too. A panic in fn rolls back
// and is re-raised.
func (m *sqlTxManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetTx returns the transaction bound to ctx, or db when there is none.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return db
}

// Detach returns a context with every value of ctx except the ambient transaction,
// which is also immune to ctx cancellation. Work started from it runs outside the
// caller's unit of work.
func Detach(ctx context.Context) context.Context {
	return context.WithValue(context.WithoutCancel(ctx), txKey{}, (*sql.Tx)(nil))
}
