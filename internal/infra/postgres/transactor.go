package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transactor runs collection writes together with their change notification.
type Transactor struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{
		pool: pool,
		opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
	}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
// NOTIFY issued inside fn is delivered to listeners only on commit.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := t.pool.BeginTx(ctx, t.opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
