package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// txStarter lo cumple *pgxpool.Pool.
type txStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// inTx ejecuta fn con la transacción como Querier. Commit solo si fn no devuelve error.
func inTx(ctx context.Context, db txStarter, fn func(q Querier) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
