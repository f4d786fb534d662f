package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ledgerline/invoice-service/internal/types"
)

// Tx wraps sqlx.Tx with an identifier for tracing
type Tx struct {
	*sqlx.Tx
	ID string
}

// GetTx retrieves a transaction from the context if it exists
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(types.CtxDBTransaction).(*Tx)
	return tx, ok
}

// BeginTx checks a connection out of the pool and starts a transaction on it.
// The returned context carries the transaction.
func (db *DB) BeginTx(ctx context.Context) (context.Context, *Tx, error) {
	sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{
		Tx: sqlxTx,
		ID: types.GenerateUUID(),
	}

	db.logger.Debugw("starting new transaction",
		"tx_id", tx.ID,
		"request_id", types.GetRequestID(ctx),
	)

	return context.WithValue(ctx, types.CtxDBTransaction, tx), tx, nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on error or panic; either way the connection
// goes back to the pool. If ctx already carries a transaction fn joins it
// and the outer caller owns commit and rollback.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}

	ctx, tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic in transaction, rolling back",
				"tx_id", tx.ID,
				"panic", r,
			)
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		db.logger.Debugw("rolling back transaction",
			"tx_id", tx.ID,
			"error", err,
		)
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	db.logger.Debugw("committed transaction", "tx_id", tx.ID)
	return nil
}
