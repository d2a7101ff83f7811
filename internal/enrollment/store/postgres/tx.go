package postgres

import (
	"context"
	"database/sql"
	"time"

	"trainhub/internal/enrollment/service"
	dErrors "trainhub/pkg/domain-errors"
	txcontext "trainhub/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// Tx runs enrollment transitions inside PostgreSQL transactions. The *sql.Tx is
// also placed in the context so the audit outbox store joins it.
type Tx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTx(db *sql.DB, timeout time.Duration) *Tx {
	return &Tx{db: db, timeout: timeout}
}

func (t *Tx) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), &Store{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}

var _ service.StoreTx = (*Tx)(nil)
var _ service.Store = (*Store)(nil)
