package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
)

type contextKey string

const txKey contextKey = "postgresql_transaction"

//go:generate mockgen -source=transaction.go -destination=mock/transaction_mock.go -package=mock

// Transaction begins a transaction and carries it through the returned context, so
// repositories called with that context join it transparently.
type Transaction interface {
	Begin(ctx context.Context) (context.Context, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TX is the context carrying Transaction implementation.
type TX struct {
	db PostgreSQLClient
}

// NewTransaction creates a new transaction wrapper.
func NewTransaction(db PostgreSQLClient) *TX {
	return &TX{db: db}
}

// Begin starts a transaction and returns context with embedded transaction
func (t *TX) Begin(ctx context.Context) (context.Context, error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return nil, errors.NewTracer("failed to begin transaction").Wrap(err)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// BeginTx starts a transaction with options and returns context with embedded transaction
func (t *TX) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (context.Context, error) {
	tx, err := t.db.BeginTx(ctx, txOptions)
	if err != nil {
		return nil, errors.NewTracer("failed to begin transaction with options").Wrap(err)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction from context
func (t *TX) Commit(ctx context.Context) error {
	tx, ok := GetTx(ctx)
	if !ok {
		return errors.NewTracer("no transaction found in context")
	}
	return tx.Commit(ctx)
}

// Rollback rolls back the transaction from context. Rolling back a committed
// transaction is a no-op, so it is safe to defer.
func (t *TX) Rollback(ctx context.Context) error {
	tx, ok := GetTx(ctx)
	if !ok {
		return errors.NewTracer("no transaction found in context")
	}
	return tx.Rollback(ctx)
}

// GetTx extracts transaction from context
func GetTx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// WithTx runs fn inside a read committed transaction.
func WithTx(ctx context.Context, db PostgreSQLClient, fn func(ctx context.Context) error) error {
	return Atomic(ctx, NewTransaction(db), fn)
}

// Atomic runs fn inside a transaction opened through tx. The transaction is rolled
// back when fn returns an error or panics and committed otherwise.
func Atomic(ctx context.Context, tx Transaction, fn func(ctx context.Context) error) error {
	txCtx, err := tx.Begin(ctx)
	if err != nil {
		return err
	}
	return run(txCtx, tx, fn)
}

// AtomicWithOptions is Atomic with explicit isolation and access mode.
func AtomicWithOptions(ctx context.Context, tx Transaction, txOptions pgx.TxOptions, fn func(ctx context.Context) error) error {
	txCtx, err := tx.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}
	return run(txCtx, tx, fn)
}

func run(txCtx context.Context, tx Transaction, fn func(ctx context.Context) error) error {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(txCtx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(txCtx); rbErr != nil {
			return errors.NewTracer("transaction failed, rollback failed: " + rbErr.Error()).Wrap(err)
		}
		return err
	}

	return tx.Commit(txCtx)
}

// ReadOnlyTxOptions returns options for a read-only transaction whose queries all
// see the same snapshot.
func ReadOnlyTxOptions() pgx.TxOptions {
	return pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}
}
