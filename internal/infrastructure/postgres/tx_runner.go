package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLedger inicia una transacción con los repos de producción y cierres y hace Commit o Rollback.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	prodRepo repository.ProductionRepository,
	summaryRepo repository.DailySummaryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serializa cierres concurrentes: la cadena de arrastres depende del orden.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}

	if err := fn(NewProductionRepository(tx), NewDailySummaryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ledgerLockKey clave del advisory lock del libro de leche.
const ledgerLockKey int64 = 0x6d696c6b
