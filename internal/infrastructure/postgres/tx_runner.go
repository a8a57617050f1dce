package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ReposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReposFor repositorios que comparten el mismo Querier (pool o tx).
func ReposFor(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Users:      NewUserRepository(q),
		Invites:    NewInviteTokenRepository(q),
		Payments:   NewPaymentRepository(q),
		Charges:    NewChargeRepository(q),
		Attendance: NewAttendanceRepository(q),
		Inventory:  NewInventoryRepository(q),
	}
}
