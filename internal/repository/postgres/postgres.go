package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Store struct {
	db *sql.DB
	repository.AgentRepository
	repository.ClientRepository
	repository.CreditRepository
	repository.SettlementRepository
	repository.ChequeRepository
	repository.InstallmentRepository
	repository.AlertRepository
	repository.AuditRepository
	repository.DashboardRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		AgentRepository:       NewAgentRepository(db),
		ClientRepository:      NewClientRepository(db),
		CreditRepository:      NewCreditRepository(db),
		SettlementRepository:  NewSettlementRepository(db),
		ChequeRepository:      NewChequeRepository(db),
		InstallmentRepository: NewInstallmentRepository(db),
		AlertRepository:       NewAlertRepository(db),
		AuditRepository:       NewAuditRepository(db),
		DashboardRepository:   NewDashboardRepository(db),
	}
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so shared statements
// can run inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func itoa(n int) string { return strconv.Itoa(n) }

// isUniqueViolation detects PostgreSQL error 23505.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	default:
		return err
	}
}

// recomputeOutstandingTx rederives a credit's balance from its
// settlement rows in a single UPDATE: cash and transfers always count,
// cheques only once cleared, and the result is floored at zero.
func recomputeOutstandingTx(ctx context.Context, q dbtx, creditID int64) (decimal.Decimal, error) {
	query := `UPDATE credits
	          SET outstanding = GREATEST(0, total_amount - COALESCE((
	              SELECT SUM(amount) FROM settlements
	              WHERE credit_id = $1
	                AND (mode IN ('cash', 'transfer')
	                     OR (mode = 'cheque' AND status = 'cleared'))
	          ), 0)), updated_on = NOW()
	          WHERE id = $1
	          RETURNING outstanding`
	var outstanding decimal.Decimal
	if err := q.QueryRowContext(ctx, query, creditID).Scan(&outstanding); err != nil {
		return decimal.Zero, translateErr(err)
	}
	return outstanding, nil
}

// withTx runs fn inside a transaction, rolling back on error or panic.
// The deferred rollback is a no-op after a successful commit.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
