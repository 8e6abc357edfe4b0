package repository

import (
	"context"
	"time"

	"creditdesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AgentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	// List searches name, national id and phone with a
	// case-insensitive substring when search is non-empty.
	List(ctx context.Context, search string, page, pageSize int32) ([]domain.Client, int32, error)
}

type CreditRepository interface {
	// CreateSingle inserts the credit with its installment, optional
	// guarantee draft and stored alert in one transaction.
	CreateSingle(ctx context.Context, credit *domain.Credit, inst *domain.Installment, draft *domain.GuaranteeDraft, alert *domain.Alert) error
	// CreateSplit inserts the credit, the cash down payment, the
	// guarantee cheques and their alerts in one transaction, leaving
	// the outstanding balance already recomputed.
	CreateSplit(ctx context.Context, credit *domain.Credit, downPayment *domain.Settlement, cheques []domain.GuaranteeCheque, alerts []domain.Alert) error
	GetByID(ctx context.Context, id int64) (*domain.Credit, error)
	Update(ctx context.Context, credit *domain.Credit) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, clientID, agentID int64, creditType domain.CreditType, search string, page, pageSize int32) ([]domain.Credit, int32, error)
	// RecomputeOutstanding rederives and persists the balance from the
	// settlement rows, returning the new value.
	RecomputeOutstanding(ctx context.Context, creditID int64) (decimal.Decimal, error)
}

type SettlementRepository interface {
	// Create, Update and Delete each recompute the parent credit's
	// outstanding balance within the same transaction.
	Create(ctx context.Context, s *domain.Settlement) error
	GetByID(ctx context.Context, id int64) (*domain.Settlement, error)
	Update(ctx context.Context, s *domain.Settlement) error
	Delete(ctx context.Context, id int64) error
	ListByCredit(ctx context.Context, creditID int64) ([]domain.Settlement, error)
	// SetCleared flips a cheque settlement to cleared and recomputes.
	SetCleared(ctx context.Context, id int64) (*domain.Settlement, error)
}

type ChequeRepository interface {
	Create(ctx context.Context, c *domain.GuaranteeCheque) error
	GetByID(ctx context.Context, id int64) (*domain.GuaranteeCheque, error)
	Update(ctx context.Context, c *domain.GuaranteeCheque) error
	Delete(ctx context.Context, id int64) error
	ListByCredit(ctx context.Context, creditID int64) ([]domain.GuaranteeCheque, error)
	// ListDueWithin returns cheques with due dates in [from, to].
	ListDueWithin(ctx context.Context, from, to time.Time) ([]domain.GuaranteeCheque, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.GuaranteeCheque, error)
	ListAll(ctx context.Context) ([]domain.GuaranteeCheque, error)
	// PayInCash deletes the cheque and records the replacing cash
	// settlement in one transaction, recomputing the balance.
	PayInCash(ctx context.Context, chequeID int64, settlement *domain.Settlement) error
}

type InstallmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Installment, error)
	Update(ctx context.Context, inst *domain.Installment) error
	ListByCredit(ctx context.Context, creditID int64) ([]domain.Installment, error)
	CountByCredit(ctx context.Context, creditID int64) (int, error)
	ListUnprocessed(ctx context.Context) ([]domain.Installment, error)
	// CreatePlan inserts a schedule of installments with their
	// settlements and alerts in one transaction, recomputing the
	// credit balance.
	CreatePlan(ctx context.Context, creditID int64, installments []domain.Installment, settlements []domain.Settlement, alerts []domain.Alert) error

	GetDraftByID(ctx context.Context, id int64) (*domain.GuaranteeDraft, error)
	UpdateDraft(ctx context.Context, draft *domain.GuaranteeDraft) error
	GetDraftByInstallment(ctx context.Context, installmentID int64) (*domain.GuaranteeDraft, error)
}

type AlertRepository interface {
	Create(ctx context.Context, a *domain.Alert) error
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	List(ctx context.Context, status domain.AlertStatus, agentID int64, page, pageSize int32) ([]domain.Alert, int32, error)
	CountPending(ctx context.Context) (int64, error)
}

type AuditRepository interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error)
	Stats(ctx context.Context, today time.Time) (*domain.AuditStats, error)
}

type DashboardRepository interface {
	Stats(ctx context.Context, today time.Time) (*domain.DashboardStats, error)
	QuickStats(ctx context.Context, today time.Time) (*domain.QuickStats, error)
}
