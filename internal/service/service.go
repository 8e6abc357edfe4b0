package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"creditdesk-backend/internal/domain"
)

// Actor identifies the agent behind a mutating request, together with
// the request metadata copied onto audit entries.
type Actor struct {
	AgentID   int64
	IP        string
	UserAgent string
	SessionID string
}

type ClientService interface {
	Create(ctx context.Context, actor Actor, client *domain.Client) error
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, actor Actor, client *domain.Client) error
	Delete(ctx context.Context, actor Actor, id int64) error
	List(ctx context.Context, search string, page, pageSize int32) ([]domain.Client, int32, error)
}

// CreateSingleCreditInput opens a single-due-date credit. Draft, when
// set, is a guarantee cheque held instead of cash for the one
// installment.
type CreateSingleCreditInput struct {
	Credit domain.Credit
	Draft  *domain.GuaranteeDraft
}

// CreateSplitCreditInput opens a split credit: a cash down payment now
// and the remainder covered by guarantee cheques. A single cheque with
// a zero amount is filled with the remainder; the sum of agent-filled
// cheques is accepted as entered.
type CreateSplitCreditInput struct {
	Credit      domain.Credit
	DownPayment decimal.Decimal
	SettledOn   time.Time
	Cheques     []domain.GuaranteeCheque
}

// CreatePlanInput schedules Parts installments over the outstanding
// amount at the given cadence, the first falling due on FirstDueOn.
// Mode cheque books an uncleared post-dated cheque settlement per
// installment; cash leaves settlement entry to collection time.
type CreatePlanInput struct {
	CreditID   int64
	Parts      int
	Frequency  domain.PlanFrequency
	FirstDueOn time.Time
	Mode       domain.PaymentMode
}

// CreditTotals is the paid/pending breakdown of one credit.
type CreditTotals struct {
	PaidCash              decimal.Decimal `json:"paid_cash"`
	PaidClearedCheques    decimal.Decimal `json:"paid_cleared_cheques"`
	PendingCheques        decimal.Decimal `json:"pending_cheques"`
	Outstanding           decimal.Decimal `json:"outstanding"`
	RemainderAfterCheques decimal.Decimal `json:"remainder_after_cheques"`
}

// CreditDetail is the full view of one credit.
type CreditDetail struct {
	Credit       *domain.Credit           `json:"credit"`
	Client       *domain.Client           `json:"client"`
	Settlements  []domain.Settlement      `json:"settlements"`
	Cheques      []domain.GuaranteeCheque `json:"guarantee_cheques"`
	Installments []domain.Installment     `json:"installments"`
	Drafts       []domain.GuaranteeDraft  `json:"guarantee_drafts,omitempty"`
	Totals       CreditTotals             `json:"totals"`
}

type CreditService interface {
	CreateSingle(ctx context.Context, actor Actor, in CreateSingleCreditInput) (*domain.Credit, error)
	CreateSplit(ctx context.Context, actor Actor, in CreateSplitCreditInput) (*domain.Credit, error)
	Get(ctx context.Context, id int64) (*CreditDetail, error)
	Update(ctx context.Context, actor Actor, credit *domain.Credit) error
	Delete(ctx context.Context, actor Actor, id int64) error
	List(ctx context.Context, clientID, agentID int64, creditType domain.CreditType, search string, page, pageSize int32) ([]domain.Credit, int32, error)
	CreatePlan(ctx context.Context, actor Actor, in CreatePlanInput) ([]domain.Installment, error)
}

type SettlementService interface {
	Create(ctx context.Context, actor Actor, s *domain.Settlement) error
	Update(ctx context.Context, actor Actor, s *domain.Settlement) error
	Delete(ctx context.Context, actor Actor, id int64) error
	ListByCredit(ctx context.Context, creditID int64) ([]domain.Settlement, error)
	// ClearCheque flips an uncleared cheque settlement to cleared.
	ClearCheque(ctx context.Context, actor Actor, id int64) (*domain.Settlement, error)
}

type ChequeService interface {
	Create(ctx context.Context, actor Actor, c *domain.GuaranteeCheque) error
	Get(ctx context.Context, id int64) (*domain.GuaranteeCheque, error)
	Update(ctx context.Context, actor Actor, c *domain.GuaranteeCheque) error
	Delete(ctx context.Context, actor Actor, id int64) error
	ListByCredit(ctx context.Context, creditID int64) ([]domain.GuaranteeCheque, error)
	// PayInCash replaces a held cheque with a cash settlement for the
	// same amount.
	PayInCash(ctx context.Context, actor Actor, chequeID int64, settledOn time.Time, memo string) error

	// Legacy guarantee draft actions.
	MarkDraftToCollect(ctx context.Context, actor Actor, draftID int64) (*domain.GuaranteeDraft, error)
	DeferDraft(ctx context.Context, actor Actor, draftID int64, expectedOn time.Time) (*domain.GuaranteeDraft, error)
	RequestClientContact(ctx context.Context, actor Actor, draftID int64, note string) (*domain.GuaranteeDraft, error)
}

type ReminderService interface {
	// List derives the due-date view as of today, filtered, with its
	// summary. Nothing is persisted.
	List(ctx context.Context, filter domain.ReminderFilter, today time.Time) ([]domain.Reminder, domain.ReminderSummary, error)
}

type AlertService interface {
	List(ctx context.Context, status domain.AlertStatus, agentID int64, page, pageSize int32) ([]domain.Alert, int32, error)
	Handle(ctx context.Context, actor Actor, id int64, note string) (*domain.Alert, error)
	Defer(ctx context.Context, actor Actor, id int64, until time.Time) (*domain.Alert, error)
}

type AuditService interface {
	// Record appends a trail entry. It never fails the caller: errors
	// are logged and swallowed.
	Record(ctx context.Context, entry *domain.AuditEntry)
	List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error)
	Stats(ctx context.Context) (*domain.AuditStats, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	QuickStats(ctx context.Context) (*domain.QuickStats, error)
}

type EmailService interface {
	SendReminderDigest(ctx context.Context, email, name string, reminders []domain.Reminder) error
}
