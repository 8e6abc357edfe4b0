package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxInstallmentParts bounds part numbers in the legacy split flow.
	MaxInstallmentParts = 5
	// ReminderLeadDays is how far ahead of an installment's due date
	// its reminder date falls.
	ReminderLeadDays = 3
)

// Installment is one scheduled portion of a credit in the legacy
// installment-centric flow, kept as a deprecated view over the unified
// settlement ledger. Part numbers are unique per credit.
type Installment struct {
	ID          int64           `json:"id"`
	CreditID    int64           `json:"credit_id"`
	PartNumber  int             `json:"part_number"`
	Amount      decimal.Decimal `json:"amount"`
	DueOn       time.Time       `json:"due_on"`
	RemindOn    time.Time       `json:"remind_on"`
	IsCash      bool            `json:"is_cash"`
	IsProcessed bool            `json:"is_processed"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	Memo        string          `json:"memo,omitempty"`
}

// DefaultRemindOn fills RemindOn when unset: due date minus the lead.
func (i *Installment) DefaultRemindOn() {
	if i.RemindOn.IsZero() {
		i.RemindOn = DateOf(i.DueOn).AddDate(0, 0, -ReminderLeadDays)
	}
}

func (i *Installment) Validate() error {
	if i.PartNumber < 1 || i.PartNumber > MaxInstallmentParts {
		return NewValidationError("part_number", "must be between 1 and 5")
	}
	if !i.Amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}
	if i.DueOn.IsZero() {
		return NewValidationError("due_on", "is required")
	}
	return nil
}

type DraftStatus string

const (
	DraftStatusGuarantee DraftStatus = "guarantee"
	DraftStatusToCollect DraftStatus = "to_collect"
	DraftStatusCollected DraftStatus = "collected"
	DraftStatusDeferred  DraftStatus = "deferred"
	DraftStatusCancelled DraftStatus = "cancelled"
)

// GuaranteeDraft is the old-style cheque tied to an installment rather
// than to the credit (legacy flow). At most one per installment.
type GuaranteeDraft struct {
	ID            int64           `json:"id"`
	InstallmentID int64           `json:"installment_id"`
	Number        string          `json:"number"`
	Bank          string          `json:"bank"`
	Amount        decimal.Decimal `json:"amount"`
	IssuedOn      time.Time       `json:"issued_on"`
	CollectedOn   *time.Time      `json:"collected_on,omitempty"`
	ExpectedOn    *time.Time      `json:"expected_on,omitempty"`
	Status        DraftStatus     `json:"status"`
	Remarks       string          `json:"remarks,omitempty"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

// IsOverdue mirrors GuaranteeCheque: past the expected settlement date.
func (d *GuaranteeDraft) IsOverdue(today time.Time) bool {
	return d.ExpectedOn != nil && DateOf(*d.ExpectedOn).Before(DateOf(today))
}

// PlanFrequency is the cadence of a multi-installment payment plan.
type PlanFrequency string

const (
	FrequencyWeekly    PlanFrequency = "weekly"
	FrequencyBiweekly  PlanFrequency = "biweekly"
	FrequencyMonthly   PlanFrequency = "monthly"
	FrequencyQuarterly PlanFrequency = "quarterly"
)

// IntervalDays returns the day spacing between plan installments.
func (f PlanFrequency) IntervalDays() (int, error) {
	switch f {
	case FrequencyWeekly:
		return 7, nil
	case FrequencyBiweekly:
		return 15, nil
	case FrequencyMonthly:
		return 30, nil
	case FrequencyQuarterly:
		return 90, nil
	default:
		return 0, NewValidationError("frequency", "must be weekly, biweekly, monthly or quarterly")
	}
}
