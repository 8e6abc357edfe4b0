package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "cash"
	PaymentModeCheque   PaymentMode = "cheque"
	PaymentModeTransfer PaymentMode = "transfer"
)

type SettlementStatus string

const (
	SettlementCleared   SettlementStatus = "cleared"
	SettlementUncleared SettlementStatus = "uncleared"
)

// Settlement is one ledger entry against a credit's balance. Status is
// meaningful only for cheques; cash and transfers are final on entry.
// GuaranteeChequeID links a cheque settlement to the guarantee cheque
// it settles.
type Settlement struct {
	ID                int64             `json:"id"`
	CreditID          int64             `json:"credit_id"`
	Amount            decimal.Decimal   `json:"amount"`
	SettledOn         time.Time         `json:"settled_on"`
	Mode              PaymentMode       `json:"mode"`
	Status            *SettlementStatus `json:"status,omitempty"`
	Memo              string            `json:"memo,omitempty"`
	GuaranteeChequeID *int64            `json:"guarantee_cheque_id,omitempty"`
	AgentID           int64             `json:"agent_id"`
	CreatedOn         time.Time         `json:"created_on"`
}

// Normalize clears the status for non-cheque modes and defaults cheque
// settlements to uncleared.
func (s *Settlement) Normalize() {
	if s.Mode != PaymentModeCheque {
		s.Status = nil
		return
	}
	if s.Status == nil {
		st := SettlementUncleared
		s.Status = &st
	}
}

// CountsTowardBalance reports whether this settlement reduces the
// outstanding balance: cash and transfers always do, cheques only once
// cleared by the bank.
func (s *Settlement) CountsTowardBalance() bool {
	if s.Mode != PaymentModeCheque {
		return true
	}
	return s.Status != nil && *s.Status == SettlementCleared
}

func (s *Settlement) Validate() error {
	if !s.Amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}
	switch s.Mode {
	case PaymentModeCash, PaymentModeCheque, PaymentModeTransfer:
	default:
		return NewValidationError("mode", "must be cash, cheque or transfer")
	}
	if s.SettledOn.IsZero() {
		return NewValidationError("settled_on", "is required")
	}
	return nil
}

// OutstandingBalance derives the amount still owed on a credit from its
// full settlement history, floored at zero. Over-payment is not modeled
// as credit.
func OutstandingBalance(total decimal.Decimal, settlements []Settlement) decimal.Decimal {
	paid := decimal.Zero
	for _, s := range settlements {
		if s.CountsTowardBalance() {
			paid = paid.Add(s.Amount)
		}
	}
	rest := total.Sub(paid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
