package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GuaranteeCheque is a cheque held as collateral against a credit. It
// is not a payment: it never reduces the balance until converted into
// a settlement (cleared cheque or cash replacement).
type GuaranteeCheque struct {
	ID        int64           `json:"id"`
	CreditID  int64           `json:"credit_id"`
	Number    string          `json:"number"`
	Amount    decimal.Decimal `json:"amount"`
	Bank      string          `json:"bank"`
	IssuedOn  time.Time       `json:"issued_on"`
	DueOn     time.Time       `json:"due_on"`
	Memo      string          `json:"memo,omitempty"`
	CreatedOn time.Time       `json:"created_on"`
}

// IsOverdue is a derived property, never stored.
func (g *GuaranteeCheque) IsOverdue(today time.Time) bool {
	return DateOf(g.DueOn).Before(DateOf(today))
}

func (g *GuaranteeCheque) Validate() error {
	if strings.TrimSpace(g.Number) == "" {
		return NewValidationError("number", "is required")
	}
	if strings.TrimSpace(g.Bank) == "" {
		return NewValidationError("bank", "is required")
	}
	if !g.Amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}
	if g.IssuedOn.IsZero() || g.DueOn.IsZero() {
		return NewValidationError("dates", "issued_on and due_on are required")
	}
	return nil
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b (negative when b is
// before a).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
