package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreditType string

const (
	// CreditTypeSingle is a credit with one due date, explicit or
	// derived from a duration at creation time.
	CreditTypeSingle CreditType = "single"
	// CreditTypeSplit is a credit opened with a cash down payment and
	// the remainder covered by guarantee cheques.
	CreditTypeSplit CreditType = "split"
)

// DefaultTermDays is applied when a single credit carries neither an
// explicit due date nor a duration.
const DefaultTermDays = 30

// Credit is a loan/obligation owed by a client. Outstanding is the
// persisted balance, always recomputable from the settlement rows.
type Credit struct {
	ID           int64           `json:"id"`
	ClientID     int64           `json:"client_id"`
	PolicyNumber string          `json:"policy_number"`
	Type         CreditType      `json:"type"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Description  string          `json:"description,omitempty"`
	AgentID      int64           `json:"agent_id"`

	// Single-type term: either DueDate or exactly one duration field.
	DurationDays   *int       `json:"duration_days,omitempty"`
	DurationWeeks  *int       `json:"duration_weeks,omitempty"`
	DurationMonths *int       `json:"duration_months,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

func (c *Credit) TotalPaid() decimal.Decimal {
	return c.TotalAmount.Sub(c.Outstanding)
}

// ResolveDueDate resolves the term once, at creation time. A duration
// in months approximates a month as 30 days, matching how the desk has
// always booked monthly terms.
func (c *Credit) ResolveDueDate(today time.Time) time.Time {
	if c.DueDate != nil {
		return *c.DueDate
	}
	switch {
	case c.DurationDays != nil:
		return today.AddDate(0, 0, *c.DurationDays)
	case c.DurationWeeks != nil:
		return today.AddDate(0, 0, *c.DurationWeeks*7)
	case c.DurationMonths != nil:
		return today.AddDate(0, 0, *c.DurationMonths*30)
	default:
		return today.AddDate(0, 0, DefaultTermDays)
	}
}

func (c *Credit) Validate() error {
	if c.ClientID == 0 {
		return NewValidationError("client_id", "is required")
	}
	if strings.TrimSpace(c.PolicyNumber) == "" {
		return NewValidationError("policy_number", "is required")
	}
	if c.Type != CreditTypeSingle && c.Type != CreditTypeSplit {
		return NewValidationError("type", "must be single or split")
	}
	if !c.TotalAmount.IsPositive() {
		return NewValidationError("total_amount", "must be greater than zero")
	}
	return nil
}
