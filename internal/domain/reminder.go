package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Urgency string

const (
	UrgencyCritical      Urgency = "critical"
	UrgencyImportant     Urgency = "important"
	UrgencyInformational Urgency = "informational"
)

const (
	// ImportantWindowDays: due within this many days => important.
	ImportantWindowDays = 7
	// InformationalWindowDays: due within this many days => surfaced
	// as informational; anything further out is not surfaced at all.
	InformationalWindowDays = 30
)

// ClassifyDue buckets a due date relative to today. The second return
// is false when the item should not be surfaced (due more than 30 days
// out).
func ClassifyDue(due, today time.Time) (Urgency, bool) {
	days := DaysBetween(today, due)
	switch {
	case days <= 0:
		return UrgencyCritical, true
	case days <= ImportantWindowDays:
		return UrgencyImportant, true
	case days <= InformationalWindowDays:
		return UrgencyInformational, true
	default:
		return "", false
	}
}

const (
	ReminderKindChequeDueToday = "cheque_due_today"
	ReminderKindChequeOverdue  = "cheque_overdue"
	ReminderKindChequeDueSoon  = "cheque_due_soon"
	ReminderKindChequeDueMonth = "cheque_due_this_month"
	ReminderKindInstallmentDue = "installment_due"
)

// Reminder is one derived entry of the due-date view. It is recomputed
// on every query from guarantee cheques and unprocessed installments.
type Reminder struct {
	Kind         string          `json:"kind"`
	Urgency      Urgency         `json:"urgency"`
	Title        string          `json:"title"`
	Message      string          `json:"message"`
	ClientID     int64           `json:"client_id"`
	ClientName   string          `json:"client_name"`
	CreditID     int64           `json:"credit_id"`
	PolicyNumber string          `json:"policy_number"`
	AgentID      int64           `json:"agent_id"`
	AgentName    string          `json:"agent_name"`
	DueOn        time.Time       `json:"due_on"`
	Amount       decimal.Decimal `json:"amount"`
	Bank         string          `json:"bank,omitempty"`
	ChequeNumber string          `json:"cheque_number,omitempty"`
	DaysOverdue  int             `json:"days_overdue,omitempty"`
	DaysLeft     int             `json:"days_left,omitempty"`
}

// ReminderFilter narrows the derived reminder list.
type ReminderFilter struct {
	AgentID int64
	// Urgency "critical" keeps critical only; "important" keeps
	// critical and important; empty keeps everything.
	Urgency Urgency
	// Search is a case-insensitive substring over client name, policy
	// number and cheque number.
	Search string
}

func (r *Reminder) Matches(f ReminderFilter) bool {
	if f.AgentID != 0 && r.AgentID != f.AgentID {
		return false
	}
	switch f.Urgency {
	case UrgencyCritical:
		if r.Urgency != UrgencyCritical {
			return false
		}
	case UrgencyImportant:
		if r.Urgency != UrgencyCritical && r.Urgency != UrgencyImportant {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.ClientName), q) &&
			!strings.Contains(strings.ToLower(r.PolicyNumber), q) &&
			!strings.Contains(strings.ToLower(r.ChequeNumber), q) {
			return false
		}
	}
	return true
}

// ReminderSummary aggregates the filtered list for the alerts screen.
type ReminderSummary struct {
	Total           int             `json:"total"`
	Critical        int             `json:"critical"`
	Important       int             `json:"important"`
	Informational   int             `json:"informational"`
	CriticalAmount  decimal.Decimal `json:"critical_amount"`
	ImportantAmount decimal.Decimal `json:"important_amount"`
}

func Summarize(reminders []Reminder) ReminderSummary {
	s := ReminderSummary{
		Total:           len(reminders),
		CriticalAmount:  decimal.Zero,
		ImportantAmount: decimal.Zero,
	}
	for _, r := range reminders {
		switch r.Urgency {
		case UrgencyCritical:
			s.Critical++
			s.CriticalAmount = s.CriticalAmount.Add(r.Amount)
		case UrgencyImportant:
			s.Important++
			s.ImportantAmount = s.ImportantAmount.Add(r.Amount)
		case UrgencyInformational:
			s.Informational++
		}
	}
	return s
}
