package domain

import "time"

type AlertType string

const (
	AlertInstallmentDue     AlertType = "installment_due"
	AlertReminder           AlertType = "reminder"
	AlertGuaranteeChequeDue AlertType = "guarantee_cheque_due"
	AlertOverdue            AlertType = "overdue"
)

type AlertStatus string

const (
	AlertPending  AlertStatus = "pending"
	AlertHandled  AlertStatus = "handled"
	AlertDeferred AlertStatus = "deferred"
)

// Alert is a stored, assignable reminder created by the mutations that
// spawn installments and guarantee cheques (legacy flow). The live
// reminder list is derived separately and never persisted. An alert
// references at most one of InstallmentID and GuaranteeChequeID,
// depending on what spawned it.
type Alert struct {
	ID                int64       `json:"id"`
	InstallmentID     *int64      `json:"installment_id,omitempty"`
	GuaranteeChequeID *int64      `json:"guarantee_cheque_id,omitempty"`
	Type              AlertType   `json:"type"`
	Message           string      `json:"message"`
	AlertOn           time.Time   `json:"alert_on"`
	RemindOn          time.Time   `json:"remind_on"`
	Status            AlertStatus `json:"status"`
	AgentID           int64       `json:"agent_id"`
	HandledAt         *time.Time  `json:"handled_at,omitempty"`
	HandlingNote      string      `json:"handling_note,omitempty"`
	DeferredTo        *time.Time  `json:"deferred_to,omitempty"`
}
