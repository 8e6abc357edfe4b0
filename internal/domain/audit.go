package domain

import "time"

type ActionType string

const (
	ActionCreditCreated   ActionType = "credit_created"
	ActionCreditUpdated   ActionType = "credit_updated"
	ActionCreditDeleted   ActionType = "credit_deleted"
	ActionCreditValidated ActionType = "credit_validated"

	ActionInstallmentCreated   ActionType = "installment_created"
	ActionInstallmentPaid      ActionType = "installment_paid"
	ActionInstallmentDeferred  ActionType = "installment_deferred"
	ActionInstallmentCancelled ActionType = "installment_cancelled"

	ActionChequeCollected ActionType = "cheque_collected"
	ActionChequeDeferred  ActionType = "cheque_deferred"
	ActionChequeCancelled ActionType = "cheque_cancelled"
	ActionChequePaidCash  ActionType = "cheque_paid_cash"

	ActionAlertCreated ActionType = "alert_created"
	ActionAlertHandled ActionType = "alert_handled"
	ActionReminderSent ActionType = "reminder_sent"

	ActionClientCreated   ActionType = "client_created"
	ActionClientUpdated   ActionType = "client_updated"
	ActionClientContacted ActionType = "client_contacted"

	ActionDataExported ActionType = "data_exported"
	ActionDataImported ActionType = "data_imported"

	ActionSettlementRecorded ActionType = "settlement_recorded"
)

type AuditStatus string

const (
	AuditSuccess    AuditStatus = "success"
	AuditFailure    AuditStatus = "failure"
	AuditInProgress AuditStatus = "in_progress"
	AuditCancelled  AuditStatus = "cancelled"
	AuditPending    AuditStatus = "pending"
)

// Snapshot is a free-form key/value capture of entity state used for
// display in the audit browser. No schema is enforced across action
// types beyond convention.
type Snapshot map[string]string

// AuditEntry is one append-only trail record. Entity links are
// nullable on purpose: the entry must survive deletion of what it
// describes.
type AuditEntry struct {
	ID          int64       `json:"id"`
	Action      ActionType  `json:"action"`
	Description string      `json:"description"`
	Status      AuditStatus `json:"status"`

	AgentID       *int64 `json:"agent_id,omitempty"`
	ClientID      *int64 `json:"client_id,omitempty"`
	CreditID      *int64 `json:"credit_id,omitempty"`
	InstallmentID *int64 `json:"installment_id,omitempty"`

	Before Snapshot `json:"before,omitempty"`
	After  Snapshot `json:"after,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	Remarks    string    `json:"remarks,omitempty"`
}

// AuditFilter narrows the audit browser listing.
type AuditFilter struct {
	Action ActionType
	Status AuditStatus
	// Agent and Client are case-insensitive substrings over the agent
	// username and client name.
	Agent  string
	Client string
	From   *time.Time
	To     *time.Time
	// Search spans description, agent username, client name and
	// policy number.
	Search string
}

// AuditStats summarizes trail activity for the browsing view.
type AuditStats struct {
	Total     int64            `json:"total"`
	Today     int64            `json:"today"`
	ThisWeek  int64            `json:"this_week"`
	ByAction  map[string]int64 `json:"by_action"`
	ByStatus  map[string]int64 `json:"by_status"`
}
