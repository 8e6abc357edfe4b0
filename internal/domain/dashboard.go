package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotal is one point of the 30-day settlement series.
type DailyTotal struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// AgentPerformance ranks agents by collected settlement amount.
type AgentPerformance struct {
	AgentID   int64           `json:"agent_id"`
	Username  string          `json:"username"`
	Collected decimal.Decimal `json:"collected"`
}

// ClientExposure ranks clients by total credit amount.
type ClientExposure struct {
	ClientID    int64           `json:"client_id"`
	ClientName  string          `json:"client_name"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// DashboardStats is the main back-office overview.
type DashboardStats struct {
	TotalCredits      int64           `json:"total_credits"`
	TotalClients      int64           `json:"total_clients"`
	TotalCreditAmount decimal.Decimal `json:"total_credit_amount"`

	PaidCash           decimal.Decimal `json:"paid_cash"`
	PaidClearedCheques decimal.Decimal `json:"paid_cleared_cheques"`
	PendingCheques     decimal.Decimal `json:"pending_cheques"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	// RecoveryRate is TotalCollected / TotalCreditAmount as a
	// percentage, zero when no credit has been issued.
	RecoveryRate decimal.Decimal `json:"recovery_rate"`

	SettlementsToday       []Settlement    `json:"settlements_today"`
	SettlementsTodayAmount decimal.Decimal `json:"settlements_today_amount"`

	ChequesDueSoon []GuaranteeCheque `json:"cheques_due_soon"`
	ChequesOverdue []GuaranteeCheque `json:"cheques_overdue"`

	PendingAlerts []Alert `json:"pending_alerts"`

	SingleCredits int64 `json:"single_credits"`
	SplitCredits  int64 `json:"split_credits"`

	TopAgents     []AgentPerformance `json:"top_agents"`
	TopClients    []ClientExposure   `json:"top_clients"`
	DailyPayments []DailyTotal       `json:"daily_payments"`
}

// QuickStats backs the lightweight polling endpoint.
type QuickStats struct {
	InstallmentsDueToday int64 `json:"installments_due_today"`
	InstallmentsDueWeek  int64 `json:"installments_due_week"`
	InstallmentsOverdue  int64 `json:"installments_overdue"`
	PendingAlerts        int64 `json:"pending_alerts"`
}
