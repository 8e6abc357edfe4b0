package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type dashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

const (
	dashboardDueSoonDays   = 7
	dashboardSeriesDays    = 30
	dashboardTopEntries    = 5
	dashboardPendingAlerts = 10
)

func (r *dashboardRepository) Stats(ctx context.Context, today time.Time) (*domain.DashboardStats, error) {
	day := domain.DateOf(today)
	stats := &domain.DashboardStats{}

	err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM credits),
		(SELECT COUNT(*) FROM clients),
		(SELECT COALESCE(SUM(total_amount), 0) FROM credits),
		(SELECT COALESCE(SUM(amount), 0) FROM settlements WHERE mode IN ('cash', 'transfer')),
		(SELECT COALESCE(SUM(amount), 0) FROM settlements WHERE mode = 'cheque' AND status = 'cleared'),
		(SELECT COALESCE(SUM(amount), 0) FROM settlements WHERE mode = 'cheque' AND status = 'uncleared'),
		(SELECT COUNT(*) FROM credits WHERE type = 'single'),
		(SELECT COUNT(*) FROM credits WHERE type = 'split')`,
	).Scan(&stats.TotalCredits, &stats.TotalClients, &stats.TotalCreditAmount,
		&stats.PaidCash, &stats.PaidClearedCheques, &stats.PendingCheques,
		&stats.SingleCredits, &stats.SplitCredits)
	if err != nil {
		return nil, err
	}

	stats.TotalCollected = stats.PaidCash.Add(stats.PaidClearedCheques)
	if stats.TotalCreditAmount.IsPositive() {
		stats.RecoveryRate = stats.TotalCollected.
			Div(stats.TotalCreditAmount).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	if stats.SettlementsToday, err = r.settlementsOn(ctx, day); err != nil {
		return nil, err
	}
	for _, s := range stats.SettlementsToday {
		stats.SettlementsTodayAmount = stats.SettlementsTodayAmount.Add(s.Amount)
	}

	cheques := &chequeRepository{db: r.db}
	if stats.ChequesDueSoon, err = cheques.ListDueWithin(ctx, day, day.AddDate(0, 0, dashboardDueSoonDays)); err != nil {
		return nil, err
	}
	if stats.ChequesOverdue, err = cheques.ListOverdue(ctx, day); err != nil {
		return nil, err
	}

	alerts := &alertRepository{db: r.db}
	if stats.PendingAlerts, _, err = alerts.List(ctx, domain.AlertPending, 0, 1, dashboardPendingAlerts); err != nil {
		return nil, err
	}

	if stats.TopAgents, err = r.topAgents(ctx); err != nil {
		return nil, err
	}
	if stats.TopClients, err = r.topClients(ctx); err != nil {
		return nil, err
	}
	if stats.DailyPayments, err = r.dailyPayments(ctx, day); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *dashboardRepository) settlementsOn(ctx context.Context, day time.Time) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
	          WHERE settled_on = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []domain.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, *s)
	}
	return settlements, rows.Err()
}

func (r *dashboardRepository) topAgents(ctx context.Context) ([]domain.AgentPerformance, error) {
	query := `SELECT a.id, a.username, COALESCE(SUM(s.amount), 0) AS collected
	          FROM agents a
	          JOIN credits c ON c.agent_id = a.id
	          JOIN settlements s ON s.credit_id = c.id
	          WHERE s.mode IN ('cash', 'transfer') OR (s.mode = 'cheque' AND s.status = 'cleared')
	          GROUP BY a.id, a.username
	          ORDER BY collected DESC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, dashboardTopEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perf []domain.AgentPerformance
	for rows.Next() {
		var p domain.AgentPerformance
		if err := rows.Scan(&p.AgentID, &p.Username, &p.Collected); err != nil {
			return nil, err
		}
		perf = append(perf, p)
	}
	return perf, rows.Err()
}

func (r *dashboardRepository) topClients(ctx context.Context) ([]domain.ClientExposure, error) {
	query := `SELECT cl.id, cl.first_name || ' ' || cl.last_name, COALESCE(SUM(c.total_amount), 0) AS exposure
	          FROM clients cl
	          JOIN credits c ON c.client_id = cl.id
	          GROUP BY cl.id, cl.first_name, cl.last_name
	          ORDER BY exposure DESC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, dashboardTopEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exposures []domain.ClientExposure
	for rows.Next() {
		var e domain.ClientExposure
		if err := rows.Scan(&e.ClientID, &e.ClientName, &e.TotalCredit); err != nil {
			return nil, err
		}
		exposures = append(exposures, e)
	}
	return exposures, rows.Err()
}

func (r *dashboardRepository) dailyPayments(ctx context.Context, day time.Time) ([]domain.DailyTotal, error) {
	query := `SELECT settled_on, SUM(amount)
	          FROM settlements
	          WHERE settled_on > $1 AND settled_on <= $2
	          GROUP BY settled_on
	          ORDER BY settled_on`
	rows, err := r.db.QueryContext(ctx, query, day.AddDate(0, 0, -dashboardSeriesDays), day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.DailyTotal
	for rows.Next() {
		var t domain.DailyTotal
		if err := rows.Scan(&t.Date, &t.Amount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *dashboardRepository) QuickStats(ctx context.Context, today time.Time) (*domain.QuickStats, error) {
	day := domain.DateOf(today)
	stats := &domain.QuickStats{}
	err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM installments WHERE is_processed = FALSE AND due_on = $1),
		(SELECT COUNT(*) FROM installments WHERE is_processed = FALSE AND due_on > $1 AND due_on <= $2),
		(SELECT COUNT(*) FROM installments WHERE is_processed = FALSE AND due_on < $1)`,
		day, day.AddDate(0, 0, 7),
	).Scan(&stats.InstallmentsDueToday, &stats.InstallmentsDueWeek,
		&stats.InstallmentsOverdue)
	if err != nil {
		return nil, err
	}
	if stats.PendingAlerts, err = (&alertRepository{r.db}).CountPending(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
