package jobs

import (
	"context"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/logger"
)

// GenerateInstallmentAlerts creates a pending alert for every
// unprocessed installment whose remind-on date has arrived and that
// has no alert yet.
func (jr *JobRunner) GenerateInstallmentAlerts() {
	jr.runWithRecovery("GenerateInstallmentAlerts", func() {
		ctx := context.Background()
		today := domain.DateOf(time.Now())

		query := `
			INSERT INTO alerts (installment_id, type, message, alert_on, remind_on, status, agent_id)
			SELECT i.id, 'installment_due',
			       'Installment ' || i.part_number || ' of credit ' || c.policy_number || ' due on ' || to_char(i.due_on, 'YYYY-MM-DD'),
			       i.due_on, i.remind_on, 'pending', c.agent_id
			FROM installments i
			JOIN credits c ON c.id = i.credit_id
			WHERE i.is_processed = FALSE
			  AND i.remind_on <= $1
			  AND NOT EXISTS (
			      SELECT 1 FROM alerts a
			      WHERE a.installment_id = i.id AND a.type = 'installment_due'
			  )
		`

		res, err := jr.db.ExecContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to generate installment alerts", "error", err)
			return
		}
		count, _ := res.RowsAffected()
		logger.Info("Generated installment alerts", "count", count)
	})
}

// GenerateChequeAlerts creates a pending alert for every guarantee
// cheque entering its reminder window, once per cheque.
func (jr *JobRunner) GenerateChequeAlerts() {
	jr.runWithRecovery("GenerateChequeAlerts", func() {
		ctx := context.Background()
		today := domain.DateOf(time.Now())
		horizon := today.AddDate(0, 0, domain.ReminderLeadDays)

		query := `
			INSERT INTO alerts (guarantee_cheque_id, type, message, alert_on, remind_on, status, agent_id)
			SELECT g.id, 'guarantee_cheque_due',
			       'Guarantee cheque ' || g.number || ' (' || g.bank || ') due on ' || to_char(g.due_on, 'YYYY-MM-DD'),
			       g.due_on, $1, 'pending', c.agent_id
			FROM guarantee_cheques g
			JOIN credits c ON c.id = g.credit_id
			WHERE g.due_on <= $2
			  AND NOT EXISTS (
			      SELECT 1 FROM alerts a
			      WHERE a.type = 'guarantee_cheque_due'
			        AND a.guarantee_cheque_id = g.id
			  )
		`

		res, err := jr.db.ExecContext(ctx, query, today, horizon)
		if err != nil {
			logger.Error("Failed to generate cheque alerts", "error", err)
			return
		}
		count, _ := res.RowsAffected()
		logger.Info("Generated cheque alerts", "count", count)
	})
}
