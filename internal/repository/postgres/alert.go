package postgres

import (
	"context"
	"database/sql"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type alertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

const alertColumns = `id, installment_id, guarantee_cheque_id, type, message, alert_on, remind_on,
	status, agent_id, handled_at, COALESCE(handling_note, ''), deferred_to`

func scanAlert(row interface{ Scan(...any) error }) (*domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(&a.ID, &a.InstallmentID, &a.GuaranteeChequeID, &a.Type, &a.Message,
		&a.AlertOn, &a.RemindOn, &a.Status, &a.AgentID, &a.HandledAt, &a.HandlingNote, &a.DeferredTo)
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func insertAlert(ctx context.Context, q dbtx, a *domain.Alert) error {
	if a.Status == "" {
		a.Status = domain.AlertPending
	}
	query := `INSERT INTO alerts (installment_id, guarantee_cheque_id, type, message, alert_on, remind_on, status, agent_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	err := q.QueryRowContext(ctx, query,
		a.InstallmentID, a.GuaranteeChequeID, a.Type, a.Message, a.AlertOn, a.RemindOn, a.Status, a.AgentID,
	).Scan(&a.ID)
	return translateErr(err)
}

func (r *alertRepository) Create(ctx context.Context, a *domain.Alert) error {
	return insertAlert(ctx, r.db, a)
}

func (r *alertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	return scanAlert(r.db.QueryRowContext(ctx, query, id))
}

func (r *alertRepository) Update(ctx context.Context, a *domain.Alert) error {
	query := `UPDATE alerts
	          SET message = $1, alert_on = $2, remind_on = $3, status = $4,
	              agent_id = $5, handled_at = $6, handling_note = NULLIF($7, ''),
	              deferred_to = $8
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		a.Message, a.AlertOn, a.RemindOn, a.Status, a.AgentID,
		a.HandledAt, a.HandlingNote, a.DeferredTo, a.ID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context, status domain.AlertStatus, agentID int64, page, pageSize int32) ([]domain.Alert, int32, error) {
	where := `WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		where += ` AND status = $` + itoa(len(args))
	}
	if agentID > 0 {
		args = append(args, agentID)
		where += ` AND agent_id = $` + itoa(len(args))
	}

	var total int32
	countQuery := `SELECT COUNT(*) FROM alerts ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := `SELECT ` + alertColumns + ` FROM alerts ` + where +
		` ORDER BY remind_on, id LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, total, rows.Err()
}

func (r *alertRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE status = $1`, domain.AlertPending,
	).Scan(&count)
	return count, err
}
