package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func marshalSnapshot(s domain.Snapshot) (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return b, nil
}

func unmarshalSnapshot(raw []byte, into *domain.Snapshot) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, into)
}

func (r *auditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	before, err := marshalSnapshot(e.Before)
	if err != nil {
		return err
	}
	after, err := marshalSnapshot(e.After)
	if err != nil {
		return err
	}
	query := `INSERT INTO audit_entries
	          (action, description, status, agent_id, client_id, credit_id, installment_id,
	           before_state, after_state, recorded_at, ip_address, user_agent, session_id, remarks)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''))
	          RETURNING id, recorded_at`
	err = r.db.QueryRowContext(ctx, query,
		e.Action, e.Description, e.Status,
		e.AgentID, e.ClientID, e.CreditID, e.InstallmentID,
		before, after,
		e.IPAddress, e.UserAgent, e.SessionID, e.Remarks,
	).Scan(&e.ID, &e.RecordedAt)
	return translateErr(err)
}

const auditSelect = `SELECT e.id, e.action, e.description, e.status,
	e.agent_id, e.client_id, e.credit_id, e.installment_id,
	e.before_state, e.after_state, e.recorded_at,
	COALESCE(e.ip_address, ''), COALESCE(e.user_agent, ''),
	COALESCE(e.session_id, ''), COALESCE(e.remarks, '')
	FROM audit_entries e`

const auditJoins = ` LEFT JOIN agents a ON a.id = e.agent_id
	LEFT JOIN clients cl ON cl.id = e.client_id
	LEFT JOIN credits cr ON cr.id = e.credit_id`

func scanAuditEntry(row interface{ Scan(...any) error }) (*domain.AuditEntry, error) {
	var e domain.AuditEntry
	var before, after []byte
	err := row.Scan(&e.ID, &e.Action, &e.Description, &e.Status,
		&e.AgentID, &e.ClientID, &e.CreditID, &e.InstallmentID,
		&before, &after, &e.RecordedAt,
		&e.IPAddress, &e.UserAgent, &e.SessionID, &e.Remarks)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := unmarshalSnapshot(before, &e.Before); err != nil {
		return nil, err
	}
	if err := unmarshalSnapshot(after, &e.After); err != nil {
		return nil, err
	}
	return &e, nil
}

func buildAuditWhere(filter domain.AuditFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Action != "" {
		args = append(args, filter.Action)
		where += ` AND e.action = $` + itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += ` AND e.status = $` + itoa(len(args))
	}
	if filter.Agent != "" {
		args = append(args, "%"+filter.Agent+"%")
		where += ` AND a.username ILIKE $` + itoa(len(args))
	}
	if filter.Client != "" {
		args = append(args, "%"+filter.Client+"%")
		where += ` AND (cl.first_name || ' ' || cl.last_name) ILIKE $` + itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += ` AND e.recorded_at >= $` + itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += ` AND e.recorded_at <= $` + itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := `$` + itoa(len(args))
		where += ` AND (e.description ILIKE ` + n +
			` OR a.username ILIKE ` + n +
			` OR (cl.first_name || ' ' || cl.last_name) ILIKE ` + n +
			` OR cr.policy_number ILIKE ` + n + `)`
	}
	return where, args
}

func (r *auditRepository) List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error) {
	where, args := buildAuditWhere(filter)

	var total int32
	countQuery := `SELECT COUNT(*) FROM audit_entries e` + auditJoins + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := auditSelect + auditJoins + where +
		` ORDER BY e.recorded_at DESC, e.id DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, total, rows.Err()
}

func (r *auditRepository) Stats(ctx context.Context, today time.Time) (*domain.AuditStats, error) {
	day := domain.DateOf(today)
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))

	stats := &domain.AuditStats{
		ByAction: map[string]int64{},
		ByStatus: map[string]int64{},
	}
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE recorded_at >= $1),
		COUNT(*) FILTER (WHERE recorded_at >= $2)
		FROM audit_entries`, day, weekStart,
	).Scan(&stats.Total, &stats.Today, &stats.ThisWeek)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT action, COUNT(*) FROM audit_entries GROUP BY action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var action string
		var count int64
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		stats.ByAction[action] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statusRows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM audit_entries GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var status string
		var count int64
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	return stats, statusRows.Err()
}
