package postgres

import (
	"context"
	"database/sql"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type creditRepository struct {
	db *sql.DB
}

func NewCreditRepository(db *sql.DB) repository.CreditRepository {
	return &creditRepository{db: db}
}

const creditColumns = `id, client_id, policy_number, type, total_amount, outstanding,
	COALESCE(description, ''), agent_id, duration_days, duration_weeks, duration_months,
	due_date, created_on, updated_on`

func scanCredit(row interface{ Scan(...any) error }) (*domain.Credit, error) {
	var c domain.Credit
	err := row.Scan(&c.ID, &c.ClientID, &c.PolicyNumber, &c.Type, &c.TotalAmount, &c.Outstanding,
		&c.Description, &c.AgentID, &c.DurationDays, &c.DurationWeeks, &c.DurationMonths,
		&c.DueDate, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func insertCredit(ctx context.Context, q dbtx, c *domain.Credit) error {
	query := `INSERT INTO credits (client_id, policy_number, type, total_amount, outstanding,
	              description, agent_id, duration_days, duration_weeks, duration_months,
	              due_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, NOW(), NOW())
	          RETURNING id, outstanding, created_on, updated_on`
	err := q.QueryRowContext(ctx, query,
		c.ClientID, c.PolicyNumber, c.Type, c.TotalAmount,
		c.Description, c.AgentID, c.DurationDays, c.DurationWeeks, c.DurationMonths,
		c.DueDate,
	).Scan(&c.ID, &c.Outstanding, &c.CreatedOn, &c.UpdatedOn)
	return translateErr(err)
}

func (r *creditRepository) CreateSingle(ctx context.Context, credit *domain.Credit, inst *domain.Installment, draft *domain.GuaranteeDraft, alert *domain.Alert) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertCredit(ctx, tx, credit); err != nil {
			return err
		}
		inst.CreditID = credit.ID
		if err := insertInstallment(ctx, tx, inst); err != nil {
			return err
		}
		if draft != nil {
			draft.InstallmentID = inst.ID
			if err := insertDraft(ctx, tx, draft); err != nil {
				return err
			}
		}
		if alert != nil {
			alert.InstallmentID = &inst.ID
			if err := insertAlert(ctx, tx, alert); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *creditRepository) CreateSplit(ctx context.Context, credit *domain.Credit, downPayment *domain.Settlement, cheques []domain.GuaranteeCheque, alerts []domain.Alert) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertCredit(ctx, tx, credit); err != nil {
			return err
		}
		if downPayment != nil {
			downPayment.CreditID = credit.ID
			if err := insertSettlement(ctx, tx, downPayment); err != nil {
				return err
			}
		}
		for i := range cheques {
			cheques[i].CreditID = credit.ID
			if err := insertCheque(ctx, tx, &cheques[i]); err != nil {
				return err
			}
		}
		// One alert per cheque, in order.
		for i := range alerts {
			if i < len(cheques) {
				alerts[i].GuaranteeChequeID = &cheques[i].ID
			}
			if err := insertAlert(ctx, tx, &alerts[i]); err != nil {
				return err
			}
		}
		outstanding, err := recomputeOutstandingTx(ctx, tx, credit.ID)
		if err != nil {
			return err
		}
		credit.Outstanding = outstanding
		return nil
	})
}

func (r *creditRepository) GetByID(ctx context.Context, id int64) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE id = $1`
	return scanCredit(r.db.QueryRowContext(ctx, query, id))
}

func (r *creditRepository) Update(ctx context.Context, credit *domain.Credit) error {
	query := `UPDATE credits
	          SET policy_number = $1, total_amount = $2, description = NULLIF($3, ''),
	              due_date = $4, updated_on = NOW()
	          WHERE id = $5
	          RETURNING updated_on`
	err := r.db.QueryRowContext(ctx, query,
		credit.PolicyNumber, credit.TotalAmount, credit.Description, credit.DueDate, credit.ID,
	).Scan(&credit.UpdatedOn)
	return translateErr(err)
}

func (r *creditRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *creditRepository) List(ctx context.Context, clientID, agentID int64, creditType domain.CreditType, search string, page, pageSize int32) ([]domain.Credit, int32, error) {
	offset := (page - 1) * pageSize
	where := `WHERE 1=1`
	args := []any{}
	if clientID != 0 {
		args = append(args, clientID)
		where += ` AND client_id = $` + itoa(len(args))
	}
	if agentID != 0 {
		args = append(args, agentID)
		where += ` AND agent_id = $` + itoa(len(args))
	}
	if creditType != "" {
		args = append(args, creditType)
		where += ` AND type = $` + itoa(len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += ` AND policy_number ILIKE $` + itoa(len(args))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM credits `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + creditColumns + ` FROM credits ` + where +
		` ORDER BY created_on DESC LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var credits []domain.Credit
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, 0, err
		}
		credits = append(credits, *c)
	}
	return credits, count, rows.Err()
}

func (r *creditRepository) RecomputeOutstanding(ctx context.Context, creditID int64) (decimal.Decimal, error) {
	return recomputeOutstandingTx(ctx, r.db, creditID)
}
