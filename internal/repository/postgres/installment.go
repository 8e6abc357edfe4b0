package postgres

import (
	"context"
	"database/sql"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type installmentRepository struct {
	db *sql.DB
}

func NewInstallmentRepository(db *sql.DB) repository.InstallmentRepository {
	return &installmentRepository{db: db}
}

const installmentColumns = `id, credit_id, part_number, amount, due_on, remind_on,
	is_cash, is_processed, processed_at, COALESCE(memo, '')`

func scanInstallment(row interface{ Scan(...any) error }) (*domain.Installment, error) {
	var i domain.Installment
	err := row.Scan(&i.ID, &i.CreditID, &i.PartNumber, &i.Amount, &i.DueOn,
		&i.RemindOn, &i.IsCash, &i.IsProcessed, &i.ProcessedAt, &i.Memo)
	if err != nil {
		return nil, translateErr(err)
	}
	return &i, nil
}

func insertInstallment(ctx context.Context, q dbtx, i *domain.Installment) error {
	query := `INSERT INTO installments (credit_id, part_number, amount, due_on, remind_on, is_cash, is_processed, memo)
	          VALUES ($1, $2, $3, $4, $5, $6, FALSE, NULLIF($7, ''))
	          RETURNING id`
	err := q.QueryRowContext(ctx, query,
		i.CreditID, i.PartNumber, i.Amount, i.DueOn, i.RemindOn, i.IsCash, i.Memo,
	).Scan(&i.ID)
	return translateErr(err)
}

func (r *installmentRepository) GetByID(ctx context.Context, id int64) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE id = $1`
	return scanInstallment(r.db.QueryRowContext(ctx, query, id))
}

func (r *installmentRepository) Update(ctx context.Context, inst *domain.Installment) error {
	query := `UPDATE installments
	          SET amount = $1, due_on = $2, remind_on = $3, is_cash = $4,
	              is_processed = $5, processed_at = $6, memo = NULLIF($7, '')
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		inst.Amount, inst.DueOn, inst.RemindOn, inst.IsCash,
		inst.IsProcessed, inst.ProcessedAt, inst.Memo, inst.ID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *installmentRepository) listWhere(ctx context.Context, where string, args ...any) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments ` + where + ` ORDER BY due_on, part_number`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []domain.Installment
	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, *i)
	}
	return installments, rows.Err()
}

func (r *installmentRepository) ListByCredit(ctx context.Context, creditID int64) ([]domain.Installment, error) {
	return r.listWhere(ctx, `WHERE credit_id = $1`, creditID)
}

func (r *installmentRepository) CountByCredit(ctx context.Context, creditID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM installments WHERE credit_id = $1`, creditID,
	).Scan(&count)
	return count, err
}

func (r *installmentRepository) ListUnprocessed(ctx context.Context) ([]domain.Installment, error) {
	return r.listWhere(ctx, `WHERE is_processed = FALSE`)
}

func (r *installmentRepository) CreatePlan(ctx context.Context, creditID int64, installments []domain.Installment, settlements []domain.Settlement, alerts []domain.Alert) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for idx := range installments {
			installments[idx].CreditID = creditID
			if err := insertInstallment(ctx, tx, &installments[idx]); err != nil {
				return err
			}
		}
		for idx := range settlements {
			settlements[idx].CreditID = creditID
			if err := insertSettlement(ctx, tx, &settlements[idx]); err != nil {
				return err
			}
		}
		for idx := range alerts {
			if err := insertAlert(ctx, tx, &alerts[idx]); err != nil {
				return err
			}
		}
		_, err := recomputeOutstandingTx(ctx, tx, creditID)
		return err
	})
}

const draftColumns = `id, installment_id, number, bank, amount, issued_on,
	collected_on, expected_on, status, COALESCE(remarks, ''), updated_on`

func scanDraft(row interface{ Scan(...any) error }) (*domain.GuaranteeDraft, error) {
	var d domain.GuaranteeDraft
	err := row.Scan(&d.ID, &d.InstallmentID, &d.Number, &d.Bank, &d.Amount,
		&d.IssuedOn, &d.CollectedOn, &d.ExpectedOn, &d.Status, &d.Remarks, &d.UpdatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return &d, nil
}

func insertDraft(ctx context.Context, q dbtx, d *domain.GuaranteeDraft) error {
	query := `INSERT INTO guarantee_drafts (installment_id, number, bank, amount, issued_on, collected_on, expected_on, status, remarks, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NOW())
	          RETURNING id, updated_on`
	err := q.QueryRowContext(ctx, query,
		d.InstallmentID, d.Number, d.Bank, d.Amount, d.IssuedOn,
		d.CollectedOn, d.ExpectedOn, d.Status, d.Remarks,
	).Scan(&d.ID, &d.UpdatedOn)
	return translateErr(err)
}

func (r *installmentRepository) GetDraftByID(ctx context.Context, id int64) (*domain.GuaranteeDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM guarantee_drafts WHERE id = $1`
	return scanDraft(r.db.QueryRowContext(ctx, query, id))
}

func (r *installmentRepository) UpdateDraft(ctx context.Context, draft *domain.GuaranteeDraft) error {
	query := `UPDATE guarantee_drafts
	          SET number = $1, bank = $2, amount = $3, issued_on = $4,
	              collected_on = $5, expected_on = $6, status = $7,
	              remarks = NULLIF($8, ''), updated_on = NOW()
	          WHERE id = $9
	          RETURNING updated_on`
	err := r.db.QueryRowContext(ctx, query,
		draft.Number, draft.Bank, draft.Amount, draft.IssuedOn,
		draft.CollectedOn, draft.ExpectedOn, draft.Status, draft.Remarks, draft.ID,
	).Scan(&draft.UpdatedOn)
	return translateErr(err)
}

func (r *installmentRepository) GetDraftByInstallment(ctx context.Context, installmentID int64) (*domain.GuaranteeDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM guarantee_drafts WHERE installment_id = $1`
	return scanDraft(r.db.QueryRowContext(ctx, query, installmentID))
}
