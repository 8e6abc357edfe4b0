package postgres

import (
	"context"
	"database/sql"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type chequeRepository struct {
	db *sql.DB
}

func NewChequeRepository(db *sql.DB) repository.ChequeRepository {
	return &chequeRepository{db: db}
}

const chequeColumns = `id, credit_id, number, amount, bank, issued_on, due_on,
	COALESCE(memo, ''), created_on`

func scanCheque(row interface{ Scan(...any) error }) (*domain.GuaranteeCheque, error) {
	var c domain.GuaranteeCheque
	err := row.Scan(&c.ID, &c.CreditID, &c.Number, &c.Amount, &c.Bank,
		&c.IssuedOn, &c.DueOn, &c.Memo, &c.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func insertCheque(ctx context.Context, q dbtx, c *domain.GuaranteeCheque) error {
	query := `INSERT INTO guarantee_cheques (credit_id, number, amount, bank, issued_on, due_on, memo, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NOW())
	          RETURNING id, created_on`
	err := q.QueryRowContext(ctx, query,
		c.CreditID, c.Number, c.Amount, c.Bank, c.IssuedOn, c.DueOn, c.Memo,
	).Scan(&c.ID, &c.CreatedOn)
	return translateErr(err)
}

func (r *chequeRepository) Create(ctx context.Context, c *domain.GuaranteeCheque) error {
	return insertCheque(ctx, r.db, c)
}

func (r *chequeRepository) GetByID(ctx context.Context, id int64) (*domain.GuaranteeCheque, error) {
	query := `SELECT ` + chequeColumns + ` FROM guarantee_cheques WHERE id = $1`
	return scanCheque(r.db.QueryRowContext(ctx, query, id))
}

func (r *chequeRepository) Update(ctx context.Context, c *domain.GuaranteeCheque) error {
	query := `UPDATE guarantee_cheques
	          SET number = $1, amount = $2, bank = $3, issued_on = $4, due_on = $5,
	              memo = NULLIF($6, '')
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		c.Number, c.Amount, c.Bank, c.IssuedOn, c.DueOn, c.Memo, c.ID)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *chequeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guarantee_cheques WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *chequeRepository) listWhere(ctx context.Context, where string, args ...any) ([]domain.GuaranteeCheque, error) {
	query := `SELECT ` + chequeColumns + ` FROM guarantee_cheques ` + where + ` ORDER BY due_on`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cheques []domain.GuaranteeCheque
	for rows.Next() {
		c, err := scanCheque(rows)
		if err != nil {
			return nil, err
		}
		cheques = append(cheques, *c)
	}
	return cheques, rows.Err()
}

func (r *chequeRepository) ListByCredit(ctx context.Context, creditID int64) ([]domain.GuaranteeCheque, error) {
	return r.listWhere(ctx, `WHERE credit_id = $1`, creditID)
}

func (r *chequeRepository) ListDueWithin(ctx context.Context, from, to time.Time) ([]domain.GuaranteeCheque, error) {
	return r.listWhere(ctx, `WHERE due_on BETWEEN $1 AND $2`, domain.DateOf(from), domain.DateOf(to))
}

func (r *chequeRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.GuaranteeCheque, error) {
	return r.listWhere(ctx, `WHERE due_on < $1`, domain.DateOf(asOf))
}

func (r *chequeRepository) ListAll(ctx context.Context) ([]domain.GuaranteeCheque, error) {
	return r.listWhere(ctx, ``)
}

// PayInCash removes a guarantee cheque and replaces it with the cash
// settlement that covers it, leaving the balance recomputed. The
// cheque row must still exist; the settlement row replaces it fully.
func (r *chequeRepository) PayInCash(ctx context.Context, chequeID int64, settlement *domain.Settlement) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var creditID int64
		err := tx.QueryRowContext(ctx,
			`DELETE FROM guarantee_cheques WHERE id = $1 RETURNING credit_id`, chequeID,
		).Scan(&creditID)
		if err != nil {
			return translateErr(err)
		}
		settlement.CreditID = creditID
		if err := insertSettlement(ctx, tx, settlement); err != nil {
			return err
		}
		_, err = recomputeOutstandingTx(ctx, tx, creditID)
		return err
	})
}
