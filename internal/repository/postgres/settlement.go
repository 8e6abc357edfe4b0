package postgres

import (
	"context"
	"database/sql"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

const settlementColumns = `id, credit_id, amount, settled_on, mode, status,
	COALESCE(memo, ''), guarantee_cheque_id, agent_id, created_on`

func scanSettlement(row interface{ Scan(...any) error }) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(&s.ID, &s.CreditID, &s.Amount, &s.SettledOn, &s.Mode, &s.Status,
		&s.Memo, &s.GuaranteeChequeID, &s.AgentID, &s.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return &s, nil
}

func insertSettlement(ctx context.Context, q dbtx, s *domain.Settlement) error {
	query := `INSERT INTO settlements (credit_id, amount, settled_on, mode, status, memo,
	              guarantee_cheque_id, agent_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NOW())
	          RETURNING id, created_on`
	err := q.QueryRowContext(ctx, query,
		s.CreditID, s.Amount, s.SettledOn, s.Mode, s.Status, s.Memo,
		s.GuaranteeChequeID, s.AgentID,
	).Scan(&s.ID, &s.CreatedOn)
	return translateErr(err)
}

func (r *settlementRepository) Create(ctx context.Context, s *domain.Settlement) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := insertSettlement(ctx, tx, s); err != nil {
			return err
		}
		_, err := recomputeOutstandingTx(ctx, tx, s.CreditID)
		return err
	})
}

func (r *settlementRepository) GetByID(ctx context.Context, id int64) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = $1`
	return scanSettlement(r.db.QueryRowContext(ctx, query, id))
}

func (r *settlementRepository) Update(ctx context.Context, s *domain.Settlement) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE settlements
		          SET amount = $1, settled_on = $2, mode = $3, status = $4,
		              memo = NULLIF($5, ''), guarantee_cheque_id = $6
		          WHERE id = $7`
		res, err := tx.ExecContext(ctx, query,
			s.Amount, s.SettledOn, s.Mode, s.Status, s.Memo, s.GuaranteeChequeID, s.ID)
		if err != nil {
			return translateErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		_, err = recomputeOutstandingTx(ctx, tx, s.CreditID)
		return err
	})
}

func (r *settlementRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var creditID int64
		err := tx.QueryRowContext(ctx,
			`DELETE FROM settlements WHERE id = $1 RETURNING credit_id`, id,
		).Scan(&creditID)
		if err != nil {
			return translateErr(err)
		}
		_, err = recomputeOutstandingTx(ctx, tx, creditID)
		return err
	})
}

func (r *settlementRepository) ListByCredit(ctx context.Context, creditID int64) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
	          WHERE credit_id = $1 ORDER BY settled_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, creditID)
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

func (r *settlementRepository) SetCleared(ctx context.Context, id int64) (*domain.Settlement, error) {
	var cleared *domain.Settlement
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE settlements SET status = 'cleared'
		          WHERE id = $1 AND mode = 'cheque'
		          RETURNING ` + settlementColumns
		s, err := scanSettlement(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}
		if _, err := recomputeOutstandingTx(ctx, tx, s.CreditID); err != nil {
			return err
		}
		cleared = s
		return nil
	})
	return cleared, err
}
