package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository/postgres"
)

var settlementCols = []string{
	"id", "credit_id", "amount", "settled_on", "mode", "status",
	"memo", "guarantee_cheque_id", "agent_id", "created_on",
}

func TestSettlementRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)
	settledOn := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		s := &domain.Settlement{
			CreditID:  3,
			Amount:    decimal.NewFromInt(2000),
			SettledOn: settledOn,
			Mode:      domain.PaymentModeCash,
			Memo:      "Desk payment",
			AgentID:   7,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO settlements").
			WithArgs(s.CreditID, s.Amount, s.SettledOn, s.Mode, nil, s.Memo, nil, s.AgentID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).
				AddRow(int64(11), time.Now()))
		mock.ExpectQuery("UPDATE credits").
			WithArgs(s.CreditID).
			WillReturnRows(sqlmock.NewRows([]string{"outstanding"}).AddRow("4000"))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), s)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), s.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnRecomputeFailure", func(t *testing.T) {
		s := &domain.Settlement{
			CreditID:  99,
			Amount:    decimal.NewFromInt(100),
			SettledOn: settledOn,
			Mode:      domain.PaymentModeCash,
			AgentID:   7,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO settlements").
			WithArgs(s.CreditID, s.Amount, s.SettledOn, s.Mode, nil, "", nil, s.AgentID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).
				AddRow(int64(12), time.Now()))
		mock.ExpectQuery("UPDATE credits").
			WithArgs(s.CreditID).
			WillReturnError(sqlmock.ErrCancelled)
		mock.ExpectRollback()

		err := repo.Create(context.Background(), s)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettlementRepository_SetCleared(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE settlements SET status = 'cleared'").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(settlementCols).
				AddRow(int64(11), int64(3), "1500", time.Now(), "cheque", "cleared",
					"", nil, int64(7), time.Now()))
		mock.ExpectQuery("UPDATE credits").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"outstanding"}).AddRow("2500"))
		mock.ExpectCommit()

		s, err := repo.SetCleared(context.Background(), 11)
		assert.NoError(t, err)
		assert.Equal(t, domain.SettlementCleared, *s.Status)
		assert.True(t, s.Amount.Equal(decimal.NewFromInt(1500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotACheque", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE settlements SET status = 'cleared'").
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows(settlementCols))
		mock.ExpectRollback()

		_, err := repo.SetCleared(context.Background(), 12)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettlementRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM settlements").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"credit_id"}).AddRow(int64(3)))
	mock.ExpectQuery("UPDATE credits").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"outstanding"}).AddRow("6000"))
	mock.ExpectCommit()

	err = repo.Delete(context.Background(), 11)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
