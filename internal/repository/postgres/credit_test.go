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

func TestCreditRepository_CreateSplit(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewCreditRepository(db)
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	credit := &domain.Credit{
		ClientID:     5,
		PolicyNumber: "POL-200",
		Type:         domain.CreditTypeSplit,
		TotalAmount:  decimal.NewFromInt(10000),
		AgentID:      7,
	}
	downPayment := &domain.Settlement{
		Amount:    decimal.NewFromInt(4000),
		SettledOn: now,
		Mode:      domain.PaymentModeCash,
		AgentID:   7,
	}
	cheques := []domain.GuaranteeCheque{
		{Number: "778812", Amount: decimal.NewFromInt(3000), Bank: "Alpha", IssuedOn: now, DueOn: now.AddDate(0, 1, 0)},
		{Number: "778813", Amount: decimal.NewFromInt(3000), Bank: "Alpha", IssuedOn: now, DueOn: now.AddDate(0, 2, 0)},
	}
	alerts := []domain.Alert{
		{Type: domain.AlertGuaranteeChequeDue, Message: "Cheque 778812 due", AlertOn: now, RemindOn: now.AddDate(0, 1, -3), AgentID: 7},
		{Type: domain.AlertGuaranteeChequeDue, Message: "Cheque 778813 due", AlertOn: now, RemindOn: now.AddDate(0, 2, -3), AgentID: 7},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO credits").
		WithArgs(credit.ClientID, credit.PolicyNumber, credit.Type, credit.TotalAmount,
			credit.Description, credit.AgentID, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "outstanding", "created_on", "updated_on"}).
			AddRow(int64(3), "10000", now, now))
	mock.ExpectQuery("INSERT INTO settlements").
		WithArgs(int64(3), downPayment.Amount, downPayment.SettledOn, downPayment.Mode,
			nil, "", nil, downPayment.AgentID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int64(21), now))
	mock.ExpectQuery("INSERT INTO guarantee_cheques").
		WithArgs(int64(3), "778812", cheques[0].Amount, "Alpha", cheques[0].IssuedOn, cheques[0].DueOn, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int64(41), now))
	mock.ExpectQuery("INSERT INTO guarantee_cheques").
		WithArgs(int64(3), "778813", cheques[1].Amount, "Alpha", cheques[1].IssuedOn, cheques[1].DueOn, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int64(42), now))
	// Each alert row carries the id of the cheque it covers.
	mock.ExpectQuery("INSERT INTO alerts").
		WithArgs(nil, int64(41), alerts[0].Type, alerts[0].Message, alerts[0].AlertOn,
			alerts[0].RemindOn, domain.AlertPending, alerts[0].AgentID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(61)))
	mock.ExpectQuery("INSERT INTO alerts").
		WithArgs(nil, int64(42), alerts[1].Type, alerts[1].Message, alerts[1].AlertOn,
			alerts[1].RemindOn, domain.AlertPending, alerts[1].AgentID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(62)))
	mock.ExpectQuery("UPDATE credits").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"outstanding"}).AddRow("6000"))
	mock.ExpectCommit()

	err = repo.CreateSplit(context.Background(), credit, downPayment, cheques, alerts)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), credit.ID)
	assert.Equal(t, "6000", credit.Outstanding.String())
	if assert.NotNil(t, alerts[0].GuaranteeChequeID) {
		assert.Equal(t, int64(41), *alerts[0].GuaranteeChequeID)
	}
	if assert.NotNil(t, alerts[1].GuaranteeChequeID) {
		assert.Equal(t, int64(42), *alerts[1].GuaranteeChequeID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
