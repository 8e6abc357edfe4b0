package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

func TestReminderService_List(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	credit := &domain.Credit{ID: 3, ClientID: 5, AgentID: 7, PolicyNumber: "POL-500"}
	client := &domain.Client{ID: 5, FirstName: "Nadia", LastName: "Haddad"}
	agent := &domain.Agent{ID: 7, Username: "nkhoury", FullName: "Nour Khoury"}

	cheques := []domain.GuaranteeCheque{
		// Due in 3 days: important.
		{ID: 1, CreditID: 3, Number: "CHQ-1", Bank: "Byblos", Amount: decimal.NewFromInt(2000), DueOn: today.AddDate(0, 0, 3)},
		// Overdue by 2 days: critical.
		{ID: 2, CreditID: 3, Number: "CHQ-2", Bank: "Audi", Amount: decimal.NewFromInt(1500), DueOn: today.AddDate(0, 0, -2)},
		// Due in 45 days: not surfaced.
		{ID: 3, CreditID: 3, Number: "CHQ-3", Bank: "Audi", Amount: decimal.NewFromInt(500), DueOn: today.AddDate(0, 0, 45)},
	}
	installments := []domain.Installment{
		// Due in 20 days: informational.
		{ID: 10, CreditID: 3, PartNumber: 2, Amount: decimal.NewFromInt(800), DueOn: today.AddDate(0, 0, 20)},
	}

	newSvc := func() service.ReminderService {
		chequeRepo := new(MockChequeRepo)
		installmentRepo := new(MockInstallmentRepo)
		creditRepo := new(MockCreditRepo)
		clientRepo := new(MockClientRepo)
		agentRepo := new(MockAgentRepo)

		chequeRepo.On("ListAll", ctx).Return(cheques, nil)
		installmentRepo.On("ListUnprocessed", ctx).Return(installments, nil)
		creditRepo.On("GetByID", ctx, int64(3)).Return(credit, nil).Once()
		clientRepo.On("GetByID", ctx, int64(5)).Return(client, nil).Once()
		agentRepo.On("GetByID", ctx, int64(7)).Return(agent, nil).Once()

		return service.NewReminderService(chequeRepo, installmentRepo, creditRepo, clientRepo, agentRepo)
	}

	t.Run("Unfiltered", func(t *testing.T) {
		svc := newSvc()
		reminders, summary, err := svc.List(ctx, domain.ReminderFilter{}, today)
		assert.NoError(t, err)
		assert.Len(t, reminders, 3)

		// Sorted by due date, most pressing first.
		assert.Equal(t, domain.ReminderKindChequeOverdue, reminders[0].Kind)
		assert.Equal(t, 2, reminders[0].DaysOverdue)
		assert.Equal(t, domain.ReminderKindChequeDueSoon, reminders[1].Kind)
		assert.Equal(t, 3, reminders[1].DaysLeft)
		assert.Equal(t, domain.ReminderKindInstallmentDue, reminders[2].Kind)
		assert.Equal(t, domain.UrgencyInformational, reminders[2].Urgency)

		assert.Equal(t, "Nadia Haddad", reminders[0].ClientName)
		assert.Equal(t, "Nour Khoury", reminders[0].AgentName)

		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 1, summary.Critical)
		assert.Equal(t, 1, summary.Important)
		assert.Equal(t, 1, summary.Informational)
		assert.True(t, summary.CriticalAmount.Equal(decimal.NewFromInt(1500)))
		assert.True(t, summary.ImportantAmount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("CriticalOnly", func(t *testing.T) {
		svc := newSvc()
		reminders, summary, err := svc.List(ctx, domain.ReminderFilter{Urgency: domain.UrgencyCritical}, today)
		assert.NoError(t, err)
		if assert.Len(t, reminders, 1) {
			assert.Equal(t, "CHQ-2", reminders[0].ChequeNumber)
		}
		assert.Equal(t, 1, summary.Total)
	})

	t.Run("SearchByChequeNumber", func(t *testing.T) {
		svc := newSvc()
		reminders, _, err := svc.List(ctx, domain.ReminderFilter{Search: "chq-1"}, today)
		assert.NoError(t, err)
		if assert.Len(t, reminders, 1) {
			assert.Equal(t, "CHQ-1", reminders[0].ChequeNumber)
		}
	})

	t.Run("OtherAgentExcluded", func(t *testing.T) {
		svc := newSvc()
		reminders, summary, err := svc.List(ctx, domain.ReminderFilter{AgentID: 99}, today)
		assert.NoError(t, err)
		assert.Empty(t, reminders)
		assert.Equal(t, 0, summary.Total)
	})
}
