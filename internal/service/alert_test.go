package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

func TestAlertService_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		alertRepo := new(MockAlertRepo)
		installmentRepo := new(MockInstallmentRepo)
		auditSvc, _ := newAuditSvc()
		svc := service.NewAlertService(alertRepo, installmentRepo, auditSvc)

		alertRepo.On("GetByID", ctx, int64(4)).Return(&domain.Alert{
			ID:      4,
			Type:    domain.AlertGuaranteeChequeDue,
			Message: "Guarantee cheque 778812 of credit POL-100 due on 2026-09-01",
			Status:  domain.AlertPending,
		}, nil)
		alertRepo.On("Update", ctx, mock.AnythingOfType("*domain.Alert")).Return(nil)

		alert, err := svc.Handle(ctx, testActor, 4, "client paid at the desk")
		assert.NoError(t, err)
		assert.Equal(t, domain.AlertHandled, alert.Status)
		assert.NotNil(t, alert.HandledAt)
		assert.Equal(t, "client paid at the desk", alert.HandlingNote)
		assert.Nil(t, alert.DeferredTo)
		installmentRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("MarksLinkedInstallmentProcessed", func(t *testing.T) {
		alertRepo := new(MockAlertRepo)
		installmentRepo := new(MockInstallmentRepo)
		auditSvc, _ := newAuditSvc()
		svc := service.NewAlertService(alertRepo, installmentRepo, auditSvc)

		instID := int64(17)
		alertRepo.On("GetByID", ctx, int64(4)).Return(&domain.Alert{
			ID:            4,
			InstallmentID: &instID,
			Type:          domain.AlertInstallmentDue,
			Status:        domain.AlertPending,
		}, nil)
		alertRepo.On("Update", ctx, mock.AnythingOfType("*domain.Alert")).Return(nil)
		installmentRepo.On("GetByID", ctx, instID).Return(&domain.Installment{
			ID:       17,
			CreditID: 9,
		}, nil)
		installmentRepo.On("Update", ctx, mock.MatchedBy(func(inst *domain.Installment) bool {
			return inst.ID == 17 && inst.IsProcessed && inst.ProcessedAt != nil
		})).Return(nil)

		_, err := svc.Handle(ctx, testActor, 4, "collected in person")
		assert.NoError(t, err)
		installmentRepo.AssertExpectations(t)
	})
}

func TestAlertService_Defer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		alertRepo := new(MockAlertRepo)
		auditSvc, _ := newAuditSvc()
		svc := service.NewAlertService(alertRepo, new(MockInstallmentRepo), auditSvc)

		alertRepo.On("GetByID", ctx, int64(4)).Return(&domain.Alert{
			ID:     4,
			Status: domain.AlertPending,
		}, nil)
		alertRepo.On("Update", ctx, mock.AnythingOfType("*domain.Alert")).Return(nil)

		until := time.Now().AddDate(0, 0, 5)
		alert, err := svc.Defer(ctx, testActor, 4, until)
		assert.NoError(t, err)
		assert.Equal(t, domain.AlertDeferred, alert.Status)
		if assert.NotNil(t, alert.DeferredTo) {
			assert.Equal(t, domain.DateOf(until), *alert.DeferredTo)
		}
		assert.Equal(t, domain.DateOf(until), alert.RemindOn)
	})

	t.Run("PastDate", func(t *testing.T) {
		alertRepo := new(MockAlertRepo)
		auditSvc, _ := newAuditSvc()
		svc := service.NewAlertService(alertRepo, new(MockInstallmentRepo), auditSvc)

		_, err := svc.Defer(ctx, testActor, 4, time.Now().AddDate(0, 0, -1))
		assert.True(t, domain.IsValidation(err))
		alertRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsStatus", func(t *testing.T) {
		auditRepo := new(MockAuditRepo)
		svc := service.NewAuditService(auditRepo)

		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditEntry")).Return(nil)

		entry := &domain.AuditEntry{Action: domain.ActionClientCreated, Description: "Registered client"}
		svc.Record(ctx, entry)
		assert.Equal(t, domain.AuditSuccess, entry.Status)
		auditRepo.AssertExpectations(t)
	})

	t.Run("SwallowsRepoError", func(t *testing.T) {
		auditRepo := new(MockAuditRepo)
		svc := service.NewAuditService(auditRepo)

		auditRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		// A failing trail write must never surface to the caller.
		assert.NotPanics(t, func() {
			svc.Record(ctx, &domain.AuditEntry{Action: domain.ActionSettlementRecorded})
		})
	})
}
