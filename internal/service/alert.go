package service

import (
	"context"
	"fmt"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type alertService struct {
	alertRepo       repository.AlertRepository
	installmentRepo repository.InstallmentRepository
	auditSvc        AuditService
}

func NewAlertService(alertRepo repository.AlertRepository, installmentRepo repository.InstallmentRepository, auditSvc AuditService) AlertService {
	return &alertService{alertRepo: alertRepo, installmentRepo: installmentRepo, auditSvc: auditSvc}
}

func (s *alertService) List(ctx context.Context, status domain.AlertStatus, agentID int64, page, pageSize int32) ([]domain.Alert, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.alertRepo.List(ctx, status, agentID, page, pageSize)
}

func (s *alertService) Handle(ctx context.Context, actor Actor, id int64, note string) (*domain.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	alert.Status = domain.AlertHandled
	alert.HandledAt = &now
	alert.HandlingNote = note
	alert.DeferredTo = nil
	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	// Handling an installment alert settles that installment in the
	// legacy flow.
	if alert.InstallmentID != nil {
		inst, err := s.installmentRepo.GetByID(ctx, *alert.InstallmentID)
		if err != nil {
			return nil, err
		}
		inst.IsProcessed = true
		inst.ProcessedAt = &now
		if err := s.installmentRepo.Update(ctx, inst); err != nil {
			return nil, err
		}
	}

	entry := auditEntry(actor, domain.ActionAlertHandled,
		fmt.Sprintf("Handled alert #%d: %s", alert.ID, alert.Message))
	entry.InstallmentID = alert.InstallmentID
	s.auditSvc.Record(ctx, entry)
	return alert, nil
}

func (s *alertService) Defer(ctx context.Context, actor Actor, id int64, until time.Time) (*domain.Alert, error) {
	if !domain.DateOf(until).After(domain.DateOf(time.Now())) {
		return nil, domain.NewValidationError("deferred_to", "must be a future date")
	}
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	day := domain.DateOf(until)
	alert.Status = domain.AlertDeferred
	alert.DeferredTo = &day
	alert.RemindOn = day
	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}

	entry := auditEntry(actor, domain.ActionAlertHandled,
		fmt.Sprintf("Deferred alert #%d to %s", alert.ID, day.Format("2006-01-02")))
	entry.InstallmentID = alert.InstallmentID
	s.auditSvc.Record(ctx, entry)
	return alert, nil
}
