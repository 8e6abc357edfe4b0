package service

import (
	"context"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/logger"
	"creditdesk-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, entry *domain.AuditEntry) {
	if entry.Status == "" {
		entry.Status = domain.AuditSuccess
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry", "action", entry.Action, "error", err)
	}
}

func (s *auditService) List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.auditRepo.List(ctx, filter, page, pageSize)
}

func (s *auditService) Stats(ctx context.Context) (*domain.AuditStats, error) {
	return s.auditRepo.Stats(ctx, time.Now())
}

// auditEntry seeds a trail record with the actor's identity and
// request metadata.
func auditEntry(actor Actor, action domain.ActionType, description string) *domain.AuditEntry {
	e := &domain.AuditEntry{
		Action:      action,
		Description: description,
		Status:      domain.AuditSuccess,
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
		SessionID:   actor.SessionID,
	}
	if actor.AgentID != 0 {
		id := actor.AgentID
		e.AgentID = &id
	}
	return e
}
