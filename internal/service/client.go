package service

import (
	"context"
	"fmt"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
	auditSvc   AuditService
}

func NewClientService(clientRepo repository.ClientRepository, auditSvc AuditService) ClientService {
	return &clientService{clientRepo: clientRepo, auditSvc: auditSvc}
}

func clientSnapshot(c *domain.Client) domain.Snapshot {
	return domain.Snapshot{
		"first_name":  c.FirstName,
		"last_name":   c.LastName,
		"national_id": c.NationalID,
		"phone":       c.Phone,
		"email":       c.Email,
		"address":     c.Address,
	}
}

func (s *clientService) Create(ctx context.Context, actor Actor, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionClientCreated,
		fmt.Sprintf("Registered client %s", client.FullName()))
	entry.ClientID = &client.ID
	entry.After = clientSnapshot(client)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) Update(ctx context.Context, actor Actor, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	before, err := s.clientRepo.GetByID(ctx, client.ID)
	if err != nil {
		return err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionClientUpdated,
		fmt.Sprintf("Updated client %s", client.FullName()))
	entry.ClientID = &client.ID
	entry.Before = clientSnapshot(before)
	entry.After = clientSnapshot(client)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *clientService) Delete(ctx context.Context, actor Actor, id int64) error {
	before, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionClientUpdated,
		fmt.Sprintf("Deleted client %s", before.FullName()))
	entry.ClientID = &id
	entry.Before = clientSnapshot(before)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *clientService) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.clientRepo.List(ctx, search, page, pageSize)
}
