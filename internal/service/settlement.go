package service

import (
	"context"
	"fmt"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type settlementService struct {
	settlementRepo repository.SettlementRepository
	creditRepo     repository.CreditRepository
	auditSvc       AuditService
}

func NewSettlementService(
	settlementRepo repository.SettlementRepository,
	creditRepo repository.CreditRepository,
	auditSvc AuditService,
) SettlementService {
	return &settlementService{
		settlementRepo: settlementRepo,
		creditRepo:     creditRepo,
		auditSvc:       auditSvc,
	}
}

func settlementSnapshot(s *domain.Settlement) domain.Snapshot {
	snap := domain.Snapshot{
		"amount":     s.Amount.String(),
		"mode":       string(s.Mode),
		"settled_on": s.SettledOn.Format("2006-01-02"),
		"memo":       s.Memo,
	}
	if s.Status != nil {
		snap["status"] = string(*s.Status)
	}
	return snap
}

func (s *settlementService) Create(ctx context.Context, actor Actor, st *domain.Settlement) error {
	st.AgentID = actor.AgentID
	st.Normalize()
	if err := st.Validate(); err != nil {
		return err
	}
	credit, err := s.creditRepo.GetByID(ctx, st.CreditID)
	if err != nil {
		return err
	}
	if st.Amount.GreaterThan(credit.Outstanding) {
		return domain.NewValidationError("amount",
			fmt.Sprintf("exceeds the outstanding balance of %s", credit.Outstanding.StringFixed(2)))
	}

	if err := s.settlementRepo.Create(ctx, st); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionSettlementRecorded,
		fmt.Sprintf("Recorded %s settlement of %s on credit %s", st.Mode, st.Amount.StringFixed(2), credit.PolicyNumber))
	entry.ClientID = &credit.ClientID
	entry.CreditID = &credit.ID
	entry.After = settlementSnapshot(st)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *settlementService) Update(ctx context.Context, actor Actor, st *domain.Settlement) error {
	st.Normalize()
	if err := st.Validate(); err != nil {
		return err
	}
	before, err := s.settlementRepo.GetByID(ctx, st.ID)
	if err != nil {
		return err
	}
	st.CreditID = before.CreditID

	credit, err := s.creditRepo.GetByID(ctx, st.CreditID)
	if err != nil {
		return err
	}
	// The old amount is part of the current outstanding figure, so the
	// headroom for the corrected amount is outstanding plus what the
	// settlement already contributed.
	headroom := credit.Outstanding
	if before.CountsTowardBalance() {
		headroom = headroom.Add(before.Amount)
	}
	if st.Amount.GreaterThan(headroom) {
		return domain.NewValidationError("amount",
			fmt.Sprintf("exceeds the outstanding balance of %s", headroom.StringFixed(2)))
	}

	if err := s.settlementRepo.Update(ctx, st); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionSettlementRecorded,
		fmt.Sprintf("Corrected settlement #%d", st.ID))
	entry.CreditID = &st.CreditID
	entry.Before = settlementSnapshot(before)
	entry.After = settlementSnapshot(st)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *settlementService) Delete(ctx context.Context, actor Actor, id int64) error {
	before, err := s.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.settlementRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionSettlementRecorded,
		fmt.Sprintf("Removed settlement #%d, balance restored", id))
	entry.CreditID = &before.CreditID
	entry.Before = settlementSnapshot(before)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *settlementService) ListByCredit(ctx context.Context, creditID int64) ([]domain.Settlement, error) {
	return s.settlementRepo.ListByCredit(ctx, creditID)
}

func (s *settlementService) ClearCheque(ctx context.Context, actor Actor, id int64) (*domain.Settlement, error) {
	st, err := s.settlementRepo.SetCleared(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := auditEntry(actor, domain.ActionChequeCollected,
		fmt.Sprintf("Cheque settlement #%d cleared by the bank", id))
	entry.CreditID = &st.CreditID
	entry.After = settlementSnapshot(st)
	s.auditSvc.Record(ctx, entry)
	return st, nil
}
