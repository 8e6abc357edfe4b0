package service

import (
	"context"
	"fmt"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type chequeService struct {
	chequeRepo      repository.ChequeRepository
	creditRepo      repository.CreditRepository
	installmentRepo repository.InstallmentRepository
	alertRepo       repository.AlertRepository
	auditSvc        AuditService
}

func NewChequeService(
	chequeRepo repository.ChequeRepository,
	creditRepo repository.CreditRepository,
	installmentRepo repository.InstallmentRepository,
	alertRepo repository.AlertRepository,
	auditSvc AuditService,
) ChequeService {
	return &chequeService{
		chequeRepo:      chequeRepo,
		creditRepo:      creditRepo,
		installmentRepo: installmentRepo,
		alertRepo:       alertRepo,
		auditSvc:        auditSvc,
	}
}

func (s *chequeService) Create(ctx context.Context, actor Actor, c *domain.GuaranteeCheque) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.creditRepo.GetByID(ctx, c.CreditID); err != nil {
		return err
	}
	if err := s.chequeRepo.Create(ctx, c); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionAlertCreated,
		fmt.Sprintf("Registered guarantee cheque %s (%s) on credit #%d", c.Number, c.Bank, c.CreditID))
	entry.CreditID = &c.CreditID
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *chequeService) Get(ctx context.Context, id int64) (*domain.GuaranteeCheque, error) {
	return s.chequeRepo.GetByID(ctx, id)
}

func (s *chequeService) Update(ctx context.Context, actor Actor, c *domain.GuaranteeCheque) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.chequeRepo.Update(ctx, c)
}

func (s *chequeService) Delete(ctx context.Context, actor Actor, id int64) error {
	before, err := s.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.chequeRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionChequeCancelled,
		fmt.Sprintf("Removed guarantee cheque %s from credit #%d", before.Number, before.CreditID))
	entry.CreditID = &before.CreditID
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *chequeService) ListByCredit(ctx context.Context, creditID int64) ([]domain.GuaranteeCheque, error) {
	return s.chequeRepo.ListByCredit(ctx, creditID)
}

func (s *chequeService) PayInCash(ctx context.Context, actor Actor, chequeID int64, settledOn time.Time, memo string) error {
	cheque, err := s.chequeRepo.GetByID(ctx, chequeID)
	if err != nil {
		return err
	}
	if settledOn.IsZero() {
		settledOn = time.Now()
	}
	if memo == "" {
		memo = fmt.Sprintf("Cash in place of cheque %s (%s)", cheque.Number, cheque.Bank)
	}

	settlement := &domain.Settlement{
		Amount:    cheque.Amount,
		SettledOn: domain.DateOf(settledOn),
		Mode:      domain.PaymentModeCash,
		Memo:      memo,
		AgentID:   actor.AgentID,
	}
	settlement.Normalize()
	if err := s.chequeRepo.PayInCash(ctx, chequeID, settlement); err != nil {
		return err
	}

	alert := &domain.Alert{
		Type:     domain.AlertReminder,
		Message:  fmt.Sprintf("Cheque %s settled in cash for %s", cheque.Number, cheque.Amount.StringFixed(2)),
		AlertOn:  domain.DateOf(settledOn),
		RemindOn: domain.DateOf(settledOn),
		Status:   domain.AlertHandled,
		AgentID:  actor.AgentID,
	}
	now := time.Now()
	alert.HandledAt = &now
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionChequePaidCash,
		fmt.Sprintf("Cheque %s replaced by cash settlement of %s", cheque.Number, cheque.Amount.StringFixed(2)))
	entry.CreditID = &cheque.CreditID
	s.auditSvc.Record(ctx, entry)
	return nil
}

// draftAlert spawns the stored alert every legacy draft action emits.
func (s *chequeService) draftAlert(ctx context.Context, actor Actor, draft *domain.GuaranteeDraft, message string, remindOn time.Time) error {
	alert := &domain.Alert{
		InstallmentID: &draft.InstallmentID,
		Type:          domain.AlertReminder,
		Message:       message,
		AlertOn:       domain.DateOf(time.Now()),
		RemindOn:      domain.DateOf(remindOn),
		Status:        domain.AlertPending,
		AgentID:       actor.AgentID,
	}
	return s.alertRepo.Create(ctx, alert)
}

func (s *chequeService) MarkDraftToCollect(ctx context.Context, actor Actor, draftID int64) (*domain.GuaranteeDraft, error) {
	draft, err := s.installmentRepo.GetDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	draft.Status = domain.DraftStatusToCollect
	if err := s.installmentRepo.UpdateDraft(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.draftAlert(ctx, actor, draft,
		fmt.Sprintf("Draft %s ready to collect", draft.Number), time.Now()); err != nil {
		return nil, err
	}
	entry := auditEntry(actor, domain.ActionChequeCollected,
		fmt.Sprintf("Draft %s marked to collect", draft.Number))
	entry.InstallmentID = &draft.InstallmentID
	s.auditSvc.Record(ctx, entry)
	return draft, nil
}

func (s *chequeService) DeferDraft(ctx context.Context, actor Actor, draftID int64, expectedOn time.Time) (*domain.GuaranteeDraft, error) {
	if !domain.DateOf(expectedOn).After(domain.DateOf(time.Now())) {
		return nil, domain.NewValidationError("expected_on", "must be a future date")
	}
	draft, err := s.installmentRepo.GetDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	expected := domain.DateOf(expectedOn)
	draft.Status = domain.DraftStatusDeferred
	draft.ExpectedOn = &expected
	if err := s.installmentRepo.UpdateDraft(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.draftAlert(ctx, actor, draft,
		fmt.Sprintf("Draft %s deferred to %s", draft.Number, expected.Format("2006-01-02")), expected); err != nil {
		return nil, err
	}
	entry := auditEntry(actor, domain.ActionChequeDeferred,
		fmt.Sprintf("Draft %s deferred to %s", draft.Number, expected.Format("2006-01-02")))
	entry.InstallmentID = &draft.InstallmentID
	s.auditSvc.Record(ctx, entry)
	return draft, nil
}

func (s *chequeService) RequestClientContact(ctx context.Context, actor Actor, draftID int64, note string) (*domain.GuaranteeDraft, error) {
	draft, err := s.installmentRepo.GetDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if note != "" {
		draft.Remarks = note
		if err := s.installmentRepo.UpdateDraft(ctx, draft); err != nil {
			return nil, err
		}
	}

	if err := s.draftAlert(ctx, actor, draft,
		fmt.Sprintf("Contact client about draft %s: %s", draft.Number, note), time.Now()); err != nil {
		return nil, err
	}
	entry := auditEntry(actor, domain.ActionClientContacted,
		fmt.Sprintf("Contact requested for draft %s", draft.Number))
	entry.InstallmentID = &draft.InstallmentID
	s.auditSvc.Record(ctx, entry)
	return draft, nil
}
