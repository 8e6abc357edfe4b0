package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type creditService struct {
	creditRepo      repository.CreditRepository
	clientRepo      repository.ClientRepository
	settlementRepo  repository.SettlementRepository
	chequeRepo      repository.ChequeRepository
	installmentRepo repository.InstallmentRepository
	auditSvc        AuditService
}

func NewCreditService(
	creditRepo repository.CreditRepository,
	clientRepo repository.ClientRepository,
	settlementRepo repository.SettlementRepository,
	chequeRepo repository.ChequeRepository,
	installmentRepo repository.InstallmentRepository,
	auditSvc AuditService,
) CreditService {
	return &creditService{
		creditRepo:      creditRepo,
		clientRepo:      clientRepo,
		settlementRepo:  settlementRepo,
		chequeRepo:      chequeRepo,
		installmentRepo: installmentRepo,
		auditSvc:        auditSvc,
	}
}

func creditSnapshot(c *domain.Credit) domain.Snapshot {
	return domain.Snapshot{
		"policy_number": c.PolicyNumber,
		"type":          string(c.Type),
		"total_amount":  c.TotalAmount.String(),
		"outstanding":   c.Outstanding.String(),
		"description":   c.Description,
	}
}

func (s *creditService) CreateSingle(ctx context.Context, actor Actor, in CreateSingleCreditInput) (*domain.Credit, error) {
	credit := in.Credit
	credit.Type = domain.CreditTypeSingle
	credit.AgentID = actor.AgentID
	if err := credit.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(ctx, credit.ClientID); err != nil {
		return nil, err
	}

	dueOn := domain.DateOf(credit.ResolveDueDate(time.Now()))
	credit.DueDate = &dueOn
	credit.Outstanding = credit.TotalAmount

	inst := &domain.Installment{
		PartNumber: 1,
		Amount:     credit.TotalAmount,
		DueOn:      dueOn,
		IsCash:     in.Draft == nil,
	}
	inst.DefaultRemindOn()

	if in.Draft != nil {
		in.Draft.Status = domain.DraftStatusGuarantee
		if in.Draft.Amount.IsZero() {
			in.Draft.Amount = credit.TotalAmount
		}
	}

	alert := &domain.Alert{
		Type:     domain.AlertInstallmentDue,
		Message:  fmt.Sprintf("Credit %s due on %s", credit.PolicyNumber, dueOn.Format("2006-01-02")),
		AlertOn:  dueOn,
		RemindOn: inst.RemindOn,
		Status:   domain.AlertPending,
		AgentID:  actor.AgentID,
	}

	if err := s.creditRepo.CreateSingle(ctx, &credit, inst, in.Draft, alert); err != nil {
		return nil, err
	}

	entry := auditEntry(actor, domain.ActionCreditCreated,
		fmt.Sprintf("Opened single credit %s for %s", credit.PolicyNumber, credit.TotalAmount.StringFixed(2)))
	entry.ClientID = &credit.ClientID
	entry.CreditID = &credit.ID
	entry.After = creditSnapshot(&credit)
	s.auditSvc.Record(ctx, entry)
	return &credit, nil
}

func (s *creditService) CreateSplit(ctx context.Context, actor Actor, in CreateSplitCreditInput) (*domain.Credit, error) {
	credit := in.Credit
	credit.Type = domain.CreditTypeSplit
	credit.AgentID = actor.AgentID
	if err := credit.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(ctx, credit.ClientID); err != nil {
		return nil, err
	}
	if !in.DownPayment.IsPositive() {
		return nil, domain.NewValidationError("down_payment", "must be greater than zero")
	}
	if in.DownPayment.GreaterThanOrEqual(credit.TotalAmount) {
		return nil, domain.NewValidationError("down_payment", "must be less than the total amount")
	}
	if len(in.Cheques) == 0 {
		return nil, domain.NewValidationError("cheques", "at least one guarantee cheque is required")
	}

	remainder := credit.TotalAmount.Sub(in.DownPayment)
	if len(in.Cheques) == 1 && in.Cheques[0].Amount.IsZero() {
		in.Cheques[0].Amount = remainder
	}
	// Agent-filled amounts are taken as entered; the desk reconciles
	// mismatches against the running balance, not at entry time.
	for i := range in.Cheques {
		if err := in.Cheques[i].Validate(); err != nil {
			return nil, err
		}
	}

	settledOn := in.SettledOn
	if settledOn.IsZero() {
		settledOn = time.Now()
	}
	downPayment := &domain.Settlement{
		Amount:    in.DownPayment,
		SettledOn: domain.DateOf(settledOn),
		Mode:      domain.PaymentModeCash,
		Memo:      "Down payment",
		AgentID:   actor.AgentID,
	}
	downPayment.Normalize()

	alerts := make([]domain.Alert, 0, len(in.Cheques))
	for _, c := range in.Cheques {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertGuaranteeChequeDue,
			Message:  fmt.Sprintf("Guarantee cheque %s (%s) due on %s", c.Number, c.Bank, domain.DateOf(c.DueOn).Format("2006-01-02")),
			AlertOn:  domain.DateOf(c.DueOn),
			RemindOn: domain.DateOf(c.DueOn).AddDate(0, 0, -domain.ReminderLeadDays),
			Status:   domain.AlertPending,
			AgentID:  actor.AgentID,
		})
	}

	credit.Outstanding = credit.TotalAmount
	if err := s.creditRepo.CreateSplit(ctx, &credit, downPayment, in.Cheques, alerts); err != nil {
		return nil, err
	}

	entry := auditEntry(actor, domain.ActionCreditCreated,
		fmt.Sprintf("Opened split credit %s: %s down, %d guarantee cheque(s)",
			credit.PolicyNumber, in.DownPayment.StringFixed(2), len(in.Cheques)))
	entry.ClientID = &credit.ClientID
	entry.CreditID = &credit.ID
	entry.After = creditSnapshot(&credit)
	s.auditSvc.Record(ctx, entry)
	return &credit, nil
}

func (s *creditService) Get(ctx context.Context, id int64) (*CreditDetail, error) {
	credit, err := s.creditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, credit.ClientID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.ListByCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	cheques, err := s.chequeRepo.ListByCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	installments, err := s.installmentRepo.ListByCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	var drafts []domain.GuaranteeDraft
	for _, inst := range installments {
		draft, err := s.installmentRepo.GetDraftByInstallment(ctx, inst.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *draft)
	}

	totals := CreditTotals{Outstanding: credit.Outstanding}
	for _, st := range settlements {
		switch {
		case st.Mode != domain.PaymentModeCheque:
			totals.PaidCash = totals.PaidCash.Add(st.Amount)
		case st.CountsTowardBalance():
			totals.PaidClearedCheques = totals.PaidClearedCheques.Add(st.Amount)
		default:
			totals.PendingCheques = totals.PendingCheques.Add(st.Amount)
		}
	}
	held := decimal.Zero
	for _, c := range cheques {
		held = held.Add(c.Amount)
	}
	totals.RemainderAfterCheques = credit.Outstanding.Sub(held)

	return &CreditDetail{
		Credit:       credit,
		Client:       client,
		Settlements:  settlements,
		Cheques:      cheques,
		Installments: installments,
		Drafts:       drafts,
		Totals:       totals,
	}, nil
}

func (s *creditService) Update(ctx context.Context, actor Actor, credit *domain.Credit) error {
	if err := credit.Validate(); err != nil {
		return err
	}
	before, err := s.creditRepo.GetByID(ctx, credit.ID)
	if err != nil {
		return err
	}
	if err := s.creditRepo.Update(ctx, credit); err != nil {
		return err
	}
	// Total may have changed; rederive the balance.
	if _, err := s.creditRepo.RecomputeOutstanding(ctx, credit.ID); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionCreditUpdated,
		fmt.Sprintf("Updated credit %s", credit.PolicyNumber))
	entry.ClientID = &credit.ClientID
	entry.CreditID = &credit.ID
	entry.Before = creditSnapshot(before)
	entry.After = creditSnapshot(credit)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *creditService) Delete(ctx context.Context, actor Actor, id int64) error {
	before, err := s.creditRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.creditRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := auditEntry(actor, domain.ActionCreditDeleted,
		fmt.Sprintf("Deleted credit %s", before.PolicyNumber))
	entry.ClientID = &before.ClientID
	entry.Before = creditSnapshot(before)
	s.auditSvc.Record(ctx, entry)
	return nil
}

func (s *creditService) List(ctx context.Context, clientID, agentID int64, creditType domain.CreditType, search string, page, pageSize int32) ([]domain.Credit, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.creditRepo.List(ctx, clientID, agentID, creditType, search, page, pageSize)
}

func (s *creditService) CreatePlan(ctx context.Context, actor Actor, in CreatePlanInput) ([]domain.Installment, error) {
	credit, err := s.creditRepo.GetByID(ctx, in.CreditID)
	if err != nil {
		return nil, err
	}
	interval, err := in.Frequency.IntervalDays()
	if err != nil {
		return nil, err
	}
	if in.Parts < 1 {
		return nil, domain.NewValidationError("parts", "must be at least 1")
	}
	existing, err := s.installmentRepo.CountByCredit(ctx, in.CreditID)
	if err != nil {
		return nil, err
	}
	if existing+in.Parts > domain.MaxInstallmentParts {
		return nil, domain.NewValidationError("parts",
			fmt.Sprintf("credit already has %d installment(s), at most %d allowed", existing, domain.MaxInstallmentParts))
	}
	if !credit.Outstanding.IsPositive() {
		return nil, domain.NewValidationError("credit_id", "credit is already settled")
	}
	if in.FirstDueOn.IsZero() {
		return nil, domain.NewValidationError("first_due_on", "is required")
	}

	// Even split, last part carries the rounding remainder.
	parts := decimal.NewFromInt(int64(in.Parts))
	each := credit.Outstanding.Div(parts).RoundDown(2)
	last := credit.Outstanding.Sub(each.Mul(decimal.NewFromInt(int64(in.Parts - 1))))

	firstDue := domain.DateOf(in.FirstDueOn)
	installments := make([]domain.Installment, 0, in.Parts)
	var settlements []domain.Settlement
	alerts := make([]domain.Alert, 0, in.Parts)
	for i := 0; i < in.Parts; i++ {
		amount := each
		if i == in.Parts-1 {
			amount = last
		}
		due := firstDue.AddDate(0, 0, i*interval)
		inst := domain.Installment{
			PartNumber: existing + i + 1,
			Amount:     amount,
			DueOn:      due,
			IsCash:     in.Mode != domain.PaymentModeCheque,
		}
		inst.DefaultRemindOn()
		installments = append(installments, inst)

		if in.Mode == domain.PaymentModeCheque {
			st := domain.Settlement{
				Amount:    amount,
				SettledOn: due,
				Mode:      domain.PaymentModeCheque,
				Memo:      fmt.Sprintf("Post-dated cheque, installment %d", inst.PartNumber),
				AgentID:   actor.AgentID,
			}
			st.Normalize()
			settlements = append(settlements, st)
		}

		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertInstallmentDue,
			Message:  fmt.Sprintf("Installment %d of credit %s due on %s", inst.PartNumber, credit.PolicyNumber, due.Format("2006-01-02")),
			AlertOn:  due,
			RemindOn: inst.RemindOn,
			Status:   domain.AlertPending,
			AgentID:  actor.AgentID,
		})
	}

	if err := s.installmentRepo.CreatePlan(ctx, in.CreditID, installments, settlements, alerts); err != nil {
		return nil, err
	}

	entry := auditEntry(actor, domain.ActionInstallmentCreated,
		fmt.Sprintf("Scheduled %d %s installment(s) on credit %s", in.Parts, in.Frequency, credit.PolicyNumber))
	entry.ClientID = &credit.ClientID
	entry.CreditID = &credit.ID
	s.auditSvc.Record(ctx, entry)
	return installments, nil
}
