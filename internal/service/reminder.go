package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/repository"
)

type reminderService struct {
	chequeRepo      repository.ChequeRepository
	installmentRepo repository.InstallmentRepository
	creditRepo      repository.CreditRepository
	clientRepo      repository.ClientRepository
	agentRepo       repository.AgentRepository
}

func NewReminderService(
	chequeRepo repository.ChequeRepository,
	installmentRepo repository.InstallmentRepository,
	creditRepo repository.CreditRepository,
	clientRepo repository.ClientRepository,
	agentRepo repository.AgentRepository,
) ReminderService {
	return &reminderService{
		chequeRepo:      chequeRepo,
		installmentRepo: installmentRepo,
		creditRepo:      creditRepo,
		clientRepo:      clientRepo,
		agentRepo:       agentRepo,
	}
}

// reminderContext caches the credit/client/agent lookups shared by
// every item derived from the same credit.
type reminderContext struct {
	svc     *reminderService
	credits map[int64]*domain.Credit
	clients map[int64]*domain.Client
	agents  map[int64]*domain.Agent
}

func (rc *reminderContext) resolve(ctx context.Context, creditID int64) (*domain.Credit, *domain.Client, *domain.Agent, error) {
	credit, ok := rc.credits[creditID]
	if !ok {
		var err error
		credit, err = rc.svc.creditRepo.GetByID(ctx, creditID)
		if err != nil {
			return nil, nil, nil, err
		}
		rc.credits[creditID] = credit
	}
	client, ok := rc.clients[credit.ClientID]
	if !ok {
		var err error
		client, err = rc.svc.clientRepo.GetByID(ctx, credit.ClientID)
		if err != nil {
			return nil, nil, nil, err
		}
		rc.clients[credit.ClientID] = client
	}
	agent, ok := rc.agents[credit.AgentID]
	if !ok {
		var err error
		agent, err = rc.svc.agentRepo.GetByID(ctx, credit.AgentID)
		if err != nil {
			return nil, nil, nil, err
		}
		rc.agents[credit.AgentID] = agent
	}
	return credit, client, agent, nil
}

func chequeReminderKind(urgency domain.Urgency, days int) string {
	switch {
	case urgency == domain.UrgencyCritical && days == 0:
		return domain.ReminderKindChequeDueToday
	case urgency == domain.UrgencyCritical:
		return domain.ReminderKindChequeOverdue
	case urgency == domain.UrgencyImportant:
		return domain.ReminderKindChequeDueSoon
	default:
		return domain.ReminderKindChequeDueMonth
	}
}

func dueMessage(what string, days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%s overdue by %d day(s)", what, -days)
	case days == 0:
		return fmt.Sprintf("%s due today", what)
	default:
		return fmt.Sprintf("%s due in %d day(s)", what, days)
	}
}

func (s *reminderService) List(ctx context.Context, filter domain.ReminderFilter, today time.Time) ([]domain.Reminder, domain.ReminderSummary, error) {
	rc := &reminderContext{
		svc:     s,
		credits: map[int64]*domain.Credit{},
		clients: map[int64]*domain.Client{},
		agents:  map[int64]*domain.Agent{},
	}

	var reminders []domain.Reminder

	cheques, err := s.chequeRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.ReminderSummary{}, err
	}
	for _, c := range cheques {
		urgency, ok := domain.ClassifyDue(c.DueOn, today)
		if !ok {
			continue
		}
		credit, client, agent, err := rc.resolve(ctx, c.CreditID)
		if err != nil {
			return nil, domain.ReminderSummary{}, err
		}
		days := domain.DaysBetween(today, c.DueOn)
		r := domain.Reminder{
			Kind:         chequeReminderKind(urgency, days),
			Urgency:      urgency,
			Title:        fmt.Sprintf("Cheque %s, %s", c.Number, c.Bank),
			Message:      dueMessage(fmt.Sprintf("Cheque %s of %s", c.Number, client.FullName()), days),
			ClientID:     client.ID,
			ClientName:   client.FullName(),
			CreditID:     credit.ID,
			PolicyNumber: credit.PolicyNumber,
			AgentID:      agent.ID,
			AgentName:    agent.FullName,
			DueOn:        domain.DateOf(c.DueOn),
			Amount:       c.Amount,
			Bank:         c.Bank,
			ChequeNumber: c.Number,
		}
		if days < 0 {
			r.DaysOverdue = -days
		} else {
			r.DaysLeft = days
		}
		if r.Matches(filter) {
			reminders = append(reminders, r)
		}
	}

	installments, err := s.installmentRepo.ListUnprocessed(ctx)
	if err != nil {
		return nil, domain.ReminderSummary{}, err
	}
	for _, inst := range installments {
		urgency, ok := domain.ClassifyDue(inst.DueOn, today)
		if !ok {
			continue
		}
		credit, client, agent, err := rc.resolve(ctx, inst.CreditID)
		if err != nil {
			return nil, domain.ReminderSummary{}, err
		}
		days := domain.DaysBetween(today, inst.DueOn)
		r := domain.Reminder{
			Kind:         domain.ReminderKindInstallmentDue,
			Urgency:      urgency,
			Title:        fmt.Sprintf("Installment %d, credit %s", inst.PartNumber, credit.PolicyNumber),
			Message:      dueMessage(fmt.Sprintf("Installment %d of %s", inst.PartNumber, client.FullName()), days),
			ClientID:     client.ID,
			ClientName:   client.FullName(),
			CreditID:     credit.ID,
			PolicyNumber: credit.PolicyNumber,
			AgentID:      agent.ID,
			AgentName:    agent.FullName,
			DueOn:        domain.DateOf(inst.DueOn),
			Amount:       inst.Amount,
		}
		if days < 0 {
			r.DaysOverdue = -days
		} else {
			r.DaysLeft = days
		}
		if r.Matches(filter) {
			reminders = append(reminders, r)
		}
	}

	// Most pressing first.
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DueOn.Before(reminders[j].DueOn)
	})
	return reminders, domain.Summarize(reminders), nil
}
