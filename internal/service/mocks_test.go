package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"creditdesk-backend/internal/domain"
)

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}

// MockCreditRepo
type MockCreditRepo struct {
	mock.Mock
}

func (m *MockCreditRepo) CreateSingle(ctx context.Context, credit *domain.Credit, inst *domain.Installment, draft *domain.GuaranteeDraft, alert *domain.Alert) error {
	args := m.Called(ctx, credit, inst, draft, alert)
	return args.Error(0)
}
func (m *MockCreditRepo) CreateSplit(ctx context.Context, credit *domain.Credit, downPayment *domain.Settlement, cheques []domain.GuaranteeCheque, alerts []domain.Alert) error {
	args := m.Called(ctx, credit, downPayment, cheques, alerts)
	return args.Error(0)
}
func (m *MockCreditRepo) GetByID(ctx context.Context, id int64) (*domain.Credit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}
func (m *MockCreditRepo) Update(ctx context.Context, credit *domain.Credit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}
func (m *MockCreditRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCreditRepo) List(ctx context.Context, clientID, agentID int64, creditType domain.CreditType, search string, page, pageSize int32) ([]domain.Credit, int32, error) {
	args := m.Called(ctx, clientID, agentID, creditType, search, page, pageSize)
	return args.Get(0).([]domain.Credit), args.Get(1).(int32), args.Error(2)
}
func (m *MockCreditRepo) RecomputeOutstanding(ctx context.Context, creditID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, creditID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSettlementRepo
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) Create(ctx context.Context, s *domain.Settlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSettlementRepo) GetByID(ctx context.Context, id int64) (*domain.Settlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}
func (m *MockSettlementRepo) Update(ctx context.Context, s *domain.Settlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSettlementRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockSettlementRepo) ListByCredit(ctx context.Context, creditID int64) ([]domain.Settlement, error) {
	args := m.Called(ctx, creditID)
	return args.Get(0).([]domain.Settlement), args.Error(1)
}
func (m *MockSettlementRepo) SetCleared(ctx context.Context, id int64) (*domain.Settlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

// MockChequeRepo
type MockChequeRepo struct {
	mock.Mock
}

func (m *MockChequeRepo) Create(ctx context.Context, c *domain.GuaranteeCheque) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockChequeRepo) GetByID(ctx context.Context, id int64) (*domain.GuaranteeCheque, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuaranteeCheque), args.Error(1)
}
func (m *MockChequeRepo) Update(ctx context.Context, c *domain.GuaranteeCheque) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockChequeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockChequeRepo) ListByCredit(ctx context.Context, creditID int64) ([]domain.GuaranteeCheque, error) {
	args := m.Called(ctx, creditID)
	return args.Get(0).([]domain.GuaranteeCheque), args.Error(1)
}
func (m *MockChequeRepo) ListDueWithin(ctx context.Context, from, to time.Time) ([]domain.GuaranteeCheque, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.GuaranteeCheque), args.Error(1)
}
func (m *MockChequeRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.GuaranteeCheque, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.GuaranteeCheque), args.Error(1)
}
func (m *MockChequeRepo) ListAll(ctx context.Context) ([]domain.GuaranteeCheque, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GuaranteeCheque), args.Error(1)
}
func (m *MockChequeRepo) PayInCash(ctx context.Context, chequeID int64, settlement *domain.Settlement) error {
	args := m.Called(ctx, chequeID, settlement)
	return args.Error(0)
}

// MockInstallmentRepo
type MockInstallmentRepo struct {
	mock.Mock
}

func (m *MockInstallmentRepo) GetByID(ctx context.Context, id int64) (*domain.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}
func (m *MockInstallmentRepo) Update(ctx context.Context, inst *domain.Installment) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}
func (m *MockInstallmentRepo) ListByCredit(ctx context.Context, creditID int64) ([]domain.Installment, error) {
	args := m.Called(ctx, creditID)
	return args.Get(0).([]domain.Installment), args.Error(1)
}
func (m *MockInstallmentRepo) CountByCredit(ctx context.Context, creditID int64) (int, error) {
	args := m.Called(ctx, creditID)
	return args.Int(0), args.Error(1)
}
func (m *MockInstallmentRepo) ListUnprocessed(ctx context.Context) ([]domain.Installment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Installment), args.Error(1)
}
func (m *MockInstallmentRepo) CreatePlan(ctx context.Context, creditID int64, installments []domain.Installment, settlements []domain.Settlement, alerts []domain.Alert) error {
	args := m.Called(ctx, creditID, installments, settlements, alerts)
	return args.Error(0)
}
func (m *MockInstallmentRepo) GetDraftByID(ctx context.Context, id int64) (*domain.GuaranteeDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuaranteeDraft), args.Error(1)
}
func (m *MockInstallmentRepo) UpdateDraft(ctx context.Context, draft *domain.GuaranteeDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}
func (m *MockInstallmentRepo) GetDraftByInstallment(ctx context.Context, installmentID int64) (*domain.GuaranteeDraft, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuaranteeDraft), args.Error(1)
}

// MockAlertRepo
type MockAlertRepo struct {
	mock.Mock
}

func (m *MockAlertRepo) Create(ctx context.Context, a *domain.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAlertRepo) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}
func (m *MockAlertRepo) Update(ctx context.Context, a *domain.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAlertRepo) List(ctx context.Context, status domain.AlertStatus, agentID int64, page, pageSize int32) ([]domain.Alert, int32, error) {
	args := m.Called(ctx, status, agentID, page, pageSize)
	return args.Get(0).([]domain.Alert), args.Get(1).(int32), args.Error(2)
}
func (m *MockAlertRepo) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAgentRepo
type MockAgentRepo struct {
	mock.Mock
}

func (m *MockAgentRepo) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Agent), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, e *domain.AuditEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter, page, pageSize int32) ([]domain.AuditEntry, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.AuditEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockAuditRepo) Stats(ctx context.Context, today time.Time) (*domain.AuditStats, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditStats), args.Error(1)
}
