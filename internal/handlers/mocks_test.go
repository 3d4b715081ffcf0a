package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock DecisionService ---
type MockDecisionService struct {
	mock.Mock
}

func (m *MockDecisionService) Decide(ctx context.Context, approvalID, approverID string, decision domain.ApprovalStatus, comments *string) (*domain.DecisionOutcome, error) {
	args := m.Called(ctx, approvalID, approverID, decision, comments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DecisionOutcome), args.Error(1)
}
func (m *MockDecisionService) Approve(ctx context.Context, approvalID, approverID string, comments *string) (*domain.DecisionOutcome, error) {
	return m.Decide(ctx, approvalID, approverID, domain.ApprovalApproved, comments)
}
func (m *MockDecisionService) Reject(ctx context.Context, approvalID, approverID string, comments *string) (*domain.DecisionOutcome, error) {
	return m.Decide(ctx, approvalID, approverID, domain.ApprovalRejected, comments)
}
func (m *MockDecisionService) DecideBulk(ctx context.Context, approvalIDs []string, approverID string, decision domain.ApprovalStatus, comments *string) (domain.BulkDecisionResult, error) {
	args := m.Called(ctx, approvalIDs, approverID, decision, comments)
	return args.Get(0).(domain.BulkDecisionResult), args.Error(1)
}

var _ portssvc.DecisionSvcFacade = (*MockDecisionService)(nil)

// --- Mock ApprovalQueryService ---
type MockApprovalQueryService struct {
	mock.Mock
}

func (m *MockApprovalQueryService) GetApproval(ctx context.Context, approvalID, userID string) (*domain.ApprovalDetails, error) {
	args := m.Called(ctx, approvalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalDetails), args.Error(1)
}
func (m *MockApprovalQueryService) ListPending(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error) {
	args := m.Called(ctx, approverID, page)
	return args.Get(0).(domain.ApprovalPage), args.Error(1)
}
func (m *MockApprovalQueryService) ListHistory(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error) {
	args := m.Called(ctx, approverID, page)
	return args.Get(0).(domain.ApprovalPage), args.Error(1)
}

var _ portssvc.ApprovalQuerySvc = (*MockApprovalQueryService)(nil)

// --- Mock StatisticsService ---
type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) Stats(ctx context.Context, approverID string, from, to *time.Time) (domain.ApprovalStats, error) {
	args := m.Called(ctx, approverID, from, to)
	return args.Get(0).(domain.ApprovalStats), args.Error(1)
}

var _ portssvc.StatisticsSvc = (*MockStatisticsService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) CreateWorkflow(ctx context.Context, expense domain.Expense) ([]domain.Approval, error) {
	args := m.Called(ctx, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}
func (m *MockWorkflowService) SubmitExpense(ctx context.Context, expenseID, actorID string) ([]domain.Approval, error) {
	args := m.Called(ctx, expenseID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Mock StatusService ---
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Aggregate(ctx context.Context, expenseID string) (domain.ExpenseStatus, error) {
	args := m.Called(ctx, expenseID)
	return args.Get(0).(domain.ExpenseStatus), args.Error(1)
}
func (m *MockStatusService) ExpenseStatusForUser(ctx context.Context, expenseID, userID string) (domain.ExpenseStatus, error) {
	args := m.Called(ctx, expenseID, userID)
	return args.Get(0).(domain.ExpenseStatus), args.Error(1)
}

var _ portssvc.StatusSvc = (*MockStatusService)(nil)

// --- Mock OverdueService ---
type MockOverdueService struct {
	mock.Mock
}

func (m *MockOverdueService) SweepOverdue(ctx context.Context, thresholdDays int) ([]domain.Approval, error) {
	args := m.Called(ctx, thresholdDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

var _ portssvc.OverdueSvc = (*MockOverdueService)(nil)
