package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	companyID      = "acme"
	otherCompanyID = "globex"
	travelID       = "travel"
	ownerID        = "owner"
)

// --- Mock NotificationDispatcher ---
type MockNotifier struct {
	mock.Mock
	mu   sync.Mutex
	sent []domain.Notification
}

func (m *MockNotifier) Notify(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.sent = append(m.sent, n)
		m.mu.Unlock()
	}
	return args.Error(0)
}

// Sent returns the notifications accepted so far.
func (m *MockNotifier) Sent() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notification, len(m.sent))
	copy(out, m.sent)
	return out
}

var _ portssvc.NotificationDispatcher = (*MockNotifier)(nil)

// --- Mock AuditSink ---
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) RecordAudit(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

// fixedClock returns a clock that always reports t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string {
	return &s
}

// seedStore returns a store with one company, its owner and a travel category.
// Approvers are added per test with addApprover.
func seedStore() *memory.Store {
	store := memory.NewStore()
	store.SaveCompany(domain.Company{CompanyID: companyID, Name: "Acme", BaseCurrency: "USD", IsActive: true})
	store.SaveCompany(domain.Company{CompanyID: otherCompanyID, Name: "Globex", BaseCurrency: "EUR", IsActive: true})
	store.SaveUser(domain.User{UserID: ownerID, CompanyID: companyID, FirstName: "Olive", LastName: "Owner", IsActive: true})
	store.SaveCategory(domain.Category{CategoryID: travelID, CompanyID: companyID, Name: "Travel", IsActive: true})
	return store
}

func addApprover(store *memory.Store, userID, first, last string) {
	store.SaveUser(domain.User{UserID: userID, CompanyID: companyID, FirstName: first, LastName: last, IsActive: true})
}

func addRule(store *memory.Store, ruleID, approverID string, t domain.ApprovalType, order int) {
	store.SaveRule(domain.ApprovalRule{
		RuleID:       ruleID,
		CompanyID:    companyID,
		CategoryID:   strPtr(travelID),
		ApproverID:   approverID,
		ApprovalType: t,
		OrderIndex:   order,
		IsActive:     true,
	})
}

func addDraftExpense(store *memory.Store, expenseID string, created time.Time) domain.Expense {
	e := domain.Expense{
		ExpenseID:   expenseID,
		CompanyID:   companyID,
		UserID:      ownerID,
		CategoryID:  travelID,
		Description: "Flight to Berlin",
		Amount:      decimal.RequireFromString("420.50"),
		Currency:    "USD",
		Status:      domain.ExpenseDraft,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	store.SaveExpense(e)
	return e
}

// insertApprovals writes approvals straight into the store, bypassing the workflow.
func insertApprovals(store *memory.Store, approvals ...domain.Approval) error {
	return store.WithinTx(context.Background(), func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		return tx.InsertApprovals(ctx, approvals)
	})
}

func decidedApproval(id, approverID string, status domain.ApprovalStatus, created time.Time, after time.Duration) domain.Approval {
	decided := created.Add(after)
	return domain.Approval{
		ApprovalID: id,
		ExpenseID:  "e-" + id,
		ApproverID: approverID,
		Status:     status,
		DecidedAt:  &decided,
		CreatedAt:  created,
		UpdatedAt:  decided,
	}
}

func pendingApproval(id, approverID string, created time.Time) domain.Approval {
	return domain.Approval{
		ApprovalID: id,
		ExpenseID:  "e-" + id,
		ApproverID: approverID,
		Status:     domain.ApprovalPending,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}
