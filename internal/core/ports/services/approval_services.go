package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// RuleResolverSvc resolves the approval rules that apply to an expense.
type RuleResolverSvc interface {
	// Resolve returns the active rules for a category of a company ordered by order index.
	// It fails with apperrors.ErrNotFound only when the category is unknown or belongs
	// to another company.
	Resolve(ctx context.Context, categoryID, companyID string) ([]domain.ApprovalRule, error)
}

// WorkflowCreatorSvc instantiates approval workflows.
type WorkflowCreatorSvc interface {
	// CreateWorkflow creates one pending approval per eligible approver and moves the
	// expense to pending, atomically.
	CreateWorkflow(ctx context.Context, expense domain.Expense) ([]domain.Approval, error)
}

// ExpenseSubmitterSvc submits expenses on behalf of their owner.
type ExpenseSubmitterSvc interface {
	// SubmitExpense loads the expense, checks the actor owns it and creates its workflow.
	SubmitExpense(ctx context.Context, expenseID, actorID string) ([]domain.Approval, error)
}

// WorkflowSvcFacade combines workflow creation and submission.
type WorkflowSvcFacade interface {
	WorkflowCreatorSvc
	ExpenseSubmitterSvc
}

// DecisionMakerSvc records approver decisions.
type DecisionMakerSvc interface {
	// Decide applies one decision and recomputes the expense status in the same transaction.
	Decide(ctx context.Context, approvalID, approverID string, decision domain.ApprovalStatus, comments *string) (*domain.DecisionOutcome, error)
}

// DecisionShortcutsSvc are convenience wrappers around Decide.
type DecisionShortcutsSvc interface {
	Approve(ctx context.Context, approvalID, approverID string, comments *string) (*domain.DecisionOutcome, error)
	Reject(ctx context.Context, approvalID, approverID string, comments *string) (*domain.DecisionOutcome, error)
}

// BulkDecisionSvc applies one decision to many approvals.
type BulkDecisionSvc interface {
	// DecideBulk runs Decide once per approval ID, each in its own transaction. A failed
	// approval is reported in the result and does not stop the others. The error is
	// only set when the request as a whole is invalid.
	DecideBulk(ctx context.Context, approvalIDs []string, approverID string, decision domain.ApprovalStatus, comments *string) (domain.BulkDecisionResult, error)
}

// DecisionSvcFacade combines all decision operations.
type DecisionSvcFacade interface {
	DecisionMakerSvc
	DecisionShortcutsSvc
	BulkDecisionSvc
}

// StatusSvc recomputes the expense status from stored approvals without writing it.
type StatusSvc interface {
	// Aggregate returns the current status of an expense as the aggregation algorithm sees it.
	Aggregate(ctx context.Context, expenseID string) (domain.ExpenseStatus, error)

	// ExpenseStatusForUser returns the recomputed status if userID owns the expense or
	// approves it, and apperrors.ErrNotFoundOrForbidden otherwise.
	ExpenseStatusForUser(ctx context.Context, expenseID, userID string) (domain.ExpenseStatus, error)
}

// ApprovalQuerySvc reads approvals on behalf of a user.
type ApprovalQuerySvc interface {
	// GetApproval returns the approval and its expense if userID owns the expense or is
	// the approver, and apperrors.ErrNotFoundOrForbidden otherwise.
	GetApproval(ctx context.Context, approvalID, userID string) (*domain.ApprovalDetails, error)

	ListPending(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error)
	ListHistory(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error)
}

// StatisticsSvc reports per-approver statistics.
type StatisticsSvc interface {
	// Stats aggregates the approver's approvals created within [from, to]. Nil bounds are open.
	Stats(ctx context.Context, approverID string, from, to *time.Time) (domain.ApprovalStats, error)
}

// OverdueSvc detects stale pending approvals.
type OverdueSvc interface {
	// SweepOverdue notifies the approvers of every approval pending longer than
	// thresholdDays and returns those approvals. A threshold <= 0 uses the default.
	SweepOverdue(ctx context.Context, thresholdDays int) ([]domain.Approval, error)
}
