package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// ApprovalReader defines read operations for approval records outside a transaction.
type ApprovalReader interface {
	// FindApprovalByID returns apperrors.ErrNotFound if the approval does not exist.
	FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error)

	// FindApprovalsByExpenseID returns every approval of an expense.
	FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error)

	// ListPendingByApprover returns one page of the approver's pending approvals,
	// newest created first, together with the total number of pending approvals.
	ListPendingByApprover(ctx context.Context, approverID string, limit, offset int) ([]domain.Approval, int, error)

	// ListDecidedByApprover returns one page of the approver's decided approvals,
	// most recently decided first, together with the total number of decided approvals.
	ListDecidedByApprover(ctx context.Context, approverID string, limit, offset int) ([]domain.Approval, int, error)

	// FindPendingCreatedBefore returns all pending approvals created strictly before cutoff.
	FindPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Approval, error)

	// ListByApproverCreatedBetween returns the approver's approvals whose creation time
	// lies within [from, to]. A nil bound is open.
	ListByApproverCreatedBetween(ctx context.Context, approverID string, from, to *time.Time) ([]domain.Approval, error)
}

// ApprovalRepositoryFacade combines all approval-related repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalReader
}
