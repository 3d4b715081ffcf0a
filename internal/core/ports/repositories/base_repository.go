package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// WorkflowTx is the set of reads and writes available inside one workflow transaction.
// Nothing written through it is visible to other callers until the transaction commits.
type WorkflowTx interface {
	// LockExpenseForUpdate loads the expense and holds an exclusive lock on it until the
	// transaction ends. Returns apperrors.ErrNotFound if the expense does not exist.
	LockExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error)

	// UpdateExpenseStatus writes the expense status. A non-nil submittedAt is stored too.
	UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus, submittedAt *time.Time, updatedAt time.Time) error

	// InsertApprovals creates approval records. A second record for the same
	// (expense, approver) pair fails with apperrors.ErrDuplicate.
	InsertApprovals(ctx context.Context, approvals []domain.Approval) error

	// DecidePending moves a pending approval owned by approverID to status.
	// It returns apperrors.ErrNotFound when no pending approval matched the id and approver.
	DecidePending(ctx context.Context, approvalID, approverID string, status domain.ApprovalStatus, comments *string, decidedAt time.Time) (*domain.Approval, error)

	// FindApprovalForApprover loads an approval by id, filtered by approver.
	// Returns apperrors.ErrNotFound on mismatch.
	FindApprovalForApprover(ctx context.Context, approvalID, approverID string) (*domain.Approval, error)

	// FindApprovalsByExpenseID returns every approval of an expense as seen by the transaction.
	FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error)
}

// TransactionManager runs units of work atomically.
type TransactionManager interface {
	// WithinTx runs fn inside a transaction. The transaction commits when fn returns nil
	// and rolls back otherwise; fn's error is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx WorkflowTx) error) error
}
