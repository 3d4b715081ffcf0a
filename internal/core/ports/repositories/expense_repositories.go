package repositories

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// ExpenseReader defines read operations for expenses.
// Expense status is only ever written through a WorkflowTx.
type ExpenseReader interface {
	// FindExpenseByID returns apperrors.ErrNotFound if the expense does not exist.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
}
