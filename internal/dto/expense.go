package dto

import (
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitExpenseResponse is returned after an expense entered its approval workflow.
type SubmitExpenseResponse struct {
	ExpenseID string               `json:"expenseID"`
	Status    domain.ExpenseStatus `json:"status"`
	Approvals []ApprovalResponse   `json:"approvals"`
}

// ExpenseSummaryResponse is the part of an expense shown next to its approvals.
type ExpenseSummaryResponse struct {
	ExpenseID   string               `json:"expenseID"`
	UserID      string               `json:"userID"`
	CategoryID  string               `json:"categoryID"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency"`
	Status      domain.ExpenseStatus `json:"status"`
	SubmittedAt *time.Time           `json:"submittedAt,omitempty"`
}

// ExpenseStatusResponse carries the recomputed status of an expense.
type ExpenseStatusResponse struct {
	ExpenseID string               `json:"expenseID"`
	Status    domain.ExpenseStatus `json:"status"`
}

// ToSubmitExpenseResponse builds the submit response. An expense with no
// applicable approvers stays pending until approvers are added.
func ToSubmitExpenseResponse(expenseID string, approvals []domain.Approval) SubmitExpenseResponse {
	return SubmitExpenseResponse{
		ExpenseID: expenseID,
		Status:    domain.ExpensePending,
		Approvals: ToApprovalResponses(approvals),
	}
}

// ToExpenseSummaryResponse converts a domain.Expense.
func ToExpenseSummaryResponse(e domain.Expense) ExpenseSummaryResponse {
	return ExpenseSummaryResponse{
		ExpenseID:   e.ExpenseID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Status:      e.Status,
		SubmittedAt: e.SubmittedAt,
	}
}
