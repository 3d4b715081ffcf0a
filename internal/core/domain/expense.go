package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the authoritative status derived by the workflow engine.
type ExpenseStatus string

const (
	ExpenseDraft    ExpenseStatus = "draft"
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense holds the expense attributes the approval engine reads.
// Status is the only field the engine writes.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	CompanyID   string          `json:"companyID"`
	UserID      string          `json:"userID"` // submitter / owner
	CategoryID  string          `json:"categoryID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      ExpenseStatus   `json:"status"`
	SubmittedAt *time.Time      `json:"submittedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
