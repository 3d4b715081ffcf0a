package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the expenses table row, limited to the columns the engine uses.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	CompanyID   string          `db:"company_id"`
	UserID      string          `db:"user_id"`
	CategoryID  string          `db:"category_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Status      string          `db:"status"`
	SubmittedAt *time.Time      `db:"submitted_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
