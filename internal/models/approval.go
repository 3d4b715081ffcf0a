package models

import "time"

// Approval is the approvals table row.
type Approval struct {
	ApprovalID string     `db:"approval_id"`
	ExpenseID  string     `db:"expense_id"`
	ApproverID string     `db:"approver_id"`
	Status     string     `db:"status"`
	Comments   *string    `db:"comments"`
	DecidedAt  *time.Time `db:"decided_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}
