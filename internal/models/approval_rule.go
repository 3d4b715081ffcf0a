package models

import "time"

// ApprovalRule is the approval_rules table row.
type ApprovalRule struct {
	RuleID       string    `db:"rule_id"`
	CompanyID    string    `db:"company_id"`
	CategoryID   *string   `db:"category_id"` // NULL = company-wide
	ApproverID   string    `db:"approver_id"`
	ApprovalType string    `db:"approval_type"`
	IsSequential bool      `db:"is_sequential"`
	OrderIndex   int       `db:"order_index"`
	IsActive     bool      `db:"is_active"`
	CreatedBy    string    `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`
}

// Category is the expense_categories table row.
type Category struct {
	CategoryID string `db:"category_id"`
	CompanyID  string `db:"company_id"`
	Name       string `db:"name"`
	IsActive   bool   `db:"is_active"`
}
