package domain

import "time"

// ApprovalType determines how an approver's decision contributes to the expense status.
type ApprovalType string

const (
	// Compulsory approvers must all approve; any rejection is a veto.
	Compulsory ApprovalType = "compulsory"
	// Necessary approvers vote towards a 60% quorum.
	Necessary ApprovalType = "necessary"
)

// IsValid reports whether t is a known approval type.
func (t ApprovalType) IsValid() bool {
	return t == Compulsory || t == Necessary
}

// ApprovalRule names an approver for expenses of a category (or of every category when
// CategoryID is nil) within a company.
type ApprovalRule struct {
	RuleID       string       `json:"ruleID"`
	CompanyID    string       `json:"companyID"`
	CategoryID   *string      `json:"categoryID,omitempty"` // nil = company-wide
	ApproverID   string       `json:"approverID"`
	ApprovalType ApprovalType `json:"approvalType"`
	IsSequential bool         `json:"isSequential"`
	OrderIndex   int          `json:"orderIndex"`
	IsActive     bool         `json:"isActive"`
	CreatedBy    string       `json:"createdBy"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// IsCompanyWide reports whether the rule applies to every category of its company.
func (r ApprovalRule) IsCompanyWide() bool {
	return r.CategoryID == nil
}

// Category is an expense category owned by a company.
type Category struct {
	CategoryID string `json:"categoryID"`
	CompanyID  string `json:"companyID"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
}
