package domain

import "time"

// ApprovalStatus is the state of one approver's decision record.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsDecision reports whether s is a terminal decision an approver may submit.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// Approval is one approver's decision record for one expense.
// Exactly one exists per (ExpenseID, ApproverID).
type Approval struct {
	ApprovalID string         `json:"approvalID"`
	ExpenseID  string         `json:"expenseID"`
	ApproverID string         `json:"approverID"`
	Status     ApprovalStatus `json:"status"`
	Comments   *string        `json:"comments,omitempty"`
	DecidedAt  *time.Time     `json:"decidedAt,omitempty"` // set only when leaving pending
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// IsPending reports whether the approval still awaits a decision.
func (a Approval) IsPending() bool {
	return a.Status == ApprovalPending
}

// CanTransitionTo reports whether the approval may move to next.
// Only pending -> approved and pending -> rejected are allowed.
func (a Approval) CanTransitionTo(next ApprovalStatus) bool {
	return a.Status == ApprovalPending && next.IsDecision()
}

// DecisionDuration returns the time between creation and decision, or false if undecided.
func (a Approval) DecisionDuration() (time.Duration, bool) {
	if a.IsPending() || a.DecidedAt == nil {
		return 0, false
	}
	return a.DecidedAt.Sub(a.CreatedAt), true
}

// DaysPending returns the whole number of days the approval has been open at now.
func (a Approval) DaysPending(now time.Time) int {
	return int(now.Sub(a.CreatedAt).Hours() / 24)
}

// ApprovalDetails is an approval together with the expense it belongs to.
type ApprovalDetails struct {
	Approval Approval `json:"approval"`
	Expense  Expense  `json:"expense"`
}
