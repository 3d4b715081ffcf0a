package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationKind identifies the event a notification describes.
type NotificationKind string

const (
	NotificationExpenseSubmitted NotificationKind = "expense_submitted"
	NotificationExpenseApproved  NotificationKind = "expense_approved"
	NotificationExpenseRejected  NotificationKind = "expense_rejected"
	NotificationOverdueApproval  NotificationKind = "overdue_approval"
)

// NotificationPayload is implemented by the typed payload of each notification kind.
type NotificationPayload interface {
	Kind() NotificationKind
}

// Notification is a message to a single user. Delivery is best effort.
type Notification struct {
	RecipientID string              `json:"recipientID"`
	Title       string              `json:"title"`
	Message     string              `json:"message"`
	Payload     NotificationPayload `json:"payload"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Kind returns the kind of the notification's payload.
func (n Notification) Kind() NotificationKind {
	if n.Payload == nil {
		return ""
	}
	return n.Payload.Kind()
}

// ApprovalRequestedPayload is sent to an approver when a workflow is created.
type ApprovalRequestedPayload struct {
	ExpenseID    string          `json:"expenseID"`
	ApprovalID   string          `json:"approvalID"`
	ApprovalType ApprovalType    `json:"approvalType"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

func (ApprovalRequestedPayload) Kind() NotificationKind { return NotificationExpenseSubmitted }

// DecisionPayload is sent to the expense owner after an approver decides.
type DecisionPayload struct {
	ExpenseID     string         `json:"expenseID"`
	ApprovalID    string         `json:"approvalID"`
	ApproverID    string         `json:"approverID"`
	ApproverName  string         `json:"approverName"`
	Decision      ApprovalStatus `json:"decision"`
	Comments      *string        `json:"comments,omitempty"`
	ExpenseStatus ExpenseStatus  `json:"expenseStatus"`
}

func (p DecisionPayload) Kind() NotificationKind {
	if p.Decision == ApprovalRejected {
		return NotificationExpenseRejected
	}
	return NotificationExpenseApproved
}

// OverduePayload is sent to an approver whose pending approval exceeded the threshold.
type OverduePayload struct {
	ExpenseID   string `json:"expenseID"`
	ApprovalID  string `json:"approvalID"`
	DaysOverdue int    `json:"daysOverdue"`
}

func (OverduePayload) Kind() NotificationKind { return NotificationOverdueApproval }
