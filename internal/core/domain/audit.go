package domain

import "time"

// AuditAction is the kind of state change being recorded.
type AuditAction string

const (
	AuditCreate  AuditAction = "create"
	AuditApprove AuditAction = "approve"
	AuditReject  AuditAction = "reject"
)

// AuditEntry records one state-changing operation. OldValues and NewValues hold
// typed value structs; the audit sink decides how to serialise them.
type AuditEntry struct {
	ActorID      string      `json:"actorID"`
	CompanyID    string      `json:"companyID"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   string      `json:"resourceID"`
	OldValues    any         `json:"oldValues,omitempty"`
	NewValues    any         `json:"newValues,omitempty"`
	RecordedAt   time.Time   `json:"recordedAt"`
}

// WorkflowAuditValues is recorded when a workflow is created.
type WorkflowAuditValues struct {
	ApprovalCount int      `json:"approval_count"`
	RulesApplied  []string `json:"rules_applied"`
}

// ApprovalAuditValues is recorded before and after a decision.
type ApprovalAuditValues struct {
	Status    ApprovalStatus `json:"status"`
	Comments  *string        `json:"comments,omitempty"`
	DecidedAt *time.Time     `json:"approved_at,omitempty"`
}
