package models

import "time"

// AuditLog is the audit_logs table row. Old and new values are stored as JSONB.
type AuditLog struct {
	AuditID      string    `db:"audit_id"`
	CompanyID    string    `db:"company_id"`
	ActorID      string    `db:"actor_id"`
	Action       string    `db:"action"`
	ResourceType string    `db:"resource_type"`
	ResourceID   string    `db:"resource_id"`
	OldValues    []byte    `db:"old_values"`
	NewValues    []byte    `db:"new_values"`
	CreatedAt    time.Time `db:"created_at"`
}
