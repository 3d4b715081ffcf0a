package repositories

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// AuditWriter persists audit entries.
type AuditWriter interface {
	RecordAudit(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
}
