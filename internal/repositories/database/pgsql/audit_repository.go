package pgsql

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) RecordAudit(ctx context.Context, entry domain.AuditEntry) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit entry", err)
	}
	query := `
		INSERT INTO audit_logs (audit_id, company_id, actor_id, action, resource_type, resource_id, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err = r.Pool.Exec(ctx, query,
		m.AuditID,
		m.CompanyID,
		m.ActorID,
		m.Action,
		m.ResourceType,
		m.ResourceID,
		m.OldValues,
		m.NewValues,
		m.CreatedAt,
	)
	if err != nil {
		return translateError(err, "failed to insert audit log")
	}
	return nil
}
