package pgsql

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRuleRepository struct {
	BaseRepository
}

func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRuleRepository implements portsrepo.RuleRepositoryFacade
var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

func (r *PgxRuleRepository) FindActiveRules(ctx context.Context, companyID, categoryID string) ([]domain.ApprovalRule, error) {
	query := `
		SELECT rule_id, company_id, category_id, approver_id, approval_type, is_sequential,
		       order_index, is_active, created_by, created_at
		FROM approval_rules
		WHERE company_id = $1
		  AND is_active
		  AND (category_id = $2 OR category_id IS NULL)
		ORDER BY order_index, rule_id;`
	rows, err := r.Pool.Query(ctx, query, companyID, categoryID)
	if err != nil {
		return nil, translateError(err, "failed to query approval rules")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ApprovalRule])
	if err != nil {
		return nil, translateError(err, "failed to scan approval rules")
	}
	return mapping.ToDomainApprovalRuleSlice(ms), nil
}

func (r *PgxRuleRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, company_id, name, is_active
		FROM expense_categories
		WHERE category_id = $1;`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.CompanyID, &m.Name, &m.IsActive)
	if err != nil {
		return nil, translateError(err, "failed to find category "+categoryID)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}
