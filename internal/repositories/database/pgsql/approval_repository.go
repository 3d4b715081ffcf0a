package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const approvalColumns = `approval_id, expense_id, approver_id, status, comments, decided_at, created_at, updated_at`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryApprovals(ctx context.Context, q querier, query string, args ...any) ([]domain.Approval, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query approvals")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Approval])
	if err != nil {
		return nil, translateError(err, "failed to scan approvals")
	}
	return mapping.ToDomainApprovalSlice(ms), nil
}

// checkPaging rejects bounds Postgres would refuse, so they surface as input errors.
func checkPaging(limit, offset int) error {
	if limit < 0 || offset < 0 {
		return apperrors.NewValidationFailedError("page bounds must not be negative")
	}
	return nil
}

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxApprovalRepository implements portsrepo.ApprovalRepositoryFacade
var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

func (r *PgxApprovalRepository) FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	items, err := queryApprovals(ctx, r.Pool, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE approval_id = $1;`, approvalID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxApprovalRepository) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	return queryApprovals(ctx, r.Pool, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE expense_id = $1
		ORDER BY created_at, approval_id;`, expenseID)
}

func (r *PgxApprovalRepository) ListPendingByApprover(ctx context.Context, approverID string, limit, offset int) ([]domain.Approval, int, error) {
	if err := checkPaging(limit, offset); err != nil {
		return nil, 0, err
	}
	items, err := queryApprovals(ctx, r.Pool, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE approver_id = $1 AND status = 'pending'
		ORDER BY created_at DESC, approval_id
		LIMIT $2 OFFSET $3;`, approverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.count(ctx, `SELECT COUNT(*) FROM approvals WHERE approver_id = $1 AND status = 'pending';`, approverID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PgxApprovalRepository) ListDecidedByApprover(ctx context.Context, approverID string, limit, offset int) ([]domain.Approval, int, error) {
	if err := checkPaging(limit, offset); err != nil {
		return nil, 0, err
	}
	items, err := queryApprovals(ctx, r.Pool, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE approver_id = $1 AND status <> 'pending'
		ORDER BY decided_at DESC NULLS LAST, approval_id
		LIMIT $2 OFFSET $3;`, approverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.count(ctx, `SELECT COUNT(*) FROM approvals WHERE approver_id = $1 AND status <> 'pending';`, approverID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PgxApprovalRepository) FindPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Approval, error) {
	return queryApprovals(ctx, r.Pool, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at, approval_id;`, cutoff)
}

func (r *PgxApprovalRepository) ListByApproverCreatedBetween(ctx context.Context, approverID string, from, to *time.Time) ([]domain.Approval, error) {
	return queryApprovals(ctx, r.Pool, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE approver_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at, approval_id;`, approverID, from, to)
}

func (r *PgxApprovalRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, translateError(err, "failed to count approvals")
	}
	return total, nil
}
