package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// pgxWorkflowTx runs workflow reads and writes on one pgx transaction.
type pgxWorkflowTx struct {
	tx pgx.Tx
}

var _ portsrepo.WorkflowTx = (*pgxWorkflowTx)(nil)

func (t *pgxWorkflowTx) LockExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = $1
		FOR UPDATE;`
	rows, err := t.tx.Query(ctx, query, expenseID)
	if err != nil {
		return nil, translateError(err, "failed to lock expense "+expenseID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, translateError(err, "failed to lock expense "+expenseID)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

func (t *pgxWorkflowTx) UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus, submittedAt *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE expenses
		SET status = $2, submitted_at = COALESCE($3, submitted_at), updated_at = $4
		WHERE expense_id = $1;`
	cmdTag, err := t.tx.Exec(ctx, query, expenseID, string(status), submittedAt, updatedAt)
	if err != nil {
		return translateError(err, "failed to update expense status "+expenseID)
	}
	if cmdTag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "")
	}
	return nil
}

func (t *pgxWorkflowTx) InsertApprovals(ctx context.Context, approvals []domain.Approval) error {
	query := `
		INSERT INTO approvals (approval_id, expense_id, approver_id, status, comments, decided_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	batch := &pgx.Batch{}
	for _, a := range approvals {
		m := mapping.ToModelApproval(a)
		batch.Queue(query,
			m.ApprovalID,
			m.ExpenseID,
			m.ApproverID,
			m.Status,
			m.Comments,
			m.DecidedAt,
			m.CreatedAt,
			m.UpdatedAt,
		)
	}
	br := t.tx.SendBatch(ctx, batch)
	// Close reports the first failing insert.
	if err := br.Close(); err != nil {
		return translateError(err, "failed to insert approvals")
	}
	return nil
}

func (t *pgxWorkflowTx) DecidePending(ctx context.Context, approvalID, approverID string, status domain.ApprovalStatus, comments *string, decidedAt time.Time) (*domain.Approval, error) {
	query := `
		UPDATE approvals
		SET status = $3, comments = $4, decided_at = $5, updated_at = $5
		WHERE approval_id = $1 AND approver_id = $2 AND status = 'pending'
		RETURNING ` + approvalColumns + `;`
	rows, err := t.tx.Query(ctx, query, approvalID, approverID, string(status), comments, decidedAt)
	if err != nil {
		return nil, translateError(err, "failed to decide approval "+approvalID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Approval])
	if err != nil {
		return nil, translateError(err, "failed to decide approval "+approvalID)
	}
	d := mapping.ToDomainApproval(m)
	return &d, nil
}

func (t *pgxWorkflowTx) FindApprovalForApprover(ctx context.Context, approvalID, approverID string) (*domain.Approval, error) {
	query := `SELECT ` + approvalColumns + `
		FROM approvals
		WHERE approval_id = $1 AND approver_id = $2;`
	rows, err := t.tx.Query(ctx, query, approvalID, approverID)
	if err != nil {
		return nil, translateError(err, "failed to find approval "+approvalID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Approval])
	if err != nil {
		return nil, translateError(err, "failed to find approval "+approvalID)
	}
	d := mapping.ToDomainApproval(m)
	return &d, nil
}

func (t *pgxWorkflowTx) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	return queryApprovals(ctx, t.tx, `SELECT `+approvalColumns+`
		FROM approvals
		WHERE expense_id = $1
		ORDER BY created_at, approval_id;`, expenseID)
}
