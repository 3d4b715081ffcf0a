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

const expenseColumns = `expense_id, company_id, user_id, category_id, description, amount, currency,
		status, submitted_at, created_at, updated_at`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, translateError(err, "failed to find expense "+expenseID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, translateError(err, "failed to find expense "+expenseID)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}
