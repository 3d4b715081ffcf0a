package pgsql

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository reads identity data from the users table.
type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, company_id, first_name, last_name, email, is_active
		FROM users
		WHERE user_id = $1;`
	var m models.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.CompanyID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.IsActive,
	)
	if err != nil {
		return nil, translateError(err, "failed to find user "+userID)
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}
