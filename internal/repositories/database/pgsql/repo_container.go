package pgsql

import (
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RuleRepo:     newPgxRuleRepository(dbPool),
		ExpenseRepo:  newPgxExpenseRepository(dbPool),
		ApprovalRepo: newPgxApprovalRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
		TxManager:    &BaseRepository{Pool: dbPool},
	}
}
