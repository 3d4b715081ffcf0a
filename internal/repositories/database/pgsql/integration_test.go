//go:build integration

package pgsql_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/SscSPs/expense_approvals/internal/notify"
	"github.com/SscSPs/expense_approvals/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_approvals/pkg/config"
	"github.com/SscSPs/expense_approvals/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const seedSQL = `
INSERT INTO companies (company_id, name) VALUES ('acme', 'Acme');
INSERT INTO users (user_id, company_id, first_name, last_name, email) VALUES
    ('alice', 'acme', 'Alice', 'Owner', 'alice@acme.test'),
    ('carol', 'acme', 'Carol', 'Chief', 'carol@acme.test'),
    ('dave', 'acme', 'Dave', 'Lead', 'dave@acme.test'),
    ('erin', 'acme', 'Erin', 'Lead', 'erin@acme.test');
INSERT INTO expense_categories (category_id, company_id, name) VALUES ('travel', 'acme', 'Travel');
INSERT INTO approval_rules (rule_id, company_id, category_id, approver_id, approval_type, order_index) VALUES
    ('r-carol', 'acme', NULL, 'carol', 'compulsory', 0),
    ('r-dave', 'acme', 'travel', 'dave', 'necessary', 1),
    ('r-erin', 'acme', 'travel', 'erin', 'necessary', 2);
INSERT INTO expenses (expense_id, company_id, user_id, category_id, description, amount, currency) VALUES
    ('exp-1', 'acme', 'alice', 'travel', 'Flight', 420.50, 'USD'),
    ('exp-2', 'acme', 'alice', 'travel', 'Hotel', 180.00, 'USD'),
    ('exp-3', 'acme', 'alice', 'travel', 'Taxi', 35.00, 'USD');
`

type PostgresIntegrationSuite struct {
	suite.Suite
	container  testcontainers.Container
	pool       *pgxpool.Pool
	repos      portsrepo.RepositoryProvider
	services   *portssvc.ServiceContainer
	dispatcher *notify.Dispatcher
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "approvals",
			"POSTGRES_PASSWORD": "approvals",
			"POSTGRES_DB":       "approvals",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err, "failed to start PostgreSQL container")
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err)
	url := fmt.Sprintf("postgres://approvals:approvals@%s:%s/approvals?sslmode=disable", host, port.Port())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	applied, err := database.RunMigrations(url, "file://../../../../migrations", logger)
	s.Require().NoError(err)
	s.Require().True(applied)

	s.pool, err = database.NewPgxPool(ctx, url, true)
	s.Require().NoError(err)
	_, err = s.pool.Exec(ctx, seedSQL)
	s.Require().NoError(err)

	s.repos = pgsql.NewRepositoryProvider(s.pool)
	s.dispatcher = notify.NewDispatcher(1, 16, notify.LogSink{})
	s.services = services.NewServiceContainer(&config.Config{OverdueThresholdDays: 3}, s.repos, s.dispatcher)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.dispatcher != nil {
		s.dispatcher.Stop()
	}
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresIntegrationSuite) TestSubmitAndDecide() {
	ctx := context.Background()
	svc := s.services

	approvals, err := svc.Workflow.SubmitExpense(ctx, "exp-1", "alice")
	s.Require().NoError(err)
	s.Require().Len(approvals, 3)

	byApprover := make(map[string]domain.Approval, len(approvals))
	for _, a := range approvals {
		byApprover[a.ApproverID] = a
	}

	_, err = svc.Workflow.SubmitExpense(ctx, "exp-1", "alice")
	s.ErrorIs(err, apperrors.ErrValidation, "resubmission")

	outcome, err := svc.Decision.Approve(ctx, byApprover["carol"].ApprovalID, "carol", nil)
	s.Require().NoError(err)
	// compulsory satisfied, necessary quorum at 0 of 2
	s.Equal(domain.ExpenseRejected, outcome.ExpenseStatus)

	_, err = svc.Decision.Approve(ctx, byApprover["carol"].ApprovalID, "carol", nil)
	s.ErrorIs(err, apperrors.ErrAlreadyDecided)

	_, err = svc.Decision.Approve(ctx, byApprover["dave"].ApprovalID, "erin", nil)
	s.ErrorIs(err, apperrors.ErrNotFoundOrForbidden)

	_, err = svc.Decision.Approve(ctx, byApprover["dave"].ApprovalID, "dave", nil)
	s.Require().NoError(err)
	comments := "Within policy"
	outcome, err = svc.Decision.Approve(ctx, byApprover["erin"].ApprovalID, "erin", &comments)
	s.Require().NoError(err)
	s.Equal(domain.ExpenseApproved, outcome.ExpenseStatus)

	expense, err := s.repos.ExpenseRepo.FindExpenseByID(ctx, "exp-1")
	s.Require().NoError(err)
	s.Equal(domain.ExpenseApproved, expense.Status)
	s.NotNil(expense.SubmittedAt)

	history, err := svc.Query.ListHistory(ctx, "erin", domain.PageRequest{})
	s.Require().NoError(err)
	s.Require().Len(history.Items, 1)
	s.Require().NotNil(history.Items[0].Comments)
	s.Equal("Within policy", *history.Items[0].Comments)

	found, err := s.repos.ApprovalRepo.FindApprovalByID(ctx, byApprover["erin"].ApprovalID)
	s.Require().NoError(err)
	s.Equal(domain.ApprovalApproved, found.Status)
	_, err = s.repos.ApprovalRepo.FindApprovalByID(ctx, "no-such-approval")
	s.ErrorIs(err, apperrors.ErrNotFound)

	details, err := svc.Query.GetApproval(ctx, byApprover["erin"].ApprovalID, "alice")
	s.Require().NoError(err)
	s.Equal("exp-1", details.Expense.ExpenseID)
	_, err = svc.Query.GetApproval(ctx, byApprover["erin"].ApprovalID, "dave")
	s.ErrorIs(err, apperrors.ErrNotFoundOrForbidden)

	_, _, err = s.repos.ApprovalRepo.ListPendingByApprover(ctx, "erin", 20, -20)
	s.ErrorIs(err, apperrors.ErrValidation, "negative offset is an input error, not a persistence error")
}

func (s *PostgresIntegrationSuite) TestConcurrentDecisionsAreApplied() {
	ctx := context.Background()
	approvals, err := s.services.Workflow.SubmitExpense(ctx, "exp-2", "alice")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, len(approvals))
	for _, a := range approvals {
		wg.Add(1)
		go func(a domain.Approval) {
			defer wg.Done()
			_, err := s.services.Decision.Approve(ctx, a.ApprovalID, a.ApproverID, nil)
			errs <- err
		}(a)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	expense, err := s.repos.ExpenseRepo.FindExpenseByID(ctx, "exp-2")
	s.Require().NoError(err)
	s.Equal(domain.ExpenseApproved, expense.Status, "no decision may be lost")
}

func (s *PostgresIntegrationSuite) TestDuplicateApprovalRollsBack() {
	ctx := context.Background()
	now := time.Now().UTC()
	insert := func(approvalID string, status domain.ExpenseStatus) error {
		return s.repos.TxManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
			if _, err := tx.LockExpenseForUpdate(ctx, "exp-3"); err != nil {
				return err
			}
			if err := tx.UpdateExpenseStatus(ctx, "exp-3", status, &now, now); err != nil {
				return err
			}
			return tx.InsertApprovals(ctx, []domain.Approval{{
				ApprovalID: approvalID,
				ExpenseID:  "exp-3",
				ApproverID: "carol",
				Status:     domain.ApprovalPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			}})
		})
	}

	s.Require().NoError(insert("taxi-1", domain.ExpensePending))
	err := insert("taxi-2", domain.ExpenseRejected)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	expense, err := s.repos.ExpenseRepo.FindExpenseByID(ctx, "exp-3")
	s.Require().NoError(err)
	s.Equal(domain.ExpensePending, expense.Status, "status update rolled back with the failed insert")
	approvals, err := s.repos.ApprovalRepo.FindApprovalsByExpenseID(ctx, "exp-3")
	s.Require().NoError(err)
	s.Len(approvals, 1)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}
