package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/google/uuid"
)

// WorkflowService creates approval workflows when expenses are submitted.
type WorkflowService struct {
	BaseService
	resolver    portssvc.RuleResolverSvc
	identity    portssvc.IdentityProvider
	expenseRepo portsrepo.ExpenseReader
	txManager   portsrepo.TransactionManager
	notifier    portssvc.NotificationDispatcher
	audit       portssvc.AuditSink
	now         func() time.Time
}

var _ portssvc.WorkflowSvcFacade = (*WorkflowService)(nil)

// WorkflowServiceOption is a functional option for configuring WorkflowService
type WorkflowServiceOption func(*WorkflowService)

// WithWorkflowClock overrides the clock used for timestamps.
func WithWorkflowClock(now func() time.Time) WorkflowServiceOption {
	return func(s *WorkflowService) {
		s.now = now
	}
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(
	resolver portssvc.RuleResolverSvc,
	identity portssvc.IdentityProvider,
	expenseRepo portsrepo.ExpenseReader,
	txManager portsrepo.TransactionManager,
	notifier portssvc.NotificationDispatcher,
	audit portssvc.AuditSink,
	opts ...WorkflowServiceOption,
) *WorkflowService {
	s := &WorkflowService{
		resolver:    resolver,
		identity:    identity,
		expenseRepo: expenseRepo,
		txManager:   txManager,
		notifier:    notifier,
		audit:       audit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// plannedApproval pairs a new approval with the rule that produced it.
type plannedApproval struct {
	approval domain.Approval
	rule     domain.ApprovalRule
}

// SubmitExpense loads an expense owned by actorID and creates its workflow.
func (s *WorkflowService) SubmitExpense(ctx context.Context, expenseID, actorID string) ([]domain.Approval, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("expense %s not found", expenseID))
		}
		s.LogError(ctx, err, "Failed to load expense", slog.String("expense_id", expenseID))
		return nil, err
	}
	if expense.UserID != actorID {
		s.LogWarn(ctx, "Expense submission by non-owner",
			slog.String("expense_id", expenseID),
			slog.String("actor_id", actorID))
		return nil, apperrors.ErrNotFoundOrForbidden
	}
	return s.CreateWorkflow(ctx, *expense)
}

// CreateWorkflow creates one pending approval per eligible approver and moves the expense
// to pending in a single transaction. Ineligible approvers are skipped. An expense with no
// eligible approver still moves to pending and stays there.
func (s *WorkflowService) CreateWorkflow(ctx context.Context, expense domain.Expense) ([]domain.Approval, error) {
	logger := s.GetLogger(ctx).With(slog.String("expense_id", expense.ExpenseID))

	rules, err := s.resolver.Resolve(ctx, expense.CategoryID, expense.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return nil, err
	}

	now := s.now().UTC()
	planned, err := s.planApprovals(ctx, expense, rules, now)
	if err != nil {
		return nil, err
	}

	approvals := make([]domain.Approval, len(planned))
	for i, p := range planned {
		approvals[i] = p.approval
	}

	var submitted domain.Expense
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		locked, err := tx.LockExpenseForUpdate(ctx, expense.ExpenseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError(fmt.Sprintf("expense %s not found", expense.ExpenseID))
			}
			return err
		}
		if locked.Status != domain.ExpenseDraft {
			return apperrors.NewValidationFailedError(fmt.Sprintf("expense %s has already been submitted", expense.ExpenseID))
		}
		if len(approvals) > 0 {
			if err := tx.InsertApprovals(ctx, approvals); err != nil {
				return err
			}
		}
		if err := tx.UpdateExpenseStatus(ctx, locked.ExpenseID, domain.ExpensePending, &now, now); err != nil {
			return err
		}
		submitted = *locked
		submitted.Status = domain.ExpensePending
		submitted.SubmittedAt = &now
		return nil
	})
	if err != nil {
		logger.Error("Failed to create approval workflow", slog.String("error", err.Error()))
		return nil, err
	}

	if len(approvals) == 0 {
		logger.Warn("No eligible approvers, expense stays pending")
	}

	for _, p := range planned {
		s.notifyApprover(ctx, submitted, p)
	}
	s.recordWorkflowAudit(ctx, submitted, rules, len(approvals), now)

	logger.Info("Created approval workflow", slog.Int("approval_count", len(approvals)))
	return approvals, nil
}

// planApprovals builds the approvals for each eligible rule in order.
func (s *WorkflowService) planApprovals(ctx context.Context, expense domain.Expense, rules []domain.ApprovalRule, now time.Time) ([]plannedApproval, error) {
	planned := make([]plannedApproval, 0, len(rules))
	seen := make(map[string]bool, len(rules))

	for _, rule := range rules {
		ruleLog := []any{
			slog.String("rule_id", rule.RuleID),
			slog.String("approver_id", rule.ApproverID),
			slog.String("expense_id", expense.ExpenseID),
		}
		if seen[rule.ApproverID] {
			s.LogWarn(ctx, "Approver already in workflow, skipping rule", ruleLog...)
			continue
		}

		approver, err := s.identity.GetUser(ctx, rule.ApproverID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogWarn(ctx, "Approver not found, skipping rule", ruleLog...)
				continue
			}
			s.LogError(ctx, err, "Failed to resolve approver", ruleLog...)
			return nil, err
		}
		if !approver.IsActive || approver.CompanyID != expense.CompanyID {
			s.LogWarn(ctx, "Approver inactive or in another company, skipping rule", ruleLog...)
			continue
		}

		seen[rule.ApproverID] = true
		planned = append(planned, plannedApproval{
			approval: domain.Approval{
				ApprovalID: uuid.NewString(),
				ExpenseID:  expense.ExpenseID,
				ApproverID: rule.ApproverID,
				Status:     domain.ApprovalPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			rule: rule,
		})
	}
	return planned, nil
}

func (s *WorkflowService) notifyApprover(ctx context.Context, expense domain.Expense, p plannedApproval) {
	n := domain.Notification{
		RecipientID: p.approval.ApproverID,
		Title:       "New Expense Approval Required",
		Message:     fmt.Sprintf("Expense '%s' requires your approval", expense.Description),
		Payload: domain.ApprovalRequestedPayload{
			ExpenseID:    expense.ExpenseID,
			ApprovalID:   p.approval.ApprovalID,
			ApprovalType: p.rule.ApprovalType,
			Amount:       expense.Amount,
			Currency:     expense.Currency,
		},
		CreatedAt: p.approval.CreatedAt,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.LogWarn(ctx, "Failed to dispatch approval request",
			slog.String("approval_id", p.approval.ApprovalID),
			slog.String("error", err.Error()))
	}
}

func (s *WorkflowService) recordWorkflowAudit(ctx context.Context, expense domain.Expense, rules []domain.ApprovalRule, approvalCount int, now time.Time) {
	ruleIDs := make([]string, len(rules))
	for i, r := range rules {
		ruleIDs[i] = r.RuleID
	}
	entry := domain.AuditEntry{
		ActorID:      expense.UserID,
		CompanyID:    expense.CompanyID,
		Action:       domain.AuditCreate,
		ResourceType: "approval_workflow",
		ResourceID:   expense.ExpenseID,
		NewValues: domain.WorkflowAuditValues{
			ApprovalCount: approvalCount,
			RulesApplied:  ruleIDs,
		},
		RecordedAt: now,
	}
	if err := s.audit.RecordAudit(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record workflow audit", slog.String("expense_id", expense.ExpenseID))
	}
}
