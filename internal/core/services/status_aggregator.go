package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
)

// NecessaryQuorumPercent is the share of necessary approvals that must be approved.
const NecessaryQuorumPercent = 60

// AggregateExpenseStatus derives the expense status from its approvals and the rules
// currently in force. It has no side effects.
//
// Approvals whose approver matches no active rule are ignored. When an approver is
// matched by both a compulsory and a necessary rule the approval counts as compulsory.
// Pending necessary approvals count towards the quorum denominator only.
func AggregateExpenseStatus(approvals []domain.Approval, rules []domain.ApprovalRule) domain.ExpenseStatus {
	if len(approvals) == 0 {
		return domain.ExpensePending
	}

	types := make(map[string]domain.ApprovalType, len(rules))
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if types[r.ApproverID] == domain.Compulsory {
			continue
		}
		types[r.ApproverID] = r.ApprovalType
	}

	var compulsory, necessary []domain.Approval
	for _, a := range approvals {
		switch types[a.ApproverID] {
		case domain.Compulsory:
			compulsory = append(compulsory, a)
		case domain.Necessary:
			necessary = append(necessary, a)
		}
	}

	for _, a := range compulsory {
		if a.Status == domain.ApprovalRejected {
			return domain.ExpenseRejected
		}
	}
	for _, a := range compulsory {
		if a.Status == domain.ApprovalPending {
			return domain.ExpensePending
		}
	}

	if len(necessary) > 0 {
		approved := 0
		for _, a := range necessary {
			if a.Status == domain.ApprovalApproved {
				approved++
			}
		}
		// approved/total*100 < quorum, kept in integers.
		if approved*100 < NecessaryQuorumPercent*len(necessary) {
			return domain.ExpenseRejected
		}
	}

	return domain.ExpenseApproved
}

// StatusService recomputes expense status on demand without persisting it.
type StatusService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseReader
	approvalRepo portsrepo.ApprovalReader
	resolver     portssvc.RuleResolverSvc
}

var _ portssvc.StatusSvc = (*StatusService)(nil)

// NewStatusService creates a new StatusService.
func NewStatusService(expenseRepo portsrepo.ExpenseReader, approvalRepo portsrepo.ApprovalReader, resolver portssvc.RuleResolverSvc) *StatusService {
	return &StatusService{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		resolver:     resolver,
	}
}

// Aggregate recomputes the status of an expense from its stored approvals.
func (s *StatusService) Aggregate(ctx context.Context, expenseID string) (domain.ExpenseStatus, error) {
	expense, err := s.loadExpense(ctx, expenseID)
	if err != nil {
		return "", err
	}
	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load approvals", slog.String("expense_id", expenseID))
		return "", err
	}
	return s.aggregate(ctx, expense, approvals)
}

// ExpenseStatusForUser recomputes the status for the expense owner or one of its approvers.
func (s *StatusService) ExpenseStatusForUser(ctx context.Context, expenseID, userID string) (domain.ExpenseStatus, error) {
	expense, err := s.loadExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return "", apperrors.ErrNotFoundOrForbidden
		}
		return "", err
	}
	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load approvals", slog.String("expense_id", expenseID))
		return "", err
	}

	allowed := expense.UserID == userID
	for _, a := range approvals {
		if a.ApproverID == userID {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", apperrors.ErrNotFoundOrForbidden
	}
	return s.aggregate(ctx, expense, approvals)
}

func (s *StatusService) loadExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("expense %s not found: %w", expenseID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to load expense", slog.String("expense_id", expenseID))
		return nil, err
	}
	return expense, nil
}

func (s *StatusService) aggregate(ctx context.Context, expense *domain.Expense, approvals []domain.Approval) (domain.ExpenseStatus, error) {
	if expense.Status == domain.ExpenseDraft {
		return domain.ExpenseDraft, nil
	}
	rules, err := s.resolver.Resolve(ctx, expense.CategoryID, expense.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return "", err
	}
	return AggregateExpenseStatus(approvals, rules), nil
}
