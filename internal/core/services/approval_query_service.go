package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
)

// ApprovalQueryService serves single approvals and paged approval listings.
type ApprovalQueryService struct {
	BaseService
	approvalRepo portsrepo.ApprovalReader
	expenseRepo  portsrepo.ExpenseReader
}

var _ portssvc.ApprovalQuerySvc = (*ApprovalQueryService)(nil)

// NewApprovalQueryService creates a new ApprovalQueryService.
func NewApprovalQueryService(approvalRepo portsrepo.ApprovalReader, expenseRepo portsrepo.ExpenseReader) *ApprovalQueryService {
	return &ApprovalQueryService{approvalRepo: approvalRepo, expenseRepo: expenseRepo}
}

// GetApproval returns an approval with its expense to the approver or the expense owner.
// Unknown approvals and approvals the user may not see are indistinguishable.
func (s *ApprovalQueryService) GetApproval(ctx context.Context, approvalID, userID string) (*domain.ApprovalDetails, error) {
	if approvalID == "" || userID == "" {
		return nil, apperrors.ErrNotFoundOrForbidden
	}
	approval, err := s.approvalRepo.FindApprovalByID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFoundOrForbidden
		}
		s.LogError(ctx, err, "Failed to load approval", slog.String("approval_id", approvalID))
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, approval.ExpenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFoundOrForbidden
		}
		s.LogError(ctx, err, "Failed to load expense", slog.String("expense_id", approval.ExpenseID))
		return nil, err
	}
	if approval.ApproverID != userID && expense.UserID != userID {
		s.LogWarn(ctx, "Approval access denied", slog.String("approval_id", approvalID))
		return nil, apperrors.ErrNotFoundOrForbidden
	}
	return &domain.ApprovalDetails{Approval: *approval, Expense: *expense}, nil
}

// ListPending returns the approver's pending approvals, newest first.
func (s *ApprovalQueryService) ListPending(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error) {
	page = page.Normalize()
	items, total, err := s.approvalRepo.ListPendingByApprover(ctx, approverID, page.Size, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending approvals", slog.String("approver_id", approverID))
		return domain.ApprovalPage{}, err
	}
	return domain.NewApprovalPage(items, total, page), nil
}

// ListHistory returns the approver's decided approvals, most recently decided first.
func (s *ApprovalQueryService) ListHistory(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error) {
	page = page.Normalize()
	items, total, err := s.approvalRepo.ListDecidedByApprover(ctx, approverID, page.Size, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list approval history", slog.String("approver_id", approverID))
		return domain.ApprovalPage{}, err
	}
	return domain.NewApprovalPage(items, total, page), nil
}
