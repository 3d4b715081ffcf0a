package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
)

// MaxCommentLength is the longest comment an approver may attach to a decision.
const MaxCommentLength = 2000

// DecisionService applies approver decisions and keeps the expense status current.
type DecisionService struct {
	BaseService
	resolver  portssvc.RuleResolverSvc
	identity  portssvc.IdentityProvider
	txManager portsrepo.TransactionManager
	notifier  portssvc.NotificationDispatcher
	audit     portssvc.AuditSink
	now       func() time.Time
}

var _ portssvc.DecisionSvcFacade = (*DecisionService)(nil)

// DecisionServiceOption is a functional option for configuring DecisionService
type DecisionServiceOption func(*DecisionService)

// WithDecisionClock overrides the clock used for decision timestamps.
func WithDecisionClock(now func() time.Time) DecisionServiceOption {
	return func(s *DecisionService) {
		s.now = now
	}
}

// NewDecisionService creates a new DecisionService.
func NewDecisionService(
	resolver portssvc.RuleResolverSvc,
	identity portssvc.IdentityProvider,
	txManager portsrepo.TransactionManager,
	notifier portssvc.NotificationDispatcher,
	audit portssvc.AuditSink,
	opts ...DecisionServiceOption,
) *DecisionService {
	s := &DecisionService{
		resolver:  resolver,
		identity:  identity,
		txManager: txManager,
		notifier:  notifier,
		audit:     audit,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Approve records an approval decision.
func (s *DecisionService) Approve(ctx context.Context, approvalID, approverID string, comments *string) (*domain.DecisionOutcome, error) {
	return s.Decide(ctx, approvalID, approverID, domain.ApprovalApproved, comments)
}

// Reject records a rejection decision.
func (s *DecisionService) Reject(ctx context.Context, approvalID, approverID string, comments *string) (*domain.DecisionOutcome, error) {
	return s.Decide(ctx, approvalID, approverID, domain.ApprovalRejected, comments)
}

// Decide moves the approver's pending approval to decision and recomputes the expense status.
//
// The conditional approval update, the aggregation and the expense status write run in
// one transaction holding the expense lock, so concurrent decisions on the same expense
// are applied one after the other. The owner notification and audit entry are emitted
// after commit and never fail the call.
func (s *DecisionService) Decide(ctx context.Context, approvalID, approverID string, decision domain.ApprovalStatus, comments *string) (*domain.DecisionOutcome, error) {
	if !decision.IsDecision() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid decision %q: must be approved or rejected", decision))
	}
	comments, err := normalizeComments(comments)
	if err != nil {
		return nil, err
	}
	if approvalID == "" || approverID == "" {
		return nil, apperrors.ErrNotFoundOrForbidden
	}

	logger := s.GetLogger(ctx).With(
		slog.String("approval_id", approvalID),
		slog.String("approver_id", approverID),
		slog.String("decision", string(decision)),
	)

	var (
		outcome domain.DecisionOutcome
		expense domain.Expense
	)
	decidedAt := s.now().UTC()

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		current, err := tx.FindApprovalForApprover(ctx, approvalID, approverID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNotFoundOrForbidden
			}
			return err
		}

		locked, err := tx.LockExpenseForUpdate(ctx, current.ExpenseID)
		if err != nil {
			return err
		}

		updated, err := tx.DecidePending(ctx, approvalID, approverID, decision, comments, decidedAt)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return s.classifyMissedUpdate(ctx, tx, approvalID, approverID)
			}
			return err
		}

		approvals, err := tx.FindApprovalsByExpenseID(ctx, locked.ExpenseID)
		if err != nil {
			return err
		}
		rules, err := s.resolver.Resolve(ctx, locked.CategoryID, locked.CompanyID)
		if err != nil {
			return err
		}

		status := AggregateExpenseStatus(approvals, rules)
		if err := tx.UpdateExpenseStatus(ctx, locked.ExpenseID, status, nil, decidedAt); err != nil {
			return err
		}

		outcome = domain.DecisionOutcome{Approval: *updated, ExpenseStatus: status}
		expense = *locked
		expense.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFoundOrForbidden) || errors.Is(err, apperrors.ErrAlreadyDecided) {
			logger.Warn("Decision refused", slog.String("reason", apperrors.ReasonCode(err)))
		} else {
			logger.Error("Failed to process decision", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Decision recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("expense_status", string(outcome.ExpenseStatus)))

	s.recordDecisionAudit(ctx, expense, outcome.Approval)
	s.notifyOwner(ctx, expense, outcome.Approval)

	return &outcome, nil
}

// DecideBulk applies decision to every listed approval. Each approval is decided in its
// own transaction, so a failure on one leaves the others untouched.
func (s *DecisionService) DecideBulk(ctx context.Context, approvalIDs []string, approverID string, decision domain.ApprovalStatus, comments *string) (domain.BulkDecisionResult, error) {
	if !decision.IsDecision() {
		return domain.BulkDecisionResult{}, apperrors.NewValidationFailedError(fmt.Sprintf("invalid decision %q: must be approved or rejected", decision))
	}
	if len(approvalIDs) == 0 {
		return domain.BulkDecisionResult{}, apperrors.NewValidationFailedError("at least one approval ID is required")
	}
	if len(approvalIDs) > domain.MaxBulkDecisions {
		return domain.BulkDecisionResult{}, apperrors.NewValidationFailedError(fmt.Sprintf("at most %d approvals may be decided at once", domain.MaxBulkDecisions))
	}
	if _, err := normalizeComments(comments); err != nil {
		return domain.BulkDecisionResult{}, err
	}

	result := domain.BulkDecisionResult{
		Decision: decision,
		Items:    make([]domain.BulkDecisionItem, 0, len(approvalIDs)),
	}
	for _, id := range approvalIDs {
		outcome, err := s.Decide(ctx, id, approverID, decision, comments)
		result.Items = append(result.Items, domain.BulkDecisionItem{ApprovalID: id, Outcome: outcome, Err: err})
		if err != nil {
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	s.LogInfo(ctx, "Bulk decision completed",
		slog.String("decision", string(decision)),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("total", len(approvalIDs)))
	return result, nil
}

// classifyMissedUpdate tells apart an approval that is gone or not owned from one that
// was already decided, after the conditional update matched no row.
func (s *DecisionService) classifyMissedUpdate(ctx context.Context, tx portsrepo.WorkflowTx, approvalID, approverID string) error {
	current, err := tx.FindApprovalForApprover(ctx, approvalID, approverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFoundOrForbidden
		}
		return err
	}
	if !current.IsPending() {
		return apperrors.ErrAlreadyDecided
	}
	return apperrors.NewInternalError("approval update matched no row while still pending")
}

func (s *DecisionService) recordDecisionAudit(ctx context.Context, expense domain.Expense, approval domain.Approval) {
	action := domain.AuditApprove
	if approval.Status == domain.ApprovalRejected {
		action = domain.AuditReject
	}
	entry := domain.AuditEntry{
		ActorID:      approval.ApproverID,
		CompanyID:    expense.CompanyID,
		Action:       action,
		ResourceType: "approval",
		ResourceID:   approval.ApprovalID,
		OldValues:    domain.ApprovalAuditValues{Status: domain.ApprovalPending},
		NewValues: domain.ApprovalAuditValues{
			Status:    approval.Status,
			Comments:  approval.Comments,
			DecidedAt: approval.DecidedAt,
		},
		RecordedAt: s.now().UTC(),
	}
	if err := s.audit.RecordAudit(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record decision audit", slog.String("approval_id", approval.ApprovalID))
	}
}

func (s *DecisionService) notifyOwner(ctx context.Context, expense domain.Expense, approval domain.Approval) {
	approverName := approval.ApproverID
	if approver, err := s.identity.GetUser(ctx, approval.ApproverID); err == nil {
		approverName = approver.DisplayName()
	} else {
		s.LogDebug(ctx, "Could not resolve approver name", slog.String("error", err.Error()))
	}

	title := "Expense Approved"
	if approval.Status == domain.ApprovalRejected {
		title = "Expense Rejected"
	}
	n := domain.Notification{
		RecipientID: expense.UserID,
		Title:       title,
		Message:     fmt.Sprintf("Your expense '%s' has been %s by %s", expense.Description, approval.Status, approverName),
		Payload: domain.DecisionPayload{
			ExpenseID:     expense.ExpenseID,
			ApprovalID:    approval.ApprovalID,
			ApproverID:    approval.ApproverID,
			ApproverName:  approverName,
			Decision:      approval.Status,
			Comments:      approval.Comments,
			ExpenseStatus: expense.Status,
		},
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.LogWarn(ctx, "Failed to dispatch decision notification",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("error", err.Error()))
	}
}

// normalizeComments trims comments, maps blank to nil and enforces the length limit.
func normalizeComments(comments *string) (*string, error) {
	if comments == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*comments)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("comments must be at most %d characters", MaxCommentLength))
	}
	return &trimmed, nil
}
