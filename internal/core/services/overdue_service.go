package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
)

// DefaultOverdueThresholdDays is used when no positive threshold is supplied.
const DefaultOverdueThresholdDays = 3

// OverdueService finds stale pending approvals and reminds their approvers.
// It never mutates approvals; every sweep re-notifies whatever is still pending.
type OverdueService struct {
	BaseService
	approvalRepo     portsrepo.ApprovalReader
	expenseRepo      portsrepo.ExpenseReader
	notifier         portssvc.NotificationDispatcher
	defaultThreshold int
	now              func() time.Time
}

var _ portssvc.OverdueSvc = (*OverdueService)(nil)

// OverdueServiceOption is a functional option for configuring OverdueService
type OverdueServiceOption func(*OverdueService)

// WithDefaultThreshold sets the threshold used when callers pass a non-positive one.
func WithDefaultThreshold(days int) OverdueServiceOption {
	return func(s *OverdueService) {
		if days > 0 {
			s.defaultThreshold = days
		}
	}
}

// WithOverdueClock overrides the clock used to compute the cutoff.
func WithOverdueClock(now func() time.Time) OverdueServiceOption {
	return func(s *OverdueService) {
		s.now = now
	}
}

// NewOverdueService creates a new OverdueService.
func NewOverdueService(approvalRepo portsrepo.ApprovalReader, expenseRepo portsrepo.ExpenseReader, notifier portssvc.NotificationDispatcher, opts ...OverdueServiceOption) *OverdueService {
	s := &OverdueService{
		approvalRepo:     approvalRepo,
		expenseRepo:      expenseRepo,
		notifier:         notifier,
		defaultThreshold: DefaultOverdueThresholdDays,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepOverdue returns the approvals pending for longer than thresholdDays and notifies
// each approver.
func (s *OverdueService) SweepOverdue(ctx context.Context, thresholdDays int) ([]domain.Approval, error) {
	if thresholdDays <= 0 {
		thresholdDays = s.defaultThreshold
	}
	now := s.now().UTC()
	cutoff := now.Add(-time.Duration(thresholdDays) * 24 * time.Hour)

	overdue, err := s.approvalRepo.FindPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to query overdue approvals", slog.Time("cutoff", cutoff))
		return nil, err
	}

	descriptions := make(map[string]string)
	for _, a := range overdue {
		desc, ok := descriptions[a.ExpenseID]
		if !ok {
			if expense, err := s.expenseRepo.FindExpenseByID(ctx, a.ExpenseID); err == nil {
				desc = expense.Description
			} else {
				s.LogDebug(ctx, "Could not load expense for reminder", slog.String("expense_id", a.ExpenseID), slog.String("error", err.Error()))
			}
			descriptions[a.ExpenseID] = desc
		}

		message := "An expense approval is overdue"
		if desc != "" {
			message = fmt.Sprintf("Expense '%s' approval is overdue", desc)
		}
		n := domain.Notification{
			RecipientID: a.ApproverID,
			Title:       "Overdue Approval Required",
			Message:     message,
			Payload: domain.OverduePayload{
				ExpenseID:   a.ExpenseID,
				ApprovalID:  a.ApprovalID,
				DaysOverdue: a.DaysPending(now),
			},
			CreatedAt: now,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.LogWarn(ctx, "Failed to dispatch overdue reminder",
				slog.String("approval_id", a.ApprovalID),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Overdue sweep finished",
		slog.Int("threshold_days", thresholdDays),
		slog.Int("overdue_count", len(overdue)))
	return overdue, nil
}
