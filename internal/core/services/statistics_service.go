package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// StatisticsService reports approval workload per approver.
type StatisticsService struct {
	BaseService
	approvalRepo portsrepo.ApprovalReader
}

var _ portssvc.StatisticsSvc = (*StatisticsService)(nil)

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(approvalRepo portsrepo.ApprovalReader) *StatisticsService {
	return &StatisticsService{approvalRepo: approvalRepo}
}

// Stats aggregates the approver's approvals created within [from, to].
func (s *StatisticsService) Stats(ctx context.Context, approverID string, from, to *time.Time) (domain.ApprovalStats, error) {
	if from != nil && to != nil && from.After(*to) {
		return domain.ApprovalStats{}, apperrors.NewValidationFailedError("start of range must not be after its end")
	}

	approvals, err := s.approvalRepo.ListByApproverCreatedBetween(ctx, approverID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load approvals for statistics", slog.String("approver_id", approverID))
		return domain.ApprovalStats{}, err
	}
	return ComputeApprovalStats(approvals), nil
}

// ComputeApprovalStats summarises approvals. The average decision time covers decided
// approvals only and is expressed in hours rounded to two places.
func ComputeApprovalStats(approvals []domain.Approval) domain.ApprovalStats {
	stats := domain.ApprovalStats{AvgDecisionTimeHours: decimal.Zero}

	total := decimal.Zero
	timed := 0
	for _, a := range approvals {
		switch a.Status {
		case domain.ApprovalPending:
			stats.PendingCount++
		case domain.ApprovalApproved:
			stats.ApprovedCount++
		case domain.ApprovalRejected:
			stats.RejectedCount++
		}
		if d, ok := a.DecisionDuration(); ok {
			total = total.Add(decimal.NewFromInt(d.Milliseconds()))
			timed++
		}
	}
	stats.ProcessedCount = stats.ApprovedCount + stats.RejectedCount

	if timed > 0 {
		msPerHour := decimal.NewFromInt(int64(time.Hour / time.Millisecond))
		stats.AvgDecisionTimeHours = total.Div(decimal.NewFromInt(int64(timed))).Div(msPerHour).Round(2)
	}
	return stats
}
