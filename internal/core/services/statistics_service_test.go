package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeApprovalStats(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty input gives zeroed stats", func(t *testing.T) {
		stats := services.ComputeApprovalStats(nil)
		assert.Equal(t, 0, stats.ProcessedCount)
		assert.Equal(t, 0, stats.PendingCount)
		assert.True(t, stats.AvgDecisionTimeHours.Equal(decimal.Zero))
	})

	t.Run("counts and average over decided approvals only", func(t *testing.T) {
		stats := services.ComputeApprovalStats([]domain.Approval{
			decidedApproval("a1", "u", domain.ApprovalApproved, base, 2*time.Hour),
			decidedApproval("a2", "u", domain.ApprovalRejected, base, 3*time.Hour+30*time.Minute),
			decidedApproval("a3", "u", domain.ApprovalApproved, base, 30*time.Minute),
			pendingApproval("p1", "u", base),
		})

		assert.Equal(t, 3, stats.ProcessedCount)
		assert.Equal(t, 1, stats.PendingCount)
		assert.Equal(t, 2, stats.ApprovedCount)
		assert.Equal(t, 1, stats.RejectedCount)
		assert.Equal(t, "2", stats.AvgDecisionTimeHours.String())
	})

	t.Run("average is rounded to two places", func(t *testing.T) {
		stats := services.ComputeApprovalStats([]domain.Approval{
			decidedApproval("a1", "u", domain.ApprovalApproved, base, 20*time.Minute),
		})
		assert.Equal(t, "0.33", stats.AvgDecisionTimeHours.StringFixed(2))
	})
}

func TestStatisticsService_Stats(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("window on creation time is inclusive", func(t *testing.T) {
		store := seedStore()
		require.NoError(t, insertApprovals(store,
			decidedApproval("before", "u", domain.ApprovalApproved, base.Add(-48*time.Hour), time.Hour),
			decidedApproval("at-start", "u", domain.ApprovalApproved, base, time.Hour),
			pendingApproval("inside", "u", base.Add(12*time.Hour)),
			decidedApproval("at-end", "u", domain.ApprovalRejected, base.Add(24*time.Hour), 3*time.Hour),
			pendingApproval("other-approver", "v", base.Add(time.Hour)),
		))
		svc := services.NewStatisticsService(store)
		from, to := base, base.Add(24*time.Hour)

		stats, err := svc.Stats(ctx, "u", &from, &to)

		require.NoError(t, err)
		assert.Equal(t, 2, stats.ProcessedCount)
		assert.Equal(t, 1, stats.PendingCount)
		assert.Equal(t, 1, stats.ApprovedCount)
		assert.Equal(t, 1, stats.RejectedCount)
		assert.Equal(t, "2", stats.AvgDecisionTimeHours.String())
	})

	t.Run("open window covers everything", func(t *testing.T) {
		store := seedStore()
		require.NoError(t, insertApprovals(store,
			decidedApproval("a1", "u", domain.ApprovalApproved, base.Add(-48*time.Hour), time.Hour),
			pendingApproval("p1", "u", base),
		))

		stats, err := services.NewStatisticsService(store).Stats(ctx, "u", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.ProcessedCount)
		assert.Equal(t, 1, stats.PendingCount)
	})

	t.Run("from after to is a validation error", func(t *testing.T) {
		reader := new(MockApprovalReader)
		from, to := base.Add(time.Hour), base

		_, err := services.NewStatisticsService(reader).Stats(ctx, "u", &from, &to)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		reader.AssertNotCalled(t, "ListByApproverCreatedBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		reader := new(MockApprovalReader)
		reader.On("ListByApproverCreatedBetween", mock.Anything, "u", (*time.Time)(nil), (*time.Time)(nil)).Return(nil, assert.AnError).Once()

		_, err := services.NewStatisticsService(reader).Stats(ctx, "u", nil, nil)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
