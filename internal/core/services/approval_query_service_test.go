package services_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApprovalQueryService_ListPending(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := seedStore()
	require.NoError(t, insertApprovals(store,
		pendingApproval("p1", "u", base),
		pendingApproval("p2", "u", base.Add(time.Hour)),
		pendingApproval("p3", "u", base.Add(2*time.Hour)),
		decidedApproval("d1", "u", domain.ApprovalApproved, base, time.Hour),
		pendingApproval("other", "v", base),
	))
	svc := services.NewApprovalQueryService(store, store)

	page, err := svc.ListPending(ctx, "u", domain.PageRequest{Page: 1, Size: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "p3", page.Items[0].ApprovalID, "newest first")
	assert.Equal(t, "p2", page.Items[1].ApprovalID)

	page, err = svc.ListPending(ctx, "u", domain.PageRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p1", page.Items[0].ApprovalID)

	page, err = svc.ListPending(ctx, "u", domain.PageRequest{Page: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestApprovalQueryService_ListHistory(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := seedStore()
	require.NoError(t, insertApprovals(store,
		decidedApproval("early", "u", domain.ApprovalApproved, base, time.Hour),
		decidedApproval("late", "u", domain.ApprovalRejected, base, 5*time.Hour),
		pendingApproval("p1", "u", base),
	))

	page, err := services.NewApprovalQueryService(store, store).ListHistory(ctx, "u", domain.PageRequest{})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, domain.DefaultPageSize, page.Size)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "late", page.Items[0].ApprovalID, "most recently decided first")
}

func TestApprovalQueryService_ClampsPageSize(t *testing.T) {
	reader := new(MockApprovalReader)
	reader.On("ListPendingByApprover", mock.Anything, "u", domain.MaxPageSize, domain.MaxPageSize).
		Return([]domain.Approval{}, 0, nil).Once()

	page, err := services.NewApprovalQueryService(reader, nil).ListPending(context.Background(), "u", domain.PageRequest{Page: 2, Size: 1000})

	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, page.Size)
	reader.AssertExpectations(t)
}

func TestApprovalQueryService_HugePageDoesNotOverflow(t *testing.T) {
	store := seedStore()
	require.NoError(t, insertApprovals(store, pendingApproval("p1", "u", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))))
	svc := services.NewApprovalQueryService(store, store)

	var (
		page domain.ApprovalPage
		err  error
	)
	assert.NotPanics(t, func() {
		page, err = svc.ListPending(context.Background(), "u", domain.PageRequest{Page: math.MaxInt64 / 50, Size: 100})
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPage, page.Page)
	assert.Equal(t, 1, page.Total)
	assert.Empty(t, page.Items)
}

func TestApprovalQueryService_GetApproval(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := seedStore()
	addDraftExpense(store, "e1", base)
	a := pendingApproval("a1", "carol", base)
	a.ExpenseID = "e1"
	require.NoError(t, insertApprovals(store, a))
	orphan := pendingApproval("orphan", "carol", base)
	require.NoError(t, insertApprovals(store, orphan))
	svc := services.NewApprovalQueryService(store, store)

	t.Run("approver sees the approval with its expense", func(t *testing.T) {
		details, err := svc.GetApproval(ctx, "a1", "carol")
		require.NoError(t, err)
		assert.Equal(t, "a1", details.Approval.ApprovalID)
		assert.Equal(t, "e1", details.Expense.ExpenseID)
		assert.Equal(t, "Flight to Berlin", details.Expense.Description)
	})

	t.Run("expense owner sees the approval", func(t *testing.T) {
		details, err := svc.GetApproval(ctx, "a1", ownerID)
		require.NoError(t, err)
		assert.Equal(t, "carol", details.Approval.ApproverID)
	})

	t.Run("anyone else gets not found or forbidden", func(t *testing.T) {
		_, err := svc.GetApproval(ctx, "a1", "mallory")
		assert.ErrorIs(t, err, apperrors.ErrNotFoundOrForbidden)
	})

	t.Run("unknown approval gets not found or forbidden", func(t *testing.T) {
		_, err := svc.GetApproval(ctx, "missing", "carol")
		assert.ErrorIs(t, err, apperrors.ErrNotFoundOrForbidden)
	})

	t.Run("approval of a missing expense gets not found or forbidden", func(t *testing.T) {
		_, err := svc.GetApproval(ctx, "orphan", "carol")
		assert.ErrorIs(t, err, apperrors.ErrNotFoundOrForbidden)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		reader := new(MockApprovalReader)
		reader.On("FindApprovalByID", mock.Anything, "a1").Return(nil, assert.AnError).Once()

		_, err := services.NewApprovalQueryService(reader, store).GetApproval(ctx, "a1", "carol")

		assert.ErrorIs(t, err, assert.AnError)
		reader.AssertExpectations(t)
	})
}
