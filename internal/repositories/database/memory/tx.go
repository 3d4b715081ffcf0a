package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
)

// memTx stages writes until commit. Reads see staged writes first.
type memTx struct {
	store     *Store
	held      map[string]bool
	approvals map[string]domain.Approval
	inserted  []string
	expenses  map[string]domain.Expense
}

var _ portsrepo.WorkflowTx = (*memTx)(nil)

// WithinTx runs fn in a transaction and applies its writes only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.WorkflowTx) error) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewPersistenceError("transaction not started", err)
	}
	tx := &memTx{
		store:     s,
		held:      make(map[string]bool),
		approvals: make(map[string]domain.Approval),
		expenses:  make(map[string]domain.Expense),
	}
	defer tx.releaseLocks()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

func (t *memTx) releaseLocks() {
	for id := range t.held {
		t.store.release(id)
	}
}

func (t *memTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range t.inserted {
		a := t.approvals[id]
		if _, exists := s.pairs[pairKey(a.ExpenseID, a.ApproverID)]; exists {
			return duplicateApproval(a)
		}
	}
	for id, a := range t.approvals {
		s.approvals[id] = a
		s.pairs[pairKey(a.ExpenseID, a.ApproverID)] = id
	}
	for id, e := range t.expenses {
		s.expenses[id] = e
	}
	return nil
}

func duplicateApproval(a domain.Approval) error {
	return fmt.Errorf("approval for expense %s and approver %s: %w", a.ExpenseID, a.ApproverID, apperrors.ErrDuplicate)
}

func (t *memTx) expense(expenseID string) (domain.Expense, bool) {
	if e, ok := t.expenses[expenseID]; ok {
		return e, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	e, ok := t.store.expenses[expenseID]
	return e, ok
}

func (t *memTx) approval(approvalID string) (domain.Approval, bool) {
	if a, ok := t.approvals[approvalID]; ok {
		return a, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	a, ok := t.store.approvals[approvalID]
	return a, ok
}

func (t *memTx) LockExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if !t.held[expenseID] {
		if err := t.store.acquire(ctx, expenseID); err != nil {
			return nil, err
		}
		t.held[expenseID] = true
	}
	e, ok := t.expense(expenseID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (t *memTx) UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus, submittedAt *time.Time, updatedAt time.Time) error {
	e, ok := t.expense(expenseID)
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = status
	if submittedAt != nil {
		at := *submittedAt
		e.SubmittedAt = &at
	}
	e.UpdatedAt = updatedAt
	t.expenses[expenseID] = e
	return nil
}

func (t *memTx) InsertApprovals(ctx context.Context, approvals []domain.Approval) error {
	staged := make(map[string]bool, len(t.inserted))
	for _, id := range t.inserted {
		a := t.approvals[id]
		staged[pairKey(a.ExpenseID, a.ApproverID)] = true
	}

	t.store.mu.RLock()
	for _, a := range approvals {
		key := pairKey(a.ExpenseID, a.ApproverID)
		_, exists := t.store.pairs[key]
		_, idTaken := t.store.approvals[a.ApprovalID]
		if exists || staged[key] || idTaken {
			t.store.mu.RUnlock()
			return duplicateApproval(a)
		}
		staged[key] = true
	}
	t.store.mu.RUnlock()

	for _, a := range approvals {
		t.approvals[a.ApprovalID] = a
		t.inserted = append(t.inserted, a.ApprovalID)
	}
	return nil
}

func (t *memTx) DecidePending(ctx context.Context, approvalID, approverID string, status domain.ApprovalStatus, comments *string, decidedAt time.Time) (*domain.Approval, error) {
	a, ok := t.approval(approvalID)
	if !ok || a.ApproverID != approverID || !a.CanTransitionTo(status) {
		return nil, apperrors.ErrNotFound
	}
	at := decidedAt
	a.Status = status
	a.Comments = comments
	a.DecidedAt = &at
	a.UpdatedAt = decidedAt
	t.approvals[approvalID] = a
	return &a, nil
}

func (t *memTx) FindApprovalForApprover(ctx context.Context, approvalID, approverID string) (*domain.Approval, error) {
	a, ok := t.approval(approvalID)
	if !ok || a.ApproverID != approverID {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (t *memTx) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	t.store.mu.RLock()
	merged := make(map[string]domain.Approval)
	for id, a := range t.store.approvals {
		if a.ExpenseID == expenseID {
			merged[id] = a
		}
	}
	t.store.mu.RUnlock()
	for id, a := range t.approvals {
		if a.ExpenseID == expenseID {
			merged[id] = a
		}
	}

	out := make([]domain.Approval, 0, len(merged))
	for _, a := range merged {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return byCreated(out[i], out[j]) })
	return out, nil
}
