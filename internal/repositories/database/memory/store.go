// Package memory provides an in-process implementation of every repository port.
// It honours the same transactional contract as the Postgres repositories: writes made
// through a WorkflowTx are staged and applied atomically on commit, and
// LockExpenseForUpdate serialises transactions per expense.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
)

// Store holds all records in maps guarded by a single RWMutex.
type Store struct {
	mu         sync.RWMutex
	companies  map[string]domain.Company
	users      map[string]domain.User
	categories map[string]domain.Category
	rules      map[string]domain.ApprovalRule
	expenses   map[string]domain.Expense
	approvals  map[string]domain.Approval
	pairs      map[string]string // expense|approver -> approval ID
	audit      []domain.AuditEntry

	locksMu sync.Mutex
	locks   map[string]chan struct{}
}

var (
	_ portsrepo.RuleRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade  = (*Store)(nil)
	_ portsrepo.ApprovalRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade     = (*Store)(nil)
	_ portsrepo.AuditRepositoryFacade    = (*Store)(nil)
	_ portsrepo.TransactionManager       = (*Store)(nil)
)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		companies:  make(map[string]domain.Company),
		users:      make(map[string]domain.User),
		categories: make(map[string]domain.Category),
		rules:      make(map[string]domain.ApprovalRule),
		expenses:   make(map[string]domain.Expense),
		approvals:  make(map[string]domain.Approval),
		pairs:      make(map[string]string),
		locks:      make(map[string]chan struct{}),
	}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RuleRepo:     store,
		ExpenseRepo:  store,
		ApprovalRepo: store,
		UserRepo:     store,
		AuditRepo:    store,
		TxManager:    store,
	}
}

func pairKey(expenseID, approverID string) string {
	return expenseID + "|" + approverID
}

// --- seeding ---

// SaveCompany inserts or replaces a company.
func (s *Store) SaveCompany(c domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.CompanyID] = c
}

// SaveUser inserts or replaces a user.
func (s *Store) SaveUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
}

// SaveCategory inserts or replaces a category.
func (s *Store) SaveCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.CategoryID] = c
}

// SaveRule inserts or replaces an approval rule.
func (s *Store) SaveRule(r domain.ApprovalRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[r.RuleID] = r
}

// SaveExpense inserts or replaces an expense.
func (s *Store) SaveExpense(e domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ExpenseID] = e
}

// AuditEntries returns a copy of every recorded audit entry.
func (s *Store) AuditEntries() []domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

// --- identity ---

func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// --- rules ---

func (s *Store) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FindActiveRules(ctx context.Context, companyID, categoryID string) ([]domain.ApprovalRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ApprovalRule
	for _, r := range s.rules {
		if !r.IsActive || r.CompanyID != companyID {
			continue
		}
		if r.CategoryID != nil && *r.CategoryID != categoryID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// --- expenses ---

func (s *Store) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

// --- approvals ---

func (s *Store) FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.approvals[approvalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *Store) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterApprovals(func(a domain.Approval) bool { return a.ExpenseID == expenseID }, byCreated), nil
}

func (s *Store) ListPendingByApprover(ctx context.Context, approverID string, limit, offset int) ([]domain.Approval, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.filterApprovals(func(a domain.Approval) bool {
		return a.ApproverID == approverID && a.IsPending()
	}, byCreatedDesc)
	return paginate(all, limit, offset), len(all), nil
}

func (s *Store) ListDecidedByApprover(ctx context.Context, approverID string, limit, offset int) ([]domain.Approval, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.filterApprovals(func(a domain.Approval) bool {
		return a.ApproverID == approverID && !a.IsPending()
	}, byDecidedDesc)
	return paginate(all, limit, offset), len(all), nil
}

func (s *Store) FindPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterApprovals(func(a domain.Approval) bool {
		return a.IsPending() && a.CreatedAt.Before(cutoff)
	}, byCreated), nil
}

func (s *Store) ListByApproverCreatedBetween(ctx context.Context, approverID string, from, to *time.Time) ([]domain.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterApprovals(func(a domain.Approval) bool {
		if a.ApproverID != approverID {
			return false
		}
		if from != nil && a.CreatedAt.Before(*from) {
			return false
		}
		if to != nil && a.CreatedAt.After(*to) {
			return false
		}
		return true
	}, byCreated), nil
}

// --- audit ---

func (s *Store) RecordAudit(ctx context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// --- helpers ---

type approvalOrder func(a, b domain.Approval) bool

func byCreated(a, b domain.Approval) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ApprovalID < b.ApprovalID
}

func byCreatedDesc(a, b domain.Approval) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ApprovalID < b.ApprovalID
}

func byDecidedDesc(a, b domain.Approval) bool {
	var ta, tb time.Time
	if a.DecidedAt != nil {
		ta = *a.DecidedAt
	}
	if b.DecidedAt != nil {
		tb = *b.DecidedAt
	}
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.ApprovalID < b.ApprovalID
}

// filterApprovals must be called with s.mu held.
func (s *Store) filterApprovals(keep func(domain.Approval) bool, less approvalOrder) []domain.Approval {
	out := make([]domain.Approval, 0)
	for _, a := range s.approvals {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func paginate(all []domain.Approval, limit, offset int) []domain.Approval {
	if offset < 0 || offset >= len(all) {
		return []domain.Approval{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// --- expense locks ---

func (s *Store) expenseLock(expenseID string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	ch, ok := s.locks[expenseID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[expenseID] = ch
	}
	return ch
}

func (s *Store) acquire(ctx context.Context, expenseID string) error {
	select {
	case s.expenseLock(expenseID) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return apperrors.NewPersistenceError(fmt.Sprintf("waiting for expense lock %s", expenseID), ctx.Err())
	}
}

func (s *Store) release(expenseID string) {
	<-s.expenseLock(expenseID)
}
