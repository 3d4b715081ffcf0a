package repositories

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// RuleReader defines read operations for approval rules.
type RuleReader interface {
	// FindActiveRules returns the active rules of a company that either target the
	// given category or have no category at all. Order is unspecified.
	FindActiveRules(ctx context.Context, companyID, categoryID string) ([]domain.ApprovalRule, error)
}

// CategoryReader defines read operations for expense categories.
type CategoryReader interface {
	// FindCategoryByID returns apperrors.ErrNotFound if the category does not exist.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
}

// RuleRepositoryFacade combines the rule and category readers.
type RuleRepositoryFacade interface {
	RuleReader
	CategoryReader
}
