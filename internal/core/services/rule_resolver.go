package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
)

// RuleResolverService returns the approval rules that apply to an expense category.
type RuleResolverService struct {
	BaseService
	ruleRepo portsrepo.RuleRepositoryFacade
}

var _ portssvc.RuleResolverSvc = (*RuleResolverService)(nil)

// NewRuleResolverService creates a new RuleResolverService.
func NewRuleResolverService(ruleRepo portsrepo.RuleRepositoryFacade) *RuleResolverService {
	return &RuleResolverService{ruleRepo: ruleRepo}
}

// Resolve returns the active rules for categoryID within companyID.
//
// Company-wide rules (no category) apply in addition to category rules, except
// where a category rule already names the same approver; the category rule wins.
// The result is ordered by order index, ties broken by rule ID.
func (s *RuleResolverService) Resolve(ctx context.Context, categoryID, companyID string) ([]domain.ApprovalRule, error) {
	category, err := s.ruleRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load category", slog.String("category_id", categoryID))
		return nil, err
	}
	if category.CompanyID != companyID {
		return nil, fmt.Errorf("category %s does not belong to company %s: %w", categoryID, companyID, apperrors.ErrNotFound)
	}

	rules, err := s.ruleRepo.FindActiveRules(ctx, companyID, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load approval rules",
			slog.String("category_id", categoryID),
			slog.String("company_id", companyID))
		return nil, err
	}

	return mergeRules(rules, categoryID), nil
}

// mergeRules applies category precedence and ordering to raw rule rows.
func mergeRules(rules []domain.ApprovalRule, categoryID string) []domain.ApprovalRule {
	specific := make(map[string]bool)
	for _, r := range rules {
		if r.IsActive && r.CategoryID != nil && *r.CategoryID == categoryID {
			specific[r.ApproverID] = true
		}
	}

	resolved := make([]domain.ApprovalRule, 0, len(rules))
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		switch {
		case r.IsCompanyWide():
			if specific[r.ApproverID] {
				continue
			}
		case *r.CategoryID != categoryID:
			continue
		}
		resolved = append(resolved, r)
	}

	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].OrderIndex != resolved[j].OrderIndex {
			return resolved[i].OrderIndex < resolved[j].OrderIndex
		}
		return resolved[i].RuleID < resolved[j].RuleID
	})
	return resolved
}
