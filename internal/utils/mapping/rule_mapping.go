package mapping

import (
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
)

// ToDomainApprovalRule converts a model ApprovalRule to a domain ApprovalRule
func ToDomainApprovalRule(m models.ApprovalRule) domain.ApprovalRule {
	return domain.ApprovalRule{
		RuleID:       m.RuleID,
		CompanyID:    m.CompanyID,
		CategoryID:   m.CategoryID,
		ApproverID:   m.ApproverID,
		ApprovalType: domain.ApprovalType(m.ApprovalType),
		IsSequential: m.IsSequential,
		OrderIndex:   m.OrderIndex,
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainApprovalRuleSlice converts a slice of model ApprovalRules
func ToDomainApprovalRuleSlice(ms []models.ApprovalRule) []domain.ApprovalRule {
	ds := make([]domain.ApprovalRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalRule(m)
	}
	return ds
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		CompanyID:  m.CompanyID,
		Name:       m.Name,
		IsActive:   m.IsActive,
	}
}
