package mapping

import (
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
)

// ToModelApproval converts a domain Approval to a model Approval
func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID: d.ApprovalID,
		ExpenseID:  d.ExpenseID,
		ApproverID: d.ApproverID,
		Status:     string(d.Status),
		Comments:   d.Comments,
		DecidedAt:  d.DecidedAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainApproval converts a model Approval to a domain Approval
func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID: m.ApprovalID,
		ExpenseID:  m.ExpenseID,
		ApproverID: m.ApproverID,
		Status:     domain.ApprovalStatus(m.Status),
		Comments:   m.Comments,
		DecidedAt:  m.DecidedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToDomainApprovalSlice converts a slice of model Approvals
func ToDomainApprovalSlice(ms []models.Approval) []domain.Approval {
	ds := make([]domain.Approval, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApproval(m)
	}
	return ds
}
