package dto

import "github.com/SscSPs/expense_approvals/internal/core/domain"

// SweepOverdueParams optionally overrides the configured overdue threshold.
type SweepOverdueParams struct {
	ThresholdDays int `form:"thresholdDays" binding:"omitempty,min=1,max=365"`
}

// SweepOverdueResponse lists the approvals whose approvers were reminded.
type SweepOverdueResponse struct {
	Count     int                `json:"count"`
	Approvals []ApprovalResponse `json:"approvals"`
}

// ToSweepOverdueResponse converts the sweep result.
func ToSweepOverdueResponse(approvals []domain.Approval) SweepOverdueResponse {
	return SweepOverdueResponse{
		Count:     len(approvals),
		Approvals: ToApprovalResponses(approvals),
	}
}
