package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// DecisionRequest is the optional body of the approve and reject endpoints.
type DecisionRequest struct {
	Comments *string `json:"comments" binding:"omitempty,max=2000"`
}

// ApprovalResponse defines the data returned for one approval.
type ApprovalResponse struct {
	ApprovalID string                `json:"approvalID"`
	ExpenseID  string                `json:"expenseID"`
	ApproverID string                `json:"approverID"`
	Status     domain.ApprovalStatus `json:"status"`
	Comments   *string               `json:"comments,omitempty"`
	DecidedAt  *time.Time            `json:"decidedAt,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// DecisionResponse is returned after an approval was decided.
type DecisionResponse struct {
	Approval      ApprovalResponse     `json:"approval"`
	ExpenseStatus domain.ExpenseStatus `json:"expenseStatus"`
}

// BulkDecisionRequest is the body of the bulk approve and reject endpoints.
type BulkDecisionRequest struct {
	ApprovalIDs []string `json:"approvalIDs" binding:"required,min=1,max=100,dive,required"`
	Comments    *string  `json:"comments" binding:"omitempty,max=2000"`
}

// BulkDecisionItemResponse is the result for one approval of a bulk decision.
// Status is the decision taken, or "failed" with the error fields set.
type BulkDecisionItemResponse struct {
	ApprovalID    string               `json:"approvalID"`
	Status        string               `json:"status"`
	ExpenseStatus domain.ExpenseStatus `json:"expenseStatus,omitempty"`
	Error         string               `json:"error,omitempty"`
	Code          string               `json:"code,omitempty"`
	Retryable     bool                 `json:"retryable,omitempty"`
}

// BulkDecisionResponse summarises a bulk decision.
type BulkDecisionResponse struct {
	Message    string                     `json:"message"`
	Total      int                        `json:"total"`
	Successful int                        `json:"successful"`
	Failed     int                        `json:"failed"`
	Results    []BulkDecisionItemResponse `json:"results"`
}

// ApprovalDetailsResponse is one approval with the expense it belongs to.
type ApprovalDetailsResponse struct {
	Approval ApprovalResponse       `json:"approval"`
	Expense  ExpenseSummaryResponse `json:"expense"`
}

// ListApprovalsParams are the paging query parameters of the approval listings.
type ListApprovalsParams struct {
	Page int `form:"page" binding:"omitempty,min=1,max=100000"`
	Size int `form:"size" binding:"omitempty,min=1"`
}

// ListApprovalsResponse is one page of approvals.
type ListApprovalsResponse struct {
	Items []ApprovalResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
	Pages int                `json:"pages"`
}

// ToPageRequest converts the query parameters; out of range sizes are clamped later.
func (p ListApprovalsParams) ToPageRequest() domain.PageRequest {
	return domain.PageRequest{Page: p.Page, Size: p.Size}
}

// ToApprovalResponse converts a domain.Approval to an ApprovalResponse.
func ToApprovalResponse(a domain.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID: a.ApprovalID,
		ExpenseID:  a.ExpenseID,
		ApproverID: a.ApproverID,
		Status:     a.Status,
		Comments:   a.Comments,
		DecidedAt:  a.DecidedAt,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToApprovalResponses converts a slice, never returning nil.
func ToApprovalResponses(approvals []domain.Approval) []ApprovalResponse {
	out := make([]ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		out = append(out, ToApprovalResponse(a))
	}
	return out
}

// ToDecisionResponse converts a decision outcome.
func ToDecisionResponse(o domain.DecisionOutcome) DecisionResponse {
	return DecisionResponse{
		Approval:      ToApprovalResponse(o.Approval),
		ExpenseStatus: o.ExpenseStatus,
	}
}

// ToListApprovalsResponse converts a page of approvals.
func ToListApprovalsResponse(p domain.ApprovalPage) ListApprovalsResponse {
	return ListApprovalsResponse{
		Items: ToApprovalResponses(p.Items),
		Total: p.Total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: p.Pages,
	}
}

// ToApprovalDetailsResponse converts an approval and its expense.
func ToApprovalDetailsResponse(d domain.ApprovalDetails) ApprovalDetailsResponse {
	return ApprovalDetailsResponse{
		Approval: ToApprovalResponse(d.Approval),
		Expense:  ToExpenseSummaryResponse(d.Expense),
	}
}

// ToBulkDecisionResponse converts a bulk result. describe renders the error of a failed item.
func ToBulkDecisionResponse(r domain.BulkDecisionResult, describe func(error) ErrorResponse) BulkDecisionResponse {
	results := make([]BulkDecisionItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Err != nil {
			body := describe(item.Err)
			results = append(results, BulkDecisionItemResponse{
				ApprovalID: item.ApprovalID,
				Status:     "failed",
				Error:      body.Error,
				Code:       body.Code,
				Retryable:  body.Retryable,
			})
			continue
		}
		results = append(results, BulkDecisionItemResponse{
			ApprovalID:    item.ApprovalID,
			Status:        string(item.Outcome.Approval.Status),
			ExpenseStatus: item.Outcome.ExpenseStatus,
		})
	}
	total := len(r.Items)
	return BulkDecisionResponse{
		Message:    fmt.Sprintf("Bulk %s completed: %d/%d successful", bulkVerb(r.Decision), r.Succeeded, total),
		Total:      total,
		Successful: r.Succeeded,
		Failed:     r.Failed,
		Results:    results,
	}
}

func bulkVerb(decision domain.ApprovalStatus) string {
	if decision == domain.ApprovalRejected {
		return "rejection"
	}
	return "approval"
}
