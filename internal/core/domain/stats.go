package domain

import "github.com/shopspring/decimal"

// ApprovalStats summarises one approver's workload over a creation-time window.
type ApprovalStats struct {
	ProcessedCount       int             `json:"processedCount"`
	PendingCount         int             `json:"pendingCount"`
	ApprovedCount        int             `json:"approvedCount"`
	RejectedCount        int             `json:"rejectedCount"`
	AvgDecisionTimeHours decimal.Decimal `json:"avgDecisionTimeHours"`
}
