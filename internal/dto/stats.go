package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateOnlyLayout = "2006-01-02"

// StatsParams is the optional creation-time window of the stats endpoint.
// Bounds are RFC3339 timestamps or YYYY-MM-DD dates.
type StatsParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// StatsResponse defines the statistics returned for an approver.
type StatsResponse struct {
	ProcessedCount       int             `json:"processedCount"`
	PendingCount         int             `json:"pendingCount"`
	ApprovedCount        int             `json:"approvedCount"`
	RejectedCount        int             `json:"rejectedCount"`
	AvgDecisionTimeHours decimal.Decimal `json:"avgDecisionTimeHours"`
	From                 *time.Time      `json:"from,omitempty"`
	To                   *time.Time      `json:"to,omitempty"`
}

// Window parses both bounds. A date-only To covers the whole day.
func (p StatsParams) Window() (from, to *time.Time, err error) {
	if from, err = parseBound(p.From, false); err != nil {
		return nil, nil, fmt.Errorf("invalid from: %w", err)
	}
	if to, err = parseBound(p.To, true); err != nil {
		return nil, nil, fmt.Errorf("invalid to: %w", err)
	}
	return from, to, nil
}

func parseBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%q is neither RFC3339 nor YYYY-MM-DD", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ToStatsResponse converts domain statistics and echoes the window.
func ToStatsResponse(s domain.ApprovalStats, from, to *time.Time) StatsResponse {
	return StatsResponse{
		ProcessedCount:       s.ProcessedCount,
		PendingCount:         s.PendingCount,
		ApprovedCount:        s.ApprovedCount,
		RejectedCount:        s.RejectedCount,
		AvgDecisionTimeHours: s.AvgDecisionTimeHours,
		From:                 from,
		To:                   to,
	}
}
