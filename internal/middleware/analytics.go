package middleware

import (
	"net/http"

	"github.com/SscSPs/expense_approvals/internal/analytics"
	"github.com/gin-gonic/gin"
)

// RouteEvents maps "METHOD /full/route/path" to the usage event name emitted for it.
type RouteEvents map[string]string

// DefaultRouteEvents names the usage events of the approvals API.
var DefaultRouteEvents = RouteEvents{
	"POST /api/v1/expenses/:expenseID/submit":    "expense_submitted",
	"POST /api/v1/approvals/:approvalID/approve": "approval_approved",
	"POST /api/v1/approvals/:approvalID/reject":  "approval_rejected",
	"POST /api/v1/approvals/bulk-approve":        "approvals_bulk_approved",
	"POST /api/v1/approvals/bulk-reject":         "approvals_bulk_rejected",
	"GET /api/v1/approvals/:approvalID":          "approval_viewed",
	"GET /api/v1/approvals/pending":              "approvals_pending_viewed",
	"GET /api/v1/approvals/history":              "approvals_history_viewed",
	"GET /api/v1/approvals/stats":                "approvals_stats_viewed",
	"POST /api/v1/admin/approvals/sweep-overdue": "overdue_sweep_triggered",
}

// AnalyticsMiddleware reports successful requests on mapped routes to tracker.
// Requests without an authenticated user or with an error status are not reported.
func AnalyticsMiddleware(tracker analytics.Tracker, events RouteEvents) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if tracker == nil || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, ok := events[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		for _, p := range c.Params {
			props[p.Key] = p.Value
		}
		tracker.Enqueue(userID, event, props)
	}
}
