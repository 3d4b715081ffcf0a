package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
)

type adminHandler struct {
	overdueService portssvc.OverdueSvc
}

// RegisterAdminRoutes registers operational routes behind the given guard middleware.
func RegisterAdminRoutes(rg *gin.RouterGroup, overdueService portssvc.OverdueSvc, guard ...gin.HandlerFunc) {
	h := &adminHandler{overdueService: overdueService}

	admin := rg.Group("/admin", guard...)
	admin.POST("/approvals/sweep-overdue", h.sweepOverdue)
}

// sweepOverdue godoc
// @Summary Run the overdue approval sweep
// @Description Notifies approvers of approvals pending longer than the threshold. Uses the configured threshold when omitted.
// @Tags admin
// @Produce json
// @Param thresholdDays query int false "Days an approval may stay pending"
// @Success 200 {object} dto.SweepOverdueResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} map[string]string "Caller lacks an operator role"
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/approvals/sweep-overdue [post]
func (h *adminHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUserID(c); !ok {
		return
	}

	var params dto.SweepOverdueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	overdue, err := h.overdueService.SweepOverdue(c.Request.Context(), params.ThresholdDays)
	if err != nil {
		respondWithError(c, err, "Failed to sweep overdue approvals")
		return
	}

	logger.Info("Overdue sweep triggered", slog.Int("overdue_count", len(overdue)))
	c.JSON(http.StatusOK, dto.ToSweepOverdueResponse(overdue))
}
