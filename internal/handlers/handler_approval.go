package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalHandler handles HTTP requests of approvers.
type approvalHandler struct {
	decisionService portssvc.DecisionSvcFacade
	queryService    portssvc.ApprovalQuerySvc
	statsService    portssvc.StatisticsSvc
}

// newApprovalHandler creates a new approvalHandler.
func newApprovalHandler(ds portssvc.DecisionSvcFacade, qs portssvc.ApprovalQuerySvc, ss portssvc.StatisticsSvc) *approvalHandler {
	return &approvalHandler{
		decisionService: ds,
		queryService:    qs,
		statsService:    ss,
	}
}

// RegisterApprovalRoutes registers the approver routes. decisionMiddleware runs
// only in front of the approve and reject endpoints.
func RegisterApprovalRoutes(
	rg *gin.RouterGroup,
	decisionService portssvc.DecisionSvcFacade,
	queryService portssvc.ApprovalQuerySvc,
	statsService portssvc.StatisticsSvc,
	decisionMiddleware ...gin.HandlerFunc,
) {
	h := newApprovalHandler(decisionService, queryService, statsService)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/pending", h.listPending)
		approvals.GET("/history", h.listHistory)
		approvals.GET("/stats", h.getStats)
		approvals.GET("/:approvalID", h.getApproval)

		bulk := approvals.Group("", decisionMiddleware...)
		bulk.POST("/bulk-approve", h.bulkApprove)
		bulk.POST("/bulk-reject", h.bulkReject)

		decisions := approvals.Group("/:approvalID", decisionMiddleware...)
		decisions.POST("/approve", h.approve)
		decisions.POST("/reject", h.reject)
	}
}

// listPending godoc
// @Summary List pending approvals
// @Description Lists the caller's approvals awaiting a decision, newest first
// @Tags approvals
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(50)
// @Success 200 {object} dto.ListApprovalsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /approvals/pending [get]
func (h *approvalHandler) listPending(c *gin.Context) {
	h.list(c, "pending", h.queryService.ListPending)
}

// listHistory godoc
// @Summary List decided approvals
// @Description Lists the caller's approved and rejected approvals, most recently decided first
// @Tags approvals
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(50)
// @Success 200 {object} dto.ListApprovalsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /approvals/history [get]
func (h *approvalHandler) listHistory(c *gin.Context) {
	h.list(c, "history", h.queryService.ListHistory)
}

type listFunc func(ctx context.Context, approverID string, page domain.PageRequest) (domain.ApprovalPage, error)

func (h *approvalHandler) list(c *gin.Context, kind string, fetch listFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approverID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListApprovalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	page, err := fetch(c.Request.Context(), approverID, params.ToPageRequest())
	if err != nil {
		respondWithError(c, err, "Failed to list "+kind+" approvals")
		return
	}

	logger.Info("Approvals listed", slog.String("kind", kind), slog.Int("count", len(page.Items)), slog.Int("total", page.Total))
	c.JSON(http.StatusOK, dto.ToListApprovalsResponse(page))
}

// getStats godoc
// @Summary Get approver statistics
// @Description Counts and average decision time of the caller's approvals created within the window
// @Tags approvals
// @Produce json
// @Param from query string false "Window start (RFC3339 or YYYY-MM-DD, inclusive)"
// @Param to query string false "Window end (RFC3339 or YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.StatsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /approvals/stats [get]
func (h *approvalHandler) getStats(c *gin.Context) {
	approverID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.StatsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}
	from, to, err := params.Window()
	if err != nil {
		respondWithBindError(c, err)
		return
	}

	stats, err := h.statsService.Stats(c.Request.Context(), approverID, from, to)
	if err != nil {
		respondWithError(c, err, "Failed to compute approval statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsResponse(stats, from, to))
}

// getApproval godoc
// @Summary Get an approval
// @Description Returns an approval and its expense to the approver or the expense owner
// @Tags approvals
// @Produce json
// @Param approvalID path string true "Approval ID"
// @Success 200 {object} dto.ApprovalDetailsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Approval not found or not visible to the caller"
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /approvals/{approvalID} [get]
func (h *approvalHandler) getApproval(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	details, err := h.queryService.GetApproval(c.Request.Context(), c.Param("approvalID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to get approval")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalDetailsResponse(*details))
}

// approve godoc
// @Summary Approve an approval
// @Description Records the caller's approval and returns the recomputed expense status
// @Tags approvals
// @Accept json
// @Produce json
// @Param approvalID path string true "Approval ID"
// @Param decision body dto.DecisionRequest false "Optional comments"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Approval not found or owned by another approver"
// @Failure 409 {object} dto.ErrorResponse "Approval already decided"
// @Failure 429 {object} map[string]string
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /approvals/{approvalID}/approve [post]
func (h *approvalHandler) approve(c *gin.Context) {
	h.decide(c, domain.ApprovalApproved)
}

// reject godoc
// @Summary Reject an approval
// @Description Records the caller's rejection and returns the recomputed expense status
// @Tags approvals
// @Accept json
// @Produce json
// @Param approvalID path string true "Approval ID"
// @Param decision body dto.DecisionRequest false "Optional comments"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Approval not found or owned by another approver"
// @Failure 409 {object} dto.ErrorResponse "Approval already decided"
// @Failure 429 {object} map[string]string
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /approvals/{approvalID}/reject [post]
func (h *approvalHandler) reject(c *gin.Context) {
	h.decide(c, domain.ApprovalRejected)
}

func (h *approvalHandler) decide(c *gin.Context, decision domain.ApprovalStatus) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approverID, ok := requireUserID(c)
	if !ok {
		return
	}
	approvalID := c.Param("approvalID")

	var req dto.DecisionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithBindError(c, err)
			return
		}
	}

	logger = logger.With(slog.String("approval_id", approvalID), slog.String("decision", string(decision)))
	logger.Info("Received decision")

	outcome, err := h.decisionService.Decide(c.Request.Context(), approvalID, approverID, decision, req.Comments)
	if err != nil {
		respondWithError(c, err, "Failed to record decision")
		return
	}

	logger.Info("Decision recorded", slog.String("expense_status", string(outcome.ExpenseStatus)))
	c.JSON(http.StatusOK, dto.ToDecisionResponse(*outcome))
}

// bulkApprove godoc
// @Summary Approve several approvals
// @Description Approves each listed approval separately. A failed approval is reported in the results and does not stop the others.
// @Tags approvals
// @Accept json
// @Produce json
// @Param decision body dto.BulkDecisionRequest true "Approval IDs and optional comments"
// @Success 200 {object} dto.BulkDecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /approvals/bulk-approve [post]
func (h *approvalHandler) bulkApprove(c *gin.Context) {
	h.decideBulk(c, domain.ApprovalApproved)
}

// bulkReject godoc
// @Summary Reject several approvals
// @Description Rejects each listed approval separately. A failed approval is reported in the results and does not stop the others.
// @Tags approvals
// @Accept json
// @Produce json
// @Param decision body dto.BulkDecisionRequest true "Approval IDs and optional comments"
// @Success 200 {object} dto.BulkDecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /approvals/bulk-reject [post]
func (h *approvalHandler) bulkReject(c *gin.Context) {
	h.decideBulk(c, domain.ApprovalRejected)
}

func (h *approvalHandler) decideBulk(c *gin.Context, decision domain.ApprovalStatus) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approverID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.BulkDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	result, err := h.decisionService.DecideBulk(c.Request.Context(), req.ApprovalIDs, approverID, decision, req.Comments)
	if err != nil {
		respondWithError(c, err, "Failed to record decisions")
		return
	}

	logger.Info("Bulk decision recorded",
		slog.String("decision", string(decision)),
		slog.Int("successful", result.Succeeded),
		slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, dto.ToBulkDecisionResponse(result, func(err error) dto.ErrorResponse {
		return errorBody(err, "Failed to record decision")
	}))
}
