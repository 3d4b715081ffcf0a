package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests of expense owners.
type expenseHandler struct {
	workflowService portssvc.WorkflowSvcFacade
	statusService   portssvc.StatusSvc
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(ws portssvc.WorkflowSvcFacade, ss portssvc.StatusSvc) *expenseHandler {
	return &expenseHandler{
		workflowService: ws,
		statusService:   ss,
	}
}

// RegisterExpenseRoutes registers routes related to expense submission and status.
func RegisterExpenseRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade, statusService portssvc.StatusSvc) {
	h := newExpenseHandler(workflowService, statusService)

	expenses := rg.Group("/expenses/:expenseID")
	{
		expenses.POST("/submit", h.submitExpense)
		expenses.GET("/status", h.getExpenseStatus)
	}
}

// submitExpense godoc
// @Summary Submit an expense for approval
// @Description Creates one pending approval per applicable approver and moves the expense to pending
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 201 {object} dto.SubmitExpenseResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown expense, invalid category or already submitted"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Expense owned by another user"
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/submit [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	expenseID := c.Param("expenseID")
	logger = logger.With(slog.String("expense_id", expenseID))
	logger.Info("Received request to submit expense")

	approvals, err := h.workflowService.SubmitExpense(c.Request.Context(), expenseID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to submit expense")
		return
	}

	logger.Info("Expense submitted", slog.Int("approval_count", len(approvals)))
	c.JSON(http.StatusCreated, dto.ToSubmitExpenseResponse(expenseID, approvals))
}

// getExpenseStatus godoc
// @Summary Get the status of an expense
// @Description Recomputes the status of an expense from its approvals. Visible to the owner and its approvers.
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseStatusResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID}/status [get]
func (h *expenseHandler) getExpenseStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	expenseID := c.Param("expenseID")

	status, err := h.statusService.ExpenseStatusForUser(c.Request.Context(), expenseID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to compute expense status")
		return
	}
	c.JSON(http.StatusOK, dto.ExpenseStatusResponse{ExpenseID: expenseID, Status: status})
}
