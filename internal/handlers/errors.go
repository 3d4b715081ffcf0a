package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusForError maps the error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch apperrors.ReasonCode(err) {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeNotFoundOrForbidden:
		return http.StatusNotFound
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeAlreadyDecided, apperrors.CodeDuplicate:
		return http.StatusConflict
	case apperrors.CodePersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error body for a failed service call.
// Server side failures are logged at error level and their details hidden.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	} else {
		logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, errorBody(err, fallbackMsg))
}

// errorBody renders err for the caller. Server side failures show fallbackMsg only.
func errorBody(err error, fallbackMsg string) dto.ErrorResponse {
	body := dto.ErrorResponse{
		Error:     err.Error(),
		Code:      apperrors.ReasonCode(err),
		Retryable: apperrors.IsRetryable(err),
	}
	if statusForError(err) >= http.StatusInternalServerError {
		body.Error = fallbackMsg
		return body
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		body.Error = appErr.Message
	}
	return body
}

// respondWithBindError writes a 400 for a request that failed binding or validation.
func respondWithBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: describeBindError(err),
		Code:  apperrors.CodeValidation,
	})
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

// requireUserID returns the authenticated user or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: "unauthorized"})
		return "", false
	}
	return userID, true
}
