package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// RequireRole only lets through callers whose role claim is one of roles.
// It must run after AuthMiddleware. With no roles configured every caller is refused.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRoleFromContext(c.Request.Context())
		if role == "" || !slices.Contains(roles, role) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not allowed",
				slog.String("role", role),
				slog.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "You do not have permission to perform this action",
				"code":  apperrors.ReasonCode(apperrors.ErrForbidden),
			})
			return
		}
		c.Next()
	}
}
