package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_approvals/cmd/docs"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/SscSPs/expense_approvals/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// decisionLimiter may be nil to disable rate limiting of decisions.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	decisionLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, decisionLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	decisionLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	var decisionMiddleware []gin.HandlerFunc
	if decisionLimiter != nil {
		decisionMiddleware = append(decisionMiddleware, middleware.RateLimit(decisionLimiter))
	}

	RegisterExpenseRoutes(v1, services.Workflow, services.Status)
	RegisterApprovalRoutes(v1, services.Decision, services.Query, services.Stats, decisionMiddleware...)
	RegisterAdminRoutes(v1, services.Overdue, middleware.RequireRole(cfg.AdminRoles...))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
