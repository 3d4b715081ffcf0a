package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/expense_approvals/internal/analytics"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/SscSPs/expense_approvals/internal/handlers"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/SscSPs/expense_approvals/internal/notify"
	"github.com/SscSPs/expense_approvals/internal/repositories/database/memory"
	"github.com/SscSPs/expense_approvals/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_approvals/internal/scheduler"
	"github.com/SscSPs/expense_approvals/pkg/config"
	"github.com/SscSPs/expense_approvals/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Expense Approvals API
// @version 1.0
// @description Approval workflow engine for company expenses.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	// --- Notifications ---
	sinks := []notify.Sink{notify.LogSink{}}
	if cfg.NATSURL != "" {
		nc, err := notify.ConnectNATS(cfg.NATSURL, logger)
		if err != nil {
			logger.Error("Failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer nc.Drain()
		sinks = append(sinks, notify.NewNATSSink(nc, cfg.NATSSubjectPrefix))
		logger.Info("Publishing notifications to NATS", slog.String("subject_prefix", cfg.NATSSubjectPrefix))
	}
	dispatcher := notify.NewDispatcher(cfg.NotifyWorkers, cfg.NotifyQueueSize, sinks...)
	defer dispatcher.Stop()

	serviceContainer := services.NewServiceContainer(cfg, repos, dispatcher)

	// --- Scheduled jobs ---
	sched := scheduler.New(logger)
	if err := sched.RegisterOverdueSweep(cfg.OverdueSweepCron, serviceContainer.Overdue, cfg.OverdueThresholdDays); err != nil {
		logger.Error("Failed to schedule overdue sweep", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()

	// --- HTTP ---
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	tracker := analytics.NewPosthogTracker(cfg.PosthogAPIKey, "", logger)
	defer tracker.Close()

	decisionLimiter, err := middleware.NewRateLimiter(cfg.DecisionRateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(middleware.AnalyticsMiddleware(tracker, middleware.DefaultRouteEvents))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, decisionLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	sched.Stop(shutdownCtx)
}

// buildRepositories wires the configured storage driver. The returned func releases it.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		if cfg.MemorySeedFile != "" {
			if err := store.LoadSeed(cfg.MemorySeedFile); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logger.Info("Loaded memory seed", slog.String("file", cfg.MemorySeedFile))
		}
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(store), func() {}, nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			dbPool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
