package services

import (
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.NotificationDispatcher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The resolver is shared by every service that needs the rule set.
	resolver := NewRuleResolverService(repos.RuleRepo)
	container.Rules = resolver

	container.Workflow = NewWorkflowService(
		resolver,
		repos.UserRepo,
		repos.ExpenseRepo,
		repos.TxManager,
		notifier,
		repos.AuditRepo,
	)
	container.Decision = NewDecisionService(
		resolver,
		repos.UserRepo,
		repos.TxManager,
		notifier,
		repos.AuditRepo,
	)
	container.Status = NewStatusService(repos.ExpenseRepo, repos.ApprovalRepo, resolver)
	container.Query = NewApprovalQueryService(repos.ApprovalRepo, repos.ExpenseRepo)
	container.Stats = NewStatisticsService(repos.ApprovalRepo)
	container.Overdue = NewOverdueService(
		repos.ApprovalRepo,
		repos.ExpenseRepo,
		notifier,
		WithDefaultThreshold(cfg.OverdueThresholdDays),
	)

	return container
}
