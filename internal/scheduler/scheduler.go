// Package scheduler runs periodic jobs such as the overdue approval sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/robfig/cron/v3"
)

// DefaultOverdueSchedule runs the sweep at the top of every hour.
const DefaultOverdueSchedule = "0 * * * *"

// Scheduler owns a cron instance and the entries registered on it.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// New creates a scheduler. Jobs never overlap with themselves; a run that is still
// going when the next one is due causes that run to be skipped.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		logger:  logger,
		timeout: 10 * time.Minute,
		entries: make(map[string]cron.EntryID),
	}
}

// Register adds a named job on a standard five-field cron schedule.
func (s *Scheduler) Register(name, schedule string, job func(ctx context.Context) error) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q for %s: %w", schedule, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	id, err := s.cron.AddFunc(schedule, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}
	s.entries[name] = id
	s.logger.Info("Registered scheduled job", slog.String("job", name), slog.String("schedule", schedule))
	return nil
}

// RegisterOverdueSweep schedules svc.SweepOverdue with the given threshold.
func (s *Scheduler) RegisterOverdueSweep(schedule string, svc portssvc.OverdueSvc, thresholdDays int) error {
	if schedule == "" {
		schedule = DefaultOverdueSchedule
	}
	return s.Register("overdue_sweep", schedule, func(ctx context.Context) error {
		_, err := svc.SweepOverdue(ctx, thresholdDays)
		return err
	})
}

// NextRun returns the next activation time of a registered job. Before Start the
// time is computed from the job's schedule.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	entry := s.cron.Entry(id)
	if entry.Next.IsZero() && entry.Schedule != nil {
		return entry.Schedule.Next(time.Now()), true
	}
	return entry.Next, true
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()

	s.mu.Lock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	s.mu.Unlock()
	for _, name := range names {
		if next, ok := s.NextRun(name); ok {
			s.logger.Info("Scheduled job armed", slog.String("job", name), slog.Time("next_run", next))
		}
	}
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) run(name string, job func(ctx context.Context) error) {
	logger := s.logger.With(slog.String("job", name))
	ctx, cancel := context.WithTimeout(middleware.WithLogger(context.Background(), logger), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error("Scheduled job failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Scheduled job finished", slog.Duration("duration", time.Since(start)))
}
