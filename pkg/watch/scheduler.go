package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"telescope-hq/callisto/pkg/telemetry/logging"
)

// Scheduler runs a full validation on a cron schedule, independent of
// filesystem events. It catches drift the watcher cannot see, such as
// expiry dates passing while the files are untouched.
type Scheduler struct {
	schedule string
	cron     *cron.Cron
	logger   *logging.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler for the given cron expression. An empty
// expression produces a scheduler whose Start is a no-op.
func NewScheduler(schedule string, logger *logging.Logger) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins scheduled validation. Each tick calls run; errors are logged
// and the schedule continues. Stops when the context is cancelled.
func (s *Scheduler) Start(ctx context.Context, run func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("validation schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.logger.Info("starting scheduled validation")
		if err := run(); err != nil {
			s.logger.Error("scheduled validation failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule validation: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("validation scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("validation scheduler stopped")
}
