// Package scheduler periodically refreshes the theme and background image
// catalogs so long-running servers pick up remote catalog changes.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	applog "nexus/internal/log"
)

// Reloader re-fetches the catalogs held by the settings store.
type Reloader interface {
	ReloadThemes(ctx context.Context)
	ReloadImages(ctx context.Context)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ErrAlreadyStarted is returned by Start on a running scheduler.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Scheduler runs catalog refreshes on a cron schedule. An empty schedule
// disables it.
type Scheduler struct {
	mu       sync.Mutex
	reloader Reloader
	schedule string
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
}

// ValidateSchedule reports whether expr is a usable cron expression. Both
// five-field expressions and descriptors such as "@every 1h" are accepted.
func ValidateSchedule(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
	}
	return nil
}

// New builds a Scheduler for the given schedule.
func New(reloader Reloader, schedule string) (*Scheduler, error) {
	if reloader == nil {
		return nil, errors.New("scheduler requires a reloader")
	}
	schedule = strings.TrimSpace(schedule)
	if schedule != "" {
		if err := ValidateSchedule(schedule); err != nil {
			return nil, err
		}
	}
	return &Scheduler{reloader: reloader, schedule: schedule}, nil
}

// Enabled reports whether a refresh schedule is configured.
func (s *Scheduler) Enabled() bool {
	return s.schedule != ""
}

// Start registers the refresh job and starts the cron runner. It is a no-op
// when no schedule is configured.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.Enabled() {
		applog.Debug(ctx, "catalog refresh disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return ErrAlreadyStarted
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	runner := cron.New(cron.WithParser(parser))
	if _, err := runner.AddFunc(s.schedule, func() { s.Refresh(s.ctx) }); err != nil {
		s.cancel()
		return fmt.Errorf("schedule catalog refresh: %w", err)
	}
	runner.Start()
	s.cron = runner

	applog.Info(ctx, "catalog refresh scheduled", "schedule", s.schedule)
	return nil
}

// Stop halts the runner and waits for a refresh in progress to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	runner := s.cron
	cancel := s.cancel
	s.cron = nil
	s.cancel = nil
	s.mu.Unlock()

	if runner == nil {
		return
	}
	<-runner.Stop().Done()
	if cancel != nil {
		cancel()
	}
	applog.Info(context.Background(), "catalog refresh stopped")
}

// Refresh reloads both catalogs once.
func (s *Scheduler) Refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	applog.Debug(ctx, "refreshing catalogs")
	s.reloader.ReloadImages(ctx)
	s.reloader.ReloadThemes(ctx)
}
