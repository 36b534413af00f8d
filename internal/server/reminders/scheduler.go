package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/doclife/internal/logging"
	"github.com/dmitrijs2005/doclife/internal/timex"
	"github.com/robfig/cron/v3"
)

type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrSchedulerStopped = errors.New("scheduler stopped")

// Runner runs one sweep.
type Runner interface {
	Run(ctx context.Context) (Report, error)
}

// Scheduler fires the sweep once a day at a local wall-clock time and lets
// callers trigger it on demand. It owns at most one cron timer.
type Scheduler struct {
	sweep  Runner
	clock  string
	loc    *time.Location
	logger logging.Logger

	// spec overrides the daily cron spec derived from clock.
	spec string

	mu    sync.Mutex
	state State
	cron  *cron.Cron
}

// NewScheduler prepares a scheduler firing daily at clock ("HH:MM") in loc.
// Nothing runs until Start.
func NewScheduler(sweep Runner, clock string, loc *time.Location, logger logging.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{sweep: sweep, clock: clock, loc: loc, logger: logger}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) cronSpec() (string, error) {
	if s.spec != "" {
		return s.spec, nil
	}
	h, m, err := timex.ParseClock(s.clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", m, h), nil
}

// Start installs the daily timer. Calling it on a running scheduler is a
// no-op. An error means the timer could not be created.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		s.logger.Debug(context.Background(), "reminder scheduler already running")
		return nil
	case StateStopped:
		return ErrSchedulerStopped
	}

	spec, err := s.cronSpec()
	if err != nil {
		return fmt.Errorf("reminder schedule: %w", err)
	}

	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)
	id, err := c.AddFunc(spec, s.runScheduled)
	if err != nil {
		return fmt.Errorf("reminder schedule %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.state = StateRunning

	s.logger.Info(context.Background(), "reminder scheduler started",
		"schedule", spec, "location", s.loc.String(), "next_run", c.Entry(id).Schedule.Next(time.Now().In(s.loc)))
	return nil
}

func (s *Scheduler) runScheduled() {
	// errors are logged by the sweep and must not stop the timer
	_, _ = s.sweep.Run(context.Background())
}

// TriggerNow runs a sweep synchronously on the caller's goroutine. It works
// in every state and may overlap with a scheduled run.
func (s *Scheduler) TriggerNow(ctx context.Context) (Report, error) {
	return s.sweep.Run(ctx)
}

// Stop removes the timer and waits for a scheduled sweep in flight, or
// until ctx is done. A stopped scheduler cannot be restarted. Stop on a
// scheduler that was never started does nothing.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateUninitialized {
		s.mu.Unlock()
		return nil
	}
	c := s.cron
	s.cron = nil
	s.state = StateStopped
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		s.logger.Info(ctx, "reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	logger logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(context.Background(), "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(context.Background(), "cron: "+msg, append(keysAndValues, "error", err)...)
}
