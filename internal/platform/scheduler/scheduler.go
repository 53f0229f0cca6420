package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

// Job is a unit of periodic work. The context is cancelled after the job timeout.
type Job func(ctx context.Context) error

type Options struct {
	Location   *time.Location
	RunOnStart bool
	JobTimeout time.Duration
}

// Scheduler runs jobs on cron specs. A run that is still in progress when its next
// tick fires makes that tick a no-op.
type Scheduler struct {
	cron    *cron.Cron
	logger  *logging.Logger
	opts    Options
	onStart []func()
}

func New(logger *logging.Logger, opts Options) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = 5 * time.Minute
	}

	cronLogger := cronLogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(opts.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
		opts:   opts,
	}
}

// Add registers a job under a standard five-field cron spec (or a descriptor like "@every 2m").
func (s *Scheduler) Add(name, spec string, job Job) error {
	if job == nil {
		return fmt.Errorf("job %s is nil", name)
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.JobTimeout)
		defer cancel()

		startedAt := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "duration", time.Since(startedAt), "error", err)
			return
		}
		s.logger.Info("scheduled job completed", "job", name, "duration", time.Since(startedAt))
	}

	if _, err := s.cron.AddFunc(spec, run); err != nil {
		return fmt.Errorf("register job %s with spec %q: %w", name, spec, err)
	}
	if s.opts.RunOnStart {
		s.onStart = append(s.onStart, run)
	}
	return nil
}

func (s *Scheduler) Start() {
	for _, run := range s.onStart {
		go run()
	}
	s.cron.Start()
	s.logger.Info("cron scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRuns reports the next activation time of each registered job.
func (s *Scheduler) NextRuns() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Next)
	}
	return out
}

type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]any{"error", err}, keysAndValues...)
	a.logger.Error("cron: "+msg, args...)
}
