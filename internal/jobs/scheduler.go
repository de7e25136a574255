// Package jobs runs background work on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Scheduler is a cron-like job scheduler.
type Scheduler struct {
	*cron.Cron
}

// cronLogger adapts the application logger to cron.Logger.
type cronLogger struct {
	logger *log.Logger
}

// Info logs routine messages about cron's operation.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Error logs an error condition.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// NewScheduler returns a scheduler that recovers panicking jobs and skips a
// run while the previous one is still in progress.
func NewScheduler(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	cl := cronLogger{logger.WithPrefix("cron")}
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Shutdown stops the scheduler and waits for running jobs or ctx, whichever
// ends first.
func (s *Scheduler) Shutdown(ctx context.Context) {
	select {
	case <-s.Cron.Stop().Done():
	case <-ctx.Done():
	}
}

// AddFunc adds a job to the Scheduler.
func (s *Scheduler) AddFunc(spec string, fn func()) (int, error) {
	id, err := s.Cron.AddFunc(spec, fn)
	return int(id), err
}

// Remove removes a job from the Scheduler.
func (s *Scheduler) Remove(id int) {
	s.Cron.Remove(cron.EntryID(id))
}

// Refresher regenerates derived state.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

const refreshTimeout = 2 * time.Minute

// ScheduleNotificationRefresh registers r on spec. Each run gets its own
// timeout; failures are logged and retried on the next tick.
func ScheduleNotificationRefresh(s *Scheduler, spec string, r Refresher, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("cron")
	return s.AddFunc(spec, func() {
		RunRefresh(context.Background(), r, logger)
	})
}

// RunRefresh executes one refresh bounded by refreshTimeout.
func RunRefresh(ctx context.Context, r Refresher, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	start := time.Now()
	count, err := r.Refresh(ctx)
	if err != nil {
		logger.Error("notification refresh failed", "err", err, "elapsed", time.Since(start))
		return
	}
	logger.Debug("notification refresh finished", "notifications", count, "elapsed", time.Since(start))
}
