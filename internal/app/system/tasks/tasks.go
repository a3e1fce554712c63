// internal/app/system/tasks/tasks.go
package tasks

import (
	"context"
	"time"

	"github.com/communitycare/carehub/internal/app/recommend"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background cron jobs. Currently that is only the
// nightly recommendation recompute; register further jobs here.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler builds a UTC cron scheduler and registers the recompute job
// on the given cron spec (e.g. "0 3 * * *" for 03:00 UTC nightly).
func NewScheduler(engine *recommend.Engine, spec string, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		start := time.Now()
		if err := engine.RecomputeAll(ctx); err != nil {
			logger.Error("nightly recommendation recompute failed", zap.Error(err))
			return
		}
		logger.Info("nightly recommendation recompute finished",
			zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, log: logger}, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("background scheduler started")
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("background scheduler stopped")
}
