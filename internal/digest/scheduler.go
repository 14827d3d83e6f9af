package digest

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the digest on a cron schedule with a seconds field,
// e.g. "0 0 0 * * *" for midnight.
type Scheduler struct {
	cron   *cron.Cron
	digest *Digest
	logger *zap.Logger
}

func NewScheduler(d *Digest, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		digest: d,
		logger: logger,
	}
}

// Schedule registers the digest job. ctx is handed to every run.
func (s *Scheduler) Schedule(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.digest.Run(ctx); err != nil {
			s.logger.Error("digest run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule digest %q: %w", schedule, err)
	}
	s.logger.Info("digest scheduled", zap.String("schedule", schedule))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
