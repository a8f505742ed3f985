package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DeadlineRunner is the slice of the coordinator the scheduler needs.
type DeadlineRunner interface {
	RunDeadlineCheck(now time.Time) (int, error)
}

// Scheduler runs the deadline scan on a cron expression. The scan itself
// is idempotent, so an overlapping manual run is harmless.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New builds a scheduler that triggers the runner on the given cron
// expression (standard five-field format).
func New(runner DeadlineRunner, spec string, logger zerolog.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		created, err := runner.RunDeadlineCheck(time.Now())
		if err != nil {
			logger.Error().Err(err).Msg("deadline scan failed")
			return
		}
		if created > 0 {
			logger.Info().Int("created", created).Msg("deadline scan created notifications")
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins scheduling in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("deadline scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("deadline scheduler stopped")
}
