package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"aigallery/internal/activity"
	"aigallery/internal/config"
)

// SessionSweeper drops expired sessions.
type SessionSweeper interface {
	SweepExpired(ctx context.Context) int
}

type Scheduler struct {
	cron      *cron.Cron
	cfg       config.JobsConfig
	sessions  SessionSweeper
	publisher *activity.Publisher
	log       zerolog.Logger
}

func NewScheduler(cfg config.JobsConfig, sessions SessionSweeper, publisher *activity.Publisher, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		cfg:       cfg,
		sessions:  sessions,
		publisher: publisher,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.SessionSweep, s.sweepSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.Digest, s.enqueueDigest); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits up to five seconds for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) sweepSessions() {
	removed := s.sessions.SweepExpired(context.Background())
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("session sweep")
	}
}

func (s *Scheduler) enqueueDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(ctx, activity.Event{
		Type: activity.EventDigest,
		At:   time.Now().UTC(),
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue digest failed")
	}
}
