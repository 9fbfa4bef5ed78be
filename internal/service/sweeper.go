package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionEvicter drops quiz sessions that have been idle too long.
type SessionEvicter interface {
	Sweep(idle time.Duration) int
}

// SessionSweeper periodically evicts abandoned quiz sessions.
type SessionSweeper struct {
	sessions SessionEvicter
	schedule string
	idle     time.Duration
	logger   *zap.Logger
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessions SessionEvicter, schedule string, idle time.Duration, logger *zap.Logger) *SessionSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeper{
		sessions: sessions,
		schedule: schedule,
		idle:     idle,
		logger:   logger,
	}
}

// Start runs the sweep on schedule until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("idle_timeout", s.idle))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

func (s *SessionSweeper) sweep() {
	evicted := s.sessions.Sweep(s.idle)
	if evicted > 0 {
		s.logger.Info("idle quiz sessions evicted", zap.Int("count", evicted))
		return
	}
	s.logger.Debug("no idle quiz sessions")
}
