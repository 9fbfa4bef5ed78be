package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// LogSink writes every event to the application log.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a new LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Publish(_ context.Context, event entities.Event) error {
	s.logger.Info("quiz event",
		zap.String("event", event.Name),
		zap.String("run_id", event.RunID()),
		zap.Any("payload", event.Payload),
		zap.Time("timestamp", event.OccurredAt))
	return nil
}
