package analytics

import (
	"context"

	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/logger"

	"go.uber.org/zap"
)

// NoopSink is used when analytics is not configured. Events are logged at
// debug level so local development still shows the funnel activity.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

// Track implements domain.AnalyticsSink.
func (s *NoopSink) Track(_ context.Context, event string, params map[string]any) error {
	logger.Get().Debug("Analytics event (noop)",
		zap.String("event", event),
		zap.Any("params", params),
	)
	return nil
}

var _ domain.AnalyticsSink = (*NoopSink)(nil)
