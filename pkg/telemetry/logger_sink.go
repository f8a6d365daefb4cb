package telemetry

import (
	"context"

	"github.com/XiaoConstantine/algen-go/pkg/logging"
)

// LoggerSink renders generation records through the logging package.
type LoggerSink struct {
	logger *logging.Logger
}

// NewLoggerSink creates a sink writing to the given logger, or the global
// logger when nil.
func NewLoggerSink(logger *logging.Logger) *LoggerSink {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LoggerSink{logger: logger}
}

func (s *LoggerSink) Record(ctx context.Context, rec Generation) error {
	s.logger.Info(ctx,
		"generation summary: best=%.4f mean=%.4f worst=%.4f failures=%d scoring_ms=%d reproduction_ms=%d total_ms=%d",
		rec.BestFitness,
		rec.MeanFitness,
		rec.WorstFitness,
		rec.Failures,
		rec.ScoringMillis,
		rec.ReproductionMillis,
		rec.TotalMillis)
	return nil
}

func (s *LoggerSink) Close() error { return nil }
