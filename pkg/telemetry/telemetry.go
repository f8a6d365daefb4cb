// Package telemetry carries per-generation observability records from the
// engine to pluggable sinks. Records describe what a generation did
// (fitness statistics, recovered failures, phase timings) and are emitted
// after the generation's selection phase completes.
package telemetry

import (
	"context"
	"time"
)

// Generation is one telemetry record, emitted once per generation.
type Generation struct {
	RunID          string
	Generation     int
	PopulationSize int

	BestFitness  float64
	MeanFitness  float64
	WorstFitness float64

	// Failures counts candidates scored with the sentinel fitness.
	Failures int

	ScoringMillis      int64
	ReproductionMillis int64
	TotalMillis        int64

	CreatedAt time.Time
}

// Sink receives generation records. Record is called synchronously between
// generations, so slow sinks slow the run down.
type Sink interface {
	Record(ctx context.Context, rec Generation) error
	Close() error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) Record(ctx context.Context, rec Generation) error { return nil }
func (NopSink) Close() error                                     { return nil }

// MultiSink fans records out to several sinks, returning the first error.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, rec Generation) error {
	for _, s := range m {
		if err := s.Record(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close() error {
	var firstErr error
	for _, s := range m {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
