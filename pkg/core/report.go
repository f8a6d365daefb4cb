package core

import "time"

// ScoringFailure records one recovered per-candidate evaluation failure.
type ScoringFailure struct {
	// Slot is the candidate's position in the (unranked) population.
	Slot int
	// Err is the error the Analyzer returned, or the recovered panic.
	Err error
}

// GenerationReport is emitted once per generation to the optional
// callback and is not retained by the engine afterwards.
type GenerationReport[S any] struct {
	RunID      string
	Generation int

	// Fitness statistics over the scored population.
	Best  float64
	Worst float64
	Mean  float64

	// BestSolution is a read-only view of the generation's best
	// candidate; callers must not mutate it.
	BestSolution S

	// Failures lists candidates whose scoring was recovered with the
	// sentinel fitness this generation.
	Failures []ScoringFailure

	// Phase timings.
	ScoringElapsed      time.Duration
	ReproductionElapsed time.Duration
	Elapsed             time.Duration
}

// GenerationCallback observes generation reports. It runs synchronously on
// the engine's goroutine between generations, so a hanging callback hangs
// the run.
type GenerationCallback[S any] func(report GenerationReport[S])

// RunStatus describes how a run ended.
type RunStatus int

const (
	// StatusCompleted means the configured generation cap was reached.
	StatusCompleted RunStatus = iota
	// StatusConverged means the best fitness stopped improving for the
	// configured number of consecutive generations.
	StatusConverged
	// StatusCancelled means the cancellation signal was honored at a
	// generation boundary. The result still carries the best-so-far
	// candidate; cancellation is not an error.
	StatusCancelled
)

// String provides human-readable run statuses.
func (s RunStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusConverged:
		return "converged"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// RunResult is the final output of a run, owned by the caller.
type RunResult[S any] struct {
	RunID  string
	Status RunStatus

	// Best is the best candidate observed across all generations, not
	// just the last one.
	Best        S
	BestFitness float64

	// Generation is the generation index at which Best first attained
	// BestFitness.
	Generation int

	// Generations is how many generations were fully processed.
	Generations int
}
