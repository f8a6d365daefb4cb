// Package engine implements the generation loop of the evolutionary run:
// population lifecycle, parallel scoring with per-candidate failure
// isolation, elitism plus caller-driven reproduction, convergence
// detection and cancellation. Problem-specific behavior enters only
// through the core.Algorithm and core.Analyzer capabilities.
package engine

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/XiaoConstantine/algen-go/pkg/core"
	"github.com/XiaoConstantine/algen-go/pkg/errors"
	"github.com/XiaoConstantine/algen-go/pkg/logging"
	"github.com/XiaoConstantine/algen-go/pkg/telemetry"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// Engine drives one evolutionary run at a time. D is the caller's
// seed/input data type, S the candidate representation.
type Engine[D, S any] struct {
	params    core.Parameters
	algorithm core.Algorithm[D, S]
	analyzer  core.Analyzer[D, S]
	callback  core.GenerationCallback[S]
	sinks     []telemetry.Sink
	logger    *logging.Logger

	// seed is resolved at the start of each run.
	seed int64
}

// Option configures optional engine collaborators.
type Option[D, S any] func(*Engine[D, S])

// WithCallback registers a per-generation observer, invoked synchronously
// after each selection phase in strictly increasing generation order.
func WithCallback[D, S any](cb core.GenerationCallback[S]) Option[D, S] {
	return func(e *Engine[D, S]) {
		e.callback = cb
	}
}

// WithSink adds a telemetry sink for per-generation records.
func WithSink[D, S any](sink telemetry.Sink) Option[D, S] {
	return func(e *Engine[D, S]) {
		e.sinks = append(e.sinks, sink)
	}
}

// WithLogger overrides the global logger for this engine.
func WithLogger[D, S any](logger *logging.Logger) Option[D, S] {
	return func(e *Engine[D, S]) {
		e.logger = logger
	}
}

// New validates the parameters and assembles an engine. Validation
// failures and missing capabilities surface as InvalidConfiguration.
func New[D, S any](params core.Parameters, algorithm core.Algorithm[D, S], analyzer core.Analyzer[D, S], opts ...Option[D, S]) (*Engine[D, S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if algorithm == nil {
		return nil, errors.New(errors.InvalidConfiguration, "algorithm capability is required")
	}
	if analyzer == nil {
		return nil, errors.New(errors.InvalidConfiguration, "analyzer capability is required")
	}

	e := &Engine[D, S]{
		params:    params,
		algorithm: algorithm,
		analyzer:  analyzer,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.GetLogger()
	}
	return e, nil
}

// Run executes the full evolutionary cycle and returns the best candidate
// observed across all generations.
//
// Cancellation through ctx is polled once per generation boundary;
// in-flight evaluations finish first, and the result comes back with
// StatusCancelled and a nil error, since cancellation is a normal outcome
// rather than a failure. Only the fatal conditions of the error taxonomy (failed
// initialization, a fully failed scoring pass, an unfillable reproduction
// slot) return an error.
func (e *Engine[D, S]) Run(ctx context.Context, input D) (*core.RunResult[S], error) {
	runID := uuid.New().String()
	ctx = logging.WithRunID(ctx, runID)

	e.seed = e.params.Seed
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}

	e.logger.Info(ctx, "starting run: population_size=%d max_generations=%d elitism_rate=%.2f concurrency=%d",
		e.params.PopulationSize,
		e.params.MaxGenerations,
		e.params.ElitismRate,
		e.params.EffectiveConcurrency())

	pop, err := e.initialize(ctx, input)
	if err != nil {
		return nil, err
	}

	var (
		best       core.Node[S]
		haveBest   bool
		bestGen    = -1
		completed  int
		stagnation int
		status     = core.StatusCompleted
	)

	for gen := 0; gen < e.params.MaxGenerations; gen++ {
		// Cancellation is polled at the generation boundary only, so a
		// generation is never left partially scored.
		if ctx.Err() != nil {
			e.logger.Info(ctx, "run cancelled after %d generations", completed)
			status = core.StatusCancelled
			break
		}

		gctx := logging.WithGeneration(ctx, gen)
		genStart := time.Now()

		scoreStart := time.Now()
		failures, err := e.score(gctx, input, pop)
		if err != nil {
			return nil, err
		}
		scoringElapsed := time.Since(scoreStart)

		if len(failures) > 0 {
			e.logger.Warn(gctx, "%d of %d candidates scored with sentinel fitness", len(failures), pop.Size())
		}

		genBest := pop.Best()
		improved := !haveBest || genBest.Fitness > best.Fitness
		improvement := math.Inf(1)
		if haveBest {
			improvement = genBest.Fitness - best.Fitness
		}
		if improved {
			best = genBest
			bestGen = gen
			haveBest = true
		}

		// Selecting: produce the next generation. Skipped after the
		// final generation, whose offspring would never be scored.
		var reproductionElapsed time.Duration
		next := pop
		if gen < e.params.MaxGenerations-1 {
			reproStart := time.Now()
			next, err = e.advance(gctx, input, pop)
			if err != nil {
				return nil, err
			}
			reproductionElapsed = time.Since(reproStart)
		}

		e.emitReport(gctx, runID, pop, genBest, failures, scoringElapsed, reproductionElapsed, time.Since(genStart))
		completed = gen + 1

		if e.params.ConvergenceEnabled() && gen > 0 {
			if improvement > e.params.ConvergenceThreshold {
				stagnation = 0
			} else {
				stagnation++
				if stagnation >= e.params.StagnationLimit {
					e.logger.Info(gctx, "converged: best fitness stagnant for %d generations", stagnation)
					status = core.StatusConverged
					break
				}
			}
		}

		pop = next
	}

	result := &core.RunResult[S]{
		RunID:       runID,
		Status:      status,
		Generation:  bestGen,
		Generations: completed,
	}
	if haveBest {
		result.Best = best.Solution
		result.BestFitness = best.Fitness
	}

	e.logger.Info(ctx, "run %s: generations=%d best_fitness=%.4f best_generation=%d",
		result.Status, result.Generations, result.BestFitness, result.Generation)

	return result, nil
}

// initialize builds the generation-0 population by invoking the caller's
// Allocate once per slot, in parallel. Any slot failure aborts the run; a
// partial population is never scored.
func (e *Engine[D, S]) initialize(ctx context.Context, input D) (*Population[S], error) {
	gctx := logging.WithGeneration(ctx, 0)
	nodes := make([]core.Node[S], e.params.PopulationSize)

	p := pool.New().WithMaxGoroutines(e.params.EffectiveConcurrency())

	var mu sync.Mutex
	var slotErr error

	for i := range nodes {
		i := i // Capture loop variable
		p.Go(func() {
			solution, err := e.algorithm.Allocate(gctx, input, &e.params)
			if err != nil {
				mu.Lock()
				if slotErr == nil {
					slotErr = errors.WithFields(
						errors.Wrap(err, errors.InitializationFailed, "failed to allocate initial candidate"),
						errors.Fields{"generation": 0, "slot": i, "phase": "initializing"})
				}
				mu.Unlock()
				return
			}
			nodes[i] = core.Node[S]{Solution: solution}
		})
	}

	p.Wait()

	if slotErr != nil {
		return nil, slotErr
	}

	e.logger.Debug(gctx, "initialized population with %d candidates", len(nodes))
	return &Population[S]{nodes: nodes}, nil
}

// emitReport delivers the generation report to the callback, then to the
// telemetry sinks. Sink failures are logged and do not abort the run.
func (e *Engine[D, S]) emitReport(ctx context.Context, runID string, pop *Population[S], genBest core.Node[S], failures []core.ScoringFailure, scoringElapsed, reproductionElapsed, elapsed time.Duration) {
	report := core.GenerationReport[S]{
		RunID:               runID,
		Generation:          pop.Generation(),
		Best:                genBest.Fitness,
		Worst:               pop.Worst().Fitness,
		Mean:                pop.Mean(),
		BestSolution:        genBest.Solution,
		Failures:            failures,
		ScoringElapsed:      scoringElapsed,
		ReproductionElapsed: reproductionElapsed,
		Elapsed:             elapsed,
	}

	if e.callback != nil {
		e.callback(report)
	}

	if len(e.sinks) == 0 {
		return
	}

	rec := telemetry.Generation{
		RunID:              runID,
		Generation:         report.Generation,
		PopulationSize:     pop.Size(),
		BestFitness:        report.Best,
		MeanFitness:        report.Mean,
		WorstFitness:       report.Worst,
		Failures:           len(failures),
		ScoringMillis:      scoringElapsed.Milliseconds(),
		ReproductionMillis: reproductionElapsed.Milliseconds(),
		TotalMillis:        elapsed.Milliseconds(),
		CreatedAt:          time.Now(),
	}
	for _, sink := range e.sinks {
		if err := sink.Record(ctx, rec); err != nil {
			e.logger.Warn(ctx, "telemetry sink failed: %v", err)
		}
	}
}
