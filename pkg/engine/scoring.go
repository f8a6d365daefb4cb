package engine

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/algen-go/pkg/core"
	"github.com/XiaoConstantine/algen-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// score computes fitness for every candidate in the population, in
// parallel across a bounded worker pool. Each worker writes only its own
// slot, so the hot path needs no locking.
//
// A single candidate's failure does not abort the run: the slot receives
// the sentinel fitness and the failure is returned for the generation
// report. Only a generation in which every candidate failed is fatal, since
// no viable parents remain.
func (e *Engine[D, S]) score(ctx context.Context, input D, pop *Population[S]) ([]core.ScoringFailure, error) {
	p := pool.New().WithMaxGoroutines(e.params.EffectiveConcurrency())

	for i := range pop.nodes {
		i := i // Capture loop variable
		p.Go(func() {
			fitness, err := e.safeEvaluate(ctx, input, pop.nodes[i].Solution)
			if err != nil {
				pop.nodes[i].Fitness = e.params.SentinelFitness
				pop.nodes[i].Err = err
				return
			}
			pop.nodes[i].Fitness = fitness
			pop.nodes[i].Err = nil
		})
	}

	p.Wait()
	pop.scored = true

	var failures []core.ScoringFailure
	for i, node := range pop.nodes {
		if node.Err != nil {
			failures = append(failures, core.ScoringFailure{Slot: i, Err: node.Err})
		}
	}

	if len(failures) == len(pop.nodes) {
		return nil, errors.WithFields(
			errors.New(errors.ScoringExhausted, "every candidate failed scoring"),
			errors.Fields{"generation": pop.generation, "phase": "scoring"})
	}

	return failures, nil
}

// safeEvaluate invokes the Analyzer, converting a panic in caller code
// into a per-candidate scoring failure instead of taking the run down.
func (e *Engine[D, S]) safeEvaluate(ctx context.Context, input D, candidate S) (fitness float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ScoringFailed, fmt.Sprintf("analyzer panic: %v", r))
		}
	}()

	fitness, err = e.analyzer.Evaluate(ctx, input, candidate)
	if err != nil {
		err = errors.Wrap(err, errors.ScoringFailed, "analyzer evaluation failed")
	}
	return fitness, err
}
