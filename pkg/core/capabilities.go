package core

import (
	"context"
	"math/rand"
)

// Node wraps one candidate solution together with its computed fitness.
// The solution itself is opaque to the engine: it only copies nodes and
// hands them to the caller's capabilities.
type Node[S any] struct {
	// Solution is the caller-defined candidate.
	Solution S

	// Fitness is the candidate's score; higher is better. Valid only
	// after the scoring pass for its generation has completed.
	Fitness float64

	// Err records a recovered scoring failure for this candidate. When
	// set, Fitness holds the configured sentinel value.
	Err error
}

// Algorithm is the problem-specific half of a run: it knows how to build a
// fresh candidate from seed data and how to derive a new candidate from a
// ranked, scored population (selection plus crossover/mutation).
//
// D is the caller's seed/input data, passed untouched from Engine.Run to
// every invocation. S is the candidate representation.
type Algorithm[D, S any] interface {
	// Allocate builds one generation-0 candidate. It is called once per
	// population slot; any error aborts the run.
	Allocate(ctx context.Context, input D, params *Parameters) (S, error)

	// Reproduce derives exactly one new candidate from the ranked
	// population (sorted by fitness descending). The rng is scoped to
	// the slot being filled and derived from Parameters.Seed, so
	// implementations that take all randomness from it stay
	// deterministic even though slots are filled in parallel.
	Reproduce(ctx context.Context, input D, ranked []Node[S], params *Parameters, rng *rand.Rand) (S, error)
}

// Analyzer scores candidates. Evaluate must be a pure function of the
// input data and the candidate: the engine caches elite fitness across the
// generation boundary and rescoring must agree with the cached value.
type Analyzer[D, S any] interface {
	Evaluate(ctx context.Context, input D, candidate S) (float64, error)
}

// AnalyzerFunc adapts a plain function to the Analyzer interface.
type AnalyzerFunc[D, S any] func(ctx context.Context, input D, candidate S) (float64, error)

func (f AnalyzerFunc[D, S]) Evaluate(ctx context.Context, input D, candidate S) (float64, error) {
	return f(ctx, input, candidate)
}
