package engine

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/XiaoConstantine/algen-go/pkg/core"
	"github.com/XiaoConstantine/algen-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// advance produces the next generation from a scored population.
//
// The top round(ElitismRate * PopulationSize) candidates by rank are copied
// unchanged, retaining their fitness; the best-known fitness therefore
// never degrades across generations. The remaining slots are filled in
// parallel through the caller's Reproduce operator. A failing slot is
// retried once with identical inputs; a second failure is fatal because the
// engine cannot fabricate a valid candidate itself.
func (e *Engine[D, S]) advance(ctx context.Context, input D, pop *Population[S]) (*Population[S], error) {
	size := e.params.PopulationSize
	ranked := pop.Rank()

	eliteCount := int(math.Round(e.params.ElitismRate * float64(size)))
	if eliteCount > size {
		eliteCount = size
	}

	next := make([]core.Node[S], size)
	copy(next[:eliteCount], ranked[:eliteCount])

	p := pool.New().WithMaxGoroutines(e.params.EffectiveConcurrency())

	var mu sync.Mutex
	var slotErr error

	for slot := eliteCount; slot < size; slot++ {
		slot := slot // Capture loop variable
		p.Go(func() {
			solution, err := e.reproduceSlot(ctx, input, ranked, pop.generation, slot)
			if err != nil {
				mu.Lock()
				if slotErr == nil {
					slotErr = err
				}
				mu.Unlock()
				return
			}
			next[slot] = core.Node[S]{Solution: solution}
		})
	}

	p.Wait()

	if slotErr != nil {
		return nil, slotErr
	}

	return &Population[S]{
		nodes:      next,
		generation: pop.generation + 1,
	}, nil
}

// reproduceSlot fills one slot, retrying once on failure. The retry reuses
// a freshly seeded rng so the operator sees exactly the same inputs.
func (e *Engine[D, S]) reproduceSlot(ctx context.Context, input D, ranked []core.Node[S], generation, slot int) (S, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		rng := rand.New(rand.NewSource(e.slotSeed(generation, slot)))
		solution, err := e.algorithm.Reproduce(ctx, input, ranked, &e.params, rng)
		if err == nil {
			return solution, nil
		}
		lastErr = err
	}

	var zero S
	return zero, errors.WithFields(
		errors.Wrap(lastErr, errors.ReproductionFailed, "reproduction slot could not be filled"),
		errors.Fields{"generation": generation, "slot": slot, "phase": "selecting"})
}

// slotSeed derives a deterministic per-slot seed from the run seed, the
// generation and the slot index, so parallel reproduction stays
// reproducible under a fixed Parameters.Seed.
func (e *Engine[D, S]) slotSeed(generation, slot int) int64 {
	return e.seed + int64(generation)*int64(e.params.PopulationSize) + int64(slot)
}
