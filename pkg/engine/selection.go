package engine

import (
	"math"
	"math/rand"

	"github.com/XiaoConstantine/algen-go/pkg/core"
)

// Selection helpers for caller Algorithm implementations. The engine never
// calls these itself; Reproduce owns parent selection.

// Tournament picks the best of `size` uniformly sampled nodes. Sampling is
// with replacement, like classic tournament selection.
func Tournament[S any](rng *rand.Rand, nodes []core.Node[S], size int) core.Node[S] {
	if len(nodes) == 0 {
		panic("engine: Tournament on empty population")
	}
	if size < 1 {
		size = 1
	}

	best := nodes[rng.Intn(len(nodes))]
	for i := 1; i < size; i++ {
		node := nodes[rng.Intn(len(nodes))]
		if node.Fitness > best.Fitness {
			best = node
		}
	}
	return best
}

// RouletteWheel picks a node with probability proportional to its fitness.
// When the total fitness is not positive and finite (negative scores,
// sentinel values), it falls back to a uniform pick.
func RouletteWheel[S any](rng *rand.Rand, nodes []core.Node[S]) core.Node[S] {
	if len(nodes) == 0 {
		panic("engine: RouletteWheel on empty population")
	}

	total := 0.0
	usable := true
	for _, node := range nodes {
		if node.Fitness < 0 || math.IsInf(node.Fitness, 0) || math.IsNaN(node.Fitness) {
			usable = false
			break
		}
		total += node.Fitness
	}

	if !usable || total <= 0 {
		return nodes[rng.Intn(len(nodes))]
	}

	spin := rng.Float64() * total
	cumulative := 0.0
	for _, node := range nodes {
		cumulative += node.Fitness
		if cumulative >= spin {
			return node
		}
	}
	return nodes[len(nodes)-1]
}
