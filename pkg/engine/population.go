package engine

import (
	"sort"

	"github.com/XiaoConstantine/algen-go/pkg/core"
)

// Population holds one generation's candidates and their fitness values.
// It is replaced wholesale at each generation boundary; nothing aliases a
// population across generations.
type Population[S any] struct {
	nodes      []core.Node[S]
	generation int
	scored     bool
}

// Generation returns the 0-indexed generation this population belongs to.
func (p *Population[S]) Generation() int {
	return p.generation
}

// Size returns the number of candidates, which equals the configured
// population size at every generation boundary.
func (p *Population[S]) Size() int {
	return len(p.nodes)
}

// Rank returns the candidates sorted by fitness descending. The sort is
// stable: ties keep insertion order, so runs stay reproducible under a
// fixed seed.
func (p *Population[S]) Rank() []core.Node[S] {
	p.mustBeScored("Rank")
	ranked := make([]core.Node[S], len(p.nodes))
	copy(ranked, p.nodes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})
	return ranked
}

// Best returns the highest-fitness node; the first one wins a tie.
func (p *Population[S]) Best() core.Node[S] {
	p.mustBeScored("Best")
	best := p.nodes[0]
	for _, node := range p.nodes[1:] {
		if node.Fitness > best.Fitness {
			best = node
		}
	}
	return best
}

// Worst returns the lowest-fitness node; the first one wins a tie.
func (p *Population[S]) Worst() core.Node[S] {
	p.mustBeScored("Worst")
	worst := p.nodes[0]
	for _, node := range p.nodes[1:] {
		if node.Fitness < worst.Fitness {
			worst = node
		}
	}
	return worst
}

// Mean returns the average fitness of the population.
func (p *Population[S]) Mean() float64 {
	p.mustBeScored("Mean")
	var sum float64
	for _, node := range p.nodes {
		sum += node.Fitness
	}
	return sum / float64(len(p.nodes))
}

// mustBeScored guards the fitness reductions: reading fitness before the
// generation's scoring pass has completed is a programmer error, not a
// runtime condition the engine can recover from.
func (p *Population[S]) mustBeScored(op string) {
	if !p.scored {
		panic("engine: " + op + " called before population was scored")
	}
	if len(p.nodes) == 0 {
		panic("engine: " + op + " called on empty population")
	}
}
