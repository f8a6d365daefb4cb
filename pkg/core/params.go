package core

import (
	"math"
	"os"
	"runtime"

	"github.com/XiaoConstantine/algen-go/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Parameters define the rules of an evolutionary run. They are constructed
// once before the generation loop starts and never written afterwards; the
// engine copies them and every other component reads them through a
// *Parameters it must not mutate.
type Parameters struct {
	// PopulationSize is how many candidates exist per generation.
	PopulationSize int `yaml:"population_size" validate:"gt=0"`

	// MaxGenerations caps the number of generations in the run.
	MaxGenerations int `yaml:"max_generations" validate:"gt=0"`

	// ElitismRate is the fraction (0-1) of top-ranked candidates carried
	// unchanged into the next generation.
	ElitismRate float64 `yaml:"elitism_rate" validate:"gte=0,lte=1"`

	// CrossoverRate is the probability (0-1) of crossover favoring one
	// parent over the other. The engine passes it through to the caller's
	// Algorithm; it has no engine-side meaning.
	CrossoverRate float64 `yaml:"crossover_rate" validate:"gte=0,lte=1"`

	// MutationRate is the probability (0-1) of mutating a unit of the
	// representation. Pass-through, like CrossoverRate.
	MutationRate float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`

	// TournamentSize is how many candidates enter one tournament
	// selection event. Used by the Tournament helper.
	TournamentSize int `yaml:"tournament_size" validate:"gt=0"`

	// ConvergenceThreshold enables early termination when > 0: the run
	// stops once the best fitness has not improved by more than this
	// amount for StagnationLimit consecutive generations.
	ConvergenceThreshold float64 `yaml:"convergence_threshold" validate:"gte=0"`

	// StagnationLimit is the number of consecutive non-improving
	// generations tolerated before convergence termination.
	StagnationLimit int `yaml:"stagnation_limit" validate:"gte=0"`

	// Seed fixes the engine's random source for reproducible runs.
	// Zero means seed from the clock.
	Seed int64 `yaml:"seed"`

	// Concurrency bounds the worker pools used for scoring and
	// reproduction. Zero means one worker per hardware thread.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`

	// SentinelFitness is assigned to a candidate whose evaluation failed.
	// Defaults to negative infinity so failed candidates rank last.
	SentinelFitness float64 `yaml:"sentinel_fitness"`
}

var validate = validator.New()

// DefaultParameters returns a Parameters value with workable defaults.
// Callers should start from here and override, so that zero-value fields
// such as SentinelFitness keep their intended meaning.
func DefaultParameters() Parameters {
	return Parameters{
		PopulationSize:       20,
		MaxGenerations:       10,
		ElitismRate:          0.1,
		CrossoverRate:        0.7,
		MutationRate:         0.3,
		TournamentSize:       3,
		ConvergenceThreshold: 0,
		StagnationLimit:      0,
		Seed:                 0,
		Concurrency:          0,
		SentinelFitness:      math.Inf(-1),
	}
}

// Validate checks the parameter bundle before a run starts. All failures
// carry the InvalidConfiguration code.
func (p *Parameters) Validate() error {
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(err, errors.InvalidConfiguration, "invalid parameters")
	}
	if p.ConvergenceThreshold > 0 && p.StagnationLimit <= 0 {
		return errors.New(errors.InvalidConfiguration,
			"convergence_threshold requires a positive stagnation_limit")
	}
	return nil
}

// EffectiveConcurrency resolves the worker pool bound, substituting the
// number of hardware threads when Concurrency is zero.
func (p *Parameters) EffectiveConcurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// ConvergenceEnabled reports whether stagnation-based termination applies.
func (p *Parameters) ConvergenceEnabled() bool {
	return p.ConvergenceThreshold > 0 && p.StagnationLimit > 0
}

// ParseParameters decodes YAML over the defaults and validates the result,
// so a partial document only overrides the keys it names.
func ParseParameters(data []byte) (Parameters, error) {
	params := DefaultParameters()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Parameters{}, errors.Wrap(err, errors.InvalidConfiguration, "failed to decode parameters")
	}
	if err := params.Validate(); err != nil {
		return Parameters{}, err
	}
	return params, nil
}

// LoadParameters reads and parses a YAML parameter file.
func LoadParameters(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, errors.Wrap(err, errors.InvalidConfiguration, "failed to read parameter file")
	}
	return ParseParameters(data)
}
