// Package testutil provides shared testify mocks for the capability
// interfaces consumed by the engine.
package testutil

import (
	"context"
	"math/rand"

	"github.com/XiaoConstantine/algen-go/pkg/core"
	"github.com/stretchr/testify/mock"
)

// MockAlgorithm is a testify mock for core.Algorithm.
type MockAlgorithm[D, S any] struct {
	mock.Mock
}

func (m *MockAlgorithm[D, S]) Allocate(ctx context.Context, input D, params *core.Parameters) (S, error) {
	args := m.Called(ctx, input, params)
	return args.Get(0).(S), args.Error(1)
}

func (m *MockAlgorithm[D, S]) Reproduce(ctx context.Context, input D, ranked []core.Node[S], params *core.Parameters, rng *rand.Rand) (S, error) {
	args := m.Called(ctx, input, ranked, params, rng)
	return args.Get(0).(S), args.Error(1)
}

// MockAnalyzer is a testify mock for core.Analyzer.
type MockAnalyzer[D, S any] struct {
	mock.Mock
}

func (m *MockAnalyzer[D, S]) Evaluate(ctx context.Context, input D, candidate S) (float64, error) {
	args := m.Called(ctx, input, candidate)
	return args.Get(0).(float64), args.Error(1)
}
