package engine

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/XiaoConstantine/algen-go/pkg/core"
	"github.com/XiaoConstantine/algen-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAssignsFitnessToEverySlot(t *testing.T) {
	params := testParams()
	e, err := New[float64, float64](params, hillClimb{}, identityAnalyzer)
	require.NoError(t, err)

	nodes := make([]core.Node[float64], params.PopulationSize)
	for i := range nodes {
		nodes[i] = core.Node[float64]{Solution: float64(i) * 10}
	}
	pop := &Population[float64]{nodes: nodes}

	failures, err := e.score(context.Background(), 0, pop)
	require.NoError(t, err)
	assert.Empty(t, failures)

	for i, node := range pop.nodes {
		assert.Equal(t, float64(i)*10, node.Fitness, "slot %d", i)
		assert.NoError(t, node.Err)
	}
	assert.True(t, pop.scored)
}

func TestScoreSentinelOnFailure(t *testing.T) {
	params := testParams()

	// Candidates with negative values fail scoring.
	picky := core.AnalyzerFunc[float64, float64](
		func(ctx context.Context, input float64, candidate float64) (float64, error) {
			if candidate < 0 {
				return 0, stderrors.New("bad candidate")
			}
			return candidate, nil
		})

	e, err := New[float64, float64](params, hillClimb{}, picky)
	require.NoError(t, err)

	nodes := []core.Node[float64]{
		{Solution: 1}, {Solution: -1}, {Solution: 2}, {Solution: -2},
		{Solution: 3}, {Solution: 4}, {Solution: 5}, {Solution: 6},
	}
	pop := &Population[float64]{nodes: nodes}

	failures, err := e.score(context.Background(), 0, pop)
	require.NoError(t, err)
	require.Len(t, failures, 2)

	assert.Equal(t, 1, failures[0].Slot)
	assert.Equal(t, 3, failures[1].Slot)
	assert.True(t, math.IsInf(pop.nodes[1].Fitness, -1), "failed slot takes the sentinel fitness")
	assert.True(t, math.IsInf(pop.nodes[3].Fitness, -1))
	assert.Equal(t, errors.ScoringFailed, errors.Code(pop.nodes[1].Err))
}

func TestScoreConfigurableSentinel(t *testing.T) {
	params := testParams()
	params.PopulationSize = 2
	params.SentinelFitness = -1000

	broken := core.AnalyzerFunc[float64, float64](
		func(ctx context.Context, input float64, candidate float64) (float64, error) {
			if candidate == 1 {
				return 0, stderrors.New("bad candidate")
			}
			return candidate, nil
		})

	e, err := New[float64, float64](params, hillClimb{}, broken)
	require.NoError(t, err)

	pop := &Population[float64]{nodes: []core.Node[float64]{{Solution: 1}, {Solution: 2}}}

	failures, err := e.score(context.Background(), 0, pop)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, -1000.0, pop.nodes[0].Fitness)
}

func TestScoreRecoversAnalyzerPanic(t *testing.T) {
	params := testParams()

	panicky := core.AnalyzerFunc[float64, float64](
		func(ctx context.Context, input float64, candidate float64) (float64, error) {
			if candidate == 2 {
				panic("analyzer exploded")
			}
			return candidate, nil
		})

	e, err := New[float64, float64](params, hillClimb{}, panicky)
	require.NoError(t, err)

	pop := &Population[float64]{nodes: []core.Node[float64]{
		{Solution: 1}, {Solution: 2}, {Solution: 3}, {Solution: 4},
		{Solution: 5}, {Solution: 6}, {Solution: 7}, {Solution: 8},
	}}

	failures, err := e.score(context.Background(), 0, pop)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Slot)
	assert.Contains(t, failures[0].Err.Error(), "analyzer panic")
}

func TestScoreExhaustedWhenAllFail(t *testing.T) {
	broken := core.AnalyzerFunc[float64, float64](
		func(ctx context.Context, input float64, candidate float64) (float64, error) {
			return 0, stderrors.New("all down")
		})

	e, err := New[float64, float64](testParams(), hillClimb{}, broken)
	require.NoError(t, err)

	pop := &Population[float64]{nodes: make([]core.Node[float64], 8), generation: 5}

	_, err = e.score(context.Background(), 0, pop)
	require.Error(t, err)
	assert.Equal(t, errors.ScoringExhausted, errors.Code(err))

	var structured *errors.Error
	require.True(t, stderrors.As(err, &structured))
	assert.Equal(t, 5, structured.Fields()["generation"])
}
