package descent

import (
	"context"
	"io"
	"log"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/greedy"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

func twoByTwo(t *testing.T) *jobshop.Instance {
	t.Helper()
	inst, err := jobshop.NewInstance(2, 2, 2, []int{3, 2, 4, 1}, []int{0, 1, 1, 0})
	require.NoError(t, err)
	return inst
}

func newSolver(t *testing.T, cfg Config, p greedy.Priority) *Solver {
	t.Helper()
	base, err := greedy.New(greedy.Config{Priority: p})
	require.NoError(t, err)
	s, err := New(cfg, base)
	require.NoError(t, err)
	s.Logger = log.New(io.Discard, "", 0)
	return s
}

func TestDescentReachesOptimumOfTwoByTwo(t *testing.T) {
	// Arrange
	s := newSolver(t, DefaultConfig(), greedy.SPT)

	// Act
	res, err := s.Solve(context.Background(), twoByTwo(t))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, opt.Blocked, res.Cause)
	assert.Equal(t, 6, res.Makespan())
	assert.Equal(t, []int{10, 6}, res.Makespans)
	assert.True(t, res.Schedule.IsValid())
	// greedy 1 + start 1 + two steps with one swap each, checked and then chosen
	assert.Equal(t, 6, res.Evaluations)
}

func TestDescentMaxSteps(t *testing.T) {
	s := newSolver(t, Config{MaxSteps: 1}, greedy.SPT)

	res, err := s.Solve(context.Background(), twoByTwo(t))

	require.NoError(t, err)
	assert.Equal(t, opt.MaxIteration, res.Cause)
	assert.Equal(t, 6, res.Makespan())
}

func TestDescentTimeout(t *testing.T) {
	s := newSolver(t, DefaultConfig(), greedy.SPT)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, twoByTwo(t))

	require.NoError(t, err)
	assert.Equal(t, opt.Timeout, res.Cause)
	assert.Equal(t, 10, res.Makespan())
}

func TestDescentIsMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for range 5 {
		inst := jobshop.RandomInstance(10, 5, 1, 99, rng)
		s := newSolver(t, DefaultConfig(), greedy.EST_SPT)

		res, err := s.Solve(context.Background(), inst)

		require.NoError(t, err)
		require.NotEmpty(t, res.Makespans)
		for i := 1; i < len(res.Makespans); i++ {
			assert.Less(t, res.Makespans[i], res.Makespans[i-1])
		}
		assert.Equal(t, res.Makespans[len(res.Makespans)-1], res.Makespan())
		assert.LessOrEqual(t, res.Makespan(), res.Meta["base_makespan"].(int))
		assert.True(t, res.Schedule.IsValid())
	}
}

func TestNewRequiresBase(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	assert.Error(t, err)
	_, err = New(Config{MaxSteps: -1}, nil)
	assert.Error(t, err)
}
