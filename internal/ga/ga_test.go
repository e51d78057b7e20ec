package ga

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

func counts(seq jobshop.JobNumbers, jobs int) []int {
	c := make([]int, jobs)
	for _, j := range seq {
		c[j]++
	}
	return c
}

func TestJobOrderCrossoverKeepsMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const jobs, tasks = 5, 4

	p1 := make(jobshop.JobNumbers, 0, jobs*tasks)
	for j := 0; j < jobs; j++ {
		for i := 0; i < tasks; i++ {
			p1 = append(p1, j)
		}
	}
	p2 := slices.Clone(p1)
	shuffleSequence(p1, rng)
	shuffleSequence(p2, rng)

	mark := make([]int, jobs)
	stamp := 0
	c1 := make(jobshop.JobNumbers, len(p1))
	c2 := make(jobshop.JobNumbers, len(p1))

	for k := 0; k < 50; k++ {
		jobOrderCrossover(p1, p2, c1, c2, jobs, rng, mark, &stamp)
		assert.Equal(t, []int{tasks, tasks, tasks, tasks, tasks}, counts(c1, jobs))
		assert.Equal(t, []int{tasks, tasks, tasks, tasks, tasks}, counts(c2, jobs))

		// гены выбранных работ остаются на местах родителя
		for i, gene := range p1 {
			if mark[gene] == stamp {
				assert.Equal(t, gene, c1[i])
			}
		}
	}
}

func TestMutateSwapKeepsMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seq := jobshop.JobNumbers{0, 0, 1, 1, 2, 2}
	for k := 0; k < 20; k++ {
		mutateSwap(seq, rng)
	}
	assert.Equal(t, []int{2, 2, 2}, counts(seq, 3))
}

func TestTournamentSelectPrefersBest(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	scores := []int{50, 10, 40, 30}
	// размер турнира много больше популяции - почти наверняка победит лучший
	assert.Equal(t, 1, tournamentSelect(scores, 64, rng))
}

func TestSolveRandomInstances(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		rng := rand.New(rand.NewSource(seed))
		inst := jobshop.RandomInstance(6, 4, 1, 20, rng)

		cfg := DefaultConfig()
		cfg.Population = 20
		cfg.Generations = 15
		s, err := New(cfg, rng)
		require.NoError(t, err)

		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)

		assert.Equal(t, opt.MaxIteration, res.Cause)
		assert.Equal(t, 15, res.Iterations)
		require.NotNil(t, res.Schedule)
		assert.True(t, res.Schedule.IsValid())
		assert.Equal(t, res.Makespan(), slices.Min(res.Makespans))
		assert.True(t, slices.IsSortedFunc(res.Makespans, func(a, b int) int { return b - a }))
	}
}

func TestSolveExpiredContext(t *testing.T) {
	inst := jobshop.RandomInstance(4, 3, 1, 10, rand.New(rand.NewSource(5)))
	s, err := New(DefaultConfig(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, inst)
	require.NoError(t, err)
	assert.Equal(t, opt.Timeout, res.Cause)
	assert.Equal(t, 0, res.Iterations)
	assert.True(t, res.Schedule.IsValid())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Elite = cfg.Population
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MutationRate = 1.5
	assert.Error(t, cfg.Validate())

	_, err := New(DefaultConfig(), nil)
	assert.Error(t, err)
}
