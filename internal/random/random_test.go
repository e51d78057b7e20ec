package random

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/jobshop"
)

func TestRandomSolverIsFeasibleAndSeeded(t *testing.T) {
	inst := jobshop.RandomInstance(10, 5, 1, 99, rand.New(rand.NewSource(1)))

	a, err := New(rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := New(rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	ra, err := a.Solve(context.Background(), inst)
	require.NoError(t, err)
	rb, err := b.Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.True(t, ra.Schedule.IsValid())
	assert.Equal(t, ra.Makespan(), rb.Makespan())
}

func TestNewRequiresRng(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
