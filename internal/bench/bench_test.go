package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/greedy"
	"jobShop/internal/opt"
)

func TestCalcStats(t *testing.T) {
	s := CalcStats([]int{4, 2, 6})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2.0, s.Best)
	assert.Equal(t, 4.0, s.Mean)
	assert.InDelta(t, 2.0, s.Std, 1e-9)

	single := CalcStats([]float64{1.5})
	assert.Equal(t, 0.0, single.Std)
	assert.Equal(t, 1.5, single.Best)

	assert.Equal(t, Stats{}, CalcStats([]int{}))
}

func TestParsePairs(t *testing.T) {
	cases, err := ParsePairs([]string{"6x3", " 4 x 2 "}, 777)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, 6, cases[0].Instance.Jobs)
	assert.Equal(t, 3, cases[0].Instance.Machines)
	assert.Equal(t, 2, cases[1].Instance.Machines)

	again, err := ParsePairs([]string{"6x3"}, 777)
	require.NoError(t, err)
	assert.Equal(t, cases[0].Instance, again[0].Instance)

	for _, bad := range []string{"6", "ax3", "6xb", "0x3"} {
		_, err := ParsePairs([]string{bad}, 1)
		assert.Error(t, err, bad)
	}
}

func TestRunCaseAndCSV(t *testing.T) {
	// Arrange
	algo := Algorithm{
		Name: "greedy",
		Factory: func(int64) (opt.Optimizer, error) {
			return greedy.New(greedy.DefaultConfig())
		},
	}
	runner := Runner{Runs: 3, BaseSeed: 1}

	// Act
	rec, err := runner.RunCase(context.Background(), RandomCase(5, 3, 9), algo)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Runs)
	assert.Equal(t, 3, rec.Causes[opt.Blocked])
	assert.Equal(t, float64(rec.MakespanBest), rec.MakespanMean)
	assert.Equal(t, 0.0, rec.MakespanStd)

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteCSV(path, []Record{rec}))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "greedy", rows[1][0])
	assert.Equal(t, "3", rows[1][11])
}
