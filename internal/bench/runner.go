package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Case struct {
	Name     string
	Instance *jobshop.Instance
}

// RandomCase генерирует экземпляр jobs x machines с фиксированным сидом.
func RandomCase(jobs, machines int, seed int64) Case {
	return Case{
		Name:     fmt.Sprintf("rand-%dx%d-%d", jobs, machines, seed),
		Instance: jobshop.RandomInstance(jobs, machines, 1, 99, randForSeed(seed)),
	}
}

type Record struct {
	Algo     string
	Case     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64

	Causes map[opt.ExitCause]int
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst := c.Instance
	if err := inst.Validate(); err != nil {
		return Record{}, fmt.Errorf("case %s: %w", c.Name, err)
	}

	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	causes := make(map[opt.ExitCause]int)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if res.Schedule == nil {
			return Record{}, fmt.Errorf("run %d: %w", i, jobshop.ErrInfeasible)
		}
		if !res.Schedule.IsValid() {
			return Record{}, fmt.Errorf("run %d: invalid schedule", i)
		}

		makespans = append(makespans, res.Makespan())
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		causes[res.Cause]++
	}

	msStats := CalcStats(makespans)
	tStats := CalcStats(timesMs)

	return Record{
		Algo:     algo.Name,
		Case:     c.Name,
		Jobs:     inst.Jobs,
		Machines: inst.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: int(msStats.Best),
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		Causes: causes,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "case", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
		"blocked", "timeout", "max_iteration",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Case,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),

			itoa(r.Causes[opt.Blocked]),
			itoa(r.Causes[opt.Timeout]),
			itoa(r.Causes[opt.MaxIteration]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
