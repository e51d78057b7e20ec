package random

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Solver строит случайное допустимое решение через перемешанную
// последовательность номеров работ.
type Solver struct {
	Rng *rand.Rand
}

func New(rng *rand.Rand) (*Solver, error) {
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Rng: rng}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	jn := jobshop.NewJobNumbers(inst)
	shuffle(jn, s.Rng)

	ro, err := jn.ToResourceOrder(inst)
	if err != nil {
		return opt.Result{}, err
	}
	sched, ok := ro.ToSchedule()
	if !ok {
		return opt.Result{}, jobshop.ErrInfeasible
	}

	return opt.Result{
		Instance:    inst,
		Schedule:    sched,
		Cause:       opt.Blocked,
		Evaluations: 1,
		Iterations:  1,
		Duration:    time.Since(start),
	}, nil
}

// shuffle выполняет случайную перестановку элементов.
func shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
