package sa

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/neighborhood"
	"jobShop/internal/opt"
)

// Solver - имитация отжига: случайный ход из окрестности
// Новицкого-Смутницкого и критерий Метрополиса.
type Solver struct {
	Cfg    Config
	Rng    *rand.Rand
	Base   opt.Optimizer
	Logger *log.Logger
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
func New(cfg Config, rng *rand.Rand, base opt.Optimizer) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if base == nil {
		return nil, fmt.Errorf("базовый солвер не задан (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng, Base: base}, nil
}

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if s.Base == nil {
		return opt.Result{}, fmt.Errorf("базовый солвер не задан (nil)")
	}

	base, err := s.Base.Solve(ctx, inst)
	if err != nil {
		return opt.Result{}, fmt.Errorf("базовый солвер: %w", err)
	}
	curr, err := jobshop.ResourceOrderFromSchedule(base.Schedule)
	if err != nil {
		return opt.Result{}, err
	}

	eval, err := jobshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	nbh, err := neighborhood.NewNowicki(inst)
	if err != nil {
		return opt.Result{}, err
	}
	nbh.Logger = s.Logger

	currCost, ok := eval.Makespan(curr)
	if !ok {
		return opt.Result{}, jobshop.ErrInfeasible
	}
	best := curr.Copy()
	bestCost := currCost
	evals := base.Evaluations + 1
	makespans := []int{currCost}
	T := s.Cfg.InitialTemp

	finish := func(cause opt.ExitCause, iterations int) (opt.Result, error) {
		sched, ok := eval.Schedule(best)
		if !ok {
			return opt.Result{}, jobshop.ErrInfeasible
		}
		return opt.Result{
			Instance:    inst,
			Schedule:    sched,
			Cause:       cause,
			Evaluations: evals + nbh.Evaluations,
			Iterations:  iterations,
			Duration:    time.Since(start),
			Makespans:   makespans,
			Meta: map[string]any{
				"base_makespan": base.Makespan(),
				"initial_temp":  s.Cfg.InitialTemp,
				"final_temp":    s.Cfg.FinalTemp,
				"alpha":         s.Cfg.Alpha,
				"T":             T,
			},
		}, nil
	}

	iter := 0
	for ; iter < s.Cfg.Iterations && T > s.Cfg.FinalTemp; iter++ {
		if opt.Expired(ctx) {
			return finish(opt.Timeout, iter)
		}

		swaps, err := nbh.Generate(curr)
		if err != nil {
			return opt.Result{}, err
		}
		if len(swaps) == 0 {
			return finish(opt.Blocked, iter)
		}
		swap := swaps[s.Rng.Intn(len(swaps))]

		candCost, ok, err := neighborhood.Evaluate(eval, curr, swap)
		if err != nil {
			return opt.Result{}, err
		}
		evals++

		delta := candCost - currCost
		accept := false
		if ok && delta <= 0 {
			// Улучшающее решение принимаем всегда
			accept = true
		} else if ok {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений
			p := math.Exp(-float64(delta) / T)
			if s.Rng.Float64() < p {
				accept = true
			}
		}

		if accept {
			if err := swap.Apply(curr); err != nil {
				return opt.Result{}, err
			}
			currCost = candCost
			makespans = append(makespans, currCost)

			// Обновление глобально лучшего решения
			if currCost < bestCost {
				bestCost = currCost
				best = curr.Copy()
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	return finish(opt.MaxIteration, iter)
}
