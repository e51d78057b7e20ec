package descent

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/neighborhood"
	"jobShop/internal/opt"
)

// maxInt используется как бесконечность для стоимостей.
const maxInt = int(^uint(0) >> 1)

// Solver - наискорейший спуск по окрестности Новицкого-Смутницкого.
type Solver struct {
	Cfg    Config
	Base   opt.Optimizer
	Logger *log.Logger
}

// New возвращает солвер спуска; начальное решение строит base.
func New(cfg Config, base opt.Optimizer) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("базовый солвер не задан (nil)")
	}
	return &Solver{Cfg: cfg, Base: base}, nil
}

// Solve - основной цикл: оценить всех соседей, принять лучшего,
// если он строго улучшает текущее решение, иначе остановиться.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Base == nil {
		return opt.Result{}, fmt.Errorf("базовый солвер не задан (nil)")
	}

	// Начальное решение
	base, err := s.Base.Solve(ctx, inst)
	if err != nil {
		return opt.Result{}, fmt.Errorf("базовый солвер: %w", err)
	}
	ro, err := jobshop.ResourceOrderFromSchedule(base.Schedule)
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

	currCost, ok := eval.Makespan(ro)
	if !ok {
		return opt.Result{}, jobshop.ErrInfeasible
	}
	evals := base.Evaluations + 1
	makespans := []int{currCost}

	finish := func(cause opt.ExitCause, steps int) (opt.Result, error) {
		sched, ok := eval.Schedule(ro)
		if !ok {
			return opt.Result{}, jobshop.ErrInfeasible
		}
		return opt.Result{
			Instance:    inst,
			Schedule:    sched,
			Cause:       cause,
			Evaluations: evals + nbh.Evaluations,
			Iterations:  steps,
			Duration:    time.Since(start),
			Makespans:   makespans,
			Meta: map[string]any{
				"base_makespan":  base.Makespan(),
				"rejected_moves": nbh.Rejected,
			},
		}, nil
	}

	for step := 0; ; step++ {
		// Дедлайн проверяется только в начале итерации
		if opt.Expired(ctx) {
			return finish(opt.Timeout, step)
		}
		if s.Cfg.MaxSteps > 0 && step >= s.Cfg.MaxSteps {
			return finish(opt.MaxIteration, step)
		}

		swaps, err := nbh.Generate(ro)
		if err != nil {
			return opt.Result{}, err
		}
		// Пустая окрестность - локальный оптимум
		if len(swaps) == 0 {
			return finish(opt.Blocked, step)
		}

		// Каждый ход применяется, оценивается и сразу откатывается.
		// При равенстве побеждает ход, сгенерированный раньше.
		bestMove := -1
		bestMoveCost := maxInt
		for i, swap := range swaps {
			cost, ok, err := neighborhood.Evaluate(eval, ro, swap)
			if err != nil {
				return opt.Result{}, err
			}
			evals++
			if !ok {
				continue
			}
			if cost < bestMoveCost {
				bestMoveCost = cost
				bestMove = i
			}
		}

		if bestMove < 0 || bestMoveCost >= currCost {
			return finish(opt.Blocked, step)
		}

		if err := swaps[bestMove].Apply(ro); err != nil {
			return opt.Result{}, err
		}
		currCost = bestMoveCost
		makespans = append(makespans, currCost)
	}
}
