package ts

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/neighborhood"
	"jobShop/internal/opt"
)

// maxInt используется как бесконечность для стоимостей.
const maxInt = int(^uint(0) >> 1)

// Solver - табу-поиск по окрестности Новицкого-Смутницкого.
type Solver struct {
	Cfg    Config
	Rng    *rand.Rand
	Base   opt.Optimizer
	Logger *log.Logger
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Начальное решение строит base.
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

// Solve - основной цикл алгоритма
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	// Валидация входных данных
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

	// Начальное решение
	base, err := s.Base.Solve(ctx, inst)
	if err != nil {
		return opt.Result{}, fmt.Errorf("базовый солвер: %w", err)
	}
	return s.search(ctx, inst, base, newTabuMatrix(inst.Size()), start)
}

// search улучшает решение base, начиная с заданного состояния табу-матрицы.
func (s *Solver) search(
	ctx context.Context,
	inst *jobshop.Instance,
	base opt.Result,
	tabu *tabuMatrix,
	start time.Time,
) (opt.Result, error) {
	curr, err := jobshop.ResourceOrderFromSchedule(base.Schedule)
	if err != nil {
		return opt.Result{}, err
	}

	// Оценка целевой функции
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
	evals := base.Evaluations + 1
	makespans := []int{currCost}

	// Глобально лучшее решение - независимая копия
	best := curr.Copy()
	bestCost := currCost
	bestIter := 0

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
				"base_makespan":    base.Makespan(),
				"best_iteration":   bestIter,
				"tabu_tenure":      s.Cfg.TabuTenure,
				"tabu_tenure_rand": s.Cfg.TabuTenureRand,
				"rejected_moves":   nbh.Rejected,
			},
		}, nil
	}

	for iter := 0; iter < s.Cfg.MaxIterations; iter++ {
		// Дедлайн проверяется только в начале итерации
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

		// Лучший допустимый ход
		bestMove := -1
		bestMoveCost := maxInt
		var bestMoveA, bestMoveB int

		for i, swap := range swaps {
			a, b, ok := swap.Operations(curr)
			if !ok {
				continue
			}
			idA, idB := inst.ID(a), inst.ID(b)

			cost, ok, err := neighborhood.Evaluate(eval, curr, swap)
			if err != nil {
				return opt.Result{}, err
			}
			evals++
			if !ok {
				continue
			}

			isTabu := tabu.IsTabu(idA, idB, iter)
			aspiration := cost < bestCost // критерий аспирации

			// Табуированный ход пропускается,
			// если не выполняется критерий аспирации
			if isTabu && !aspiration {
				continue
			}

			if cost < bestMoveCost {
				bestMoveCost = cost
				bestMove = i
				bestMoveA, bestMoveB = idA, idB
			}
		}

		// Все ходы табуированы - ждём истечения запретов
		if bestMove < 0 {
			continue
		}

		// Применение выбранного хода
		if err := swaps[bestMove].Apply(curr); err != nil {
			return opt.Result{}, err
		}
		currCost = bestMoveCost
		makespans = append(makespans, currCost)

		// Запрет обратного обмена той же пары операций
		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		tabu.Forbid(bestMoveA, bestMoveB, iter+tenure)

		// Обновление глобально лучшего решения
		if currCost < bestCost {
			bestCost = currCost
			best = curr.Copy()
			bestIter = iter + 1
		}
	}

	return finish(opt.MaxIteration, s.Cfg.MaxIterations)
}

// tabuMatrix хранит для каждой упорядоченной пары операций
// номер итерации, до которой их обмен запрещён.
type tabuMatrix struct {
	n      int
	expiry []int
}

func newTabuMatrix(n int) *tabuMatrix {
	return &tabuMatrix{n: n, expiry: make([]int, n*n)}
}

// IsTabu - запрет действует, пока срок строго больше текущей итерации.
func (t *tabuMatrix) IsTabu(a, b, iter int) bool {
	return t.expiry[a*t.n+b] > iter || t.expiry[b*t.n+a] > iter
}

// Forbid запрещает обмен пары в обоих порядках до итерации until.
func (t *tabuMatrix) Forbid(a, b, until int) {
	t.expiry[a*t.n+b] = until
	t.expiry[b*t.n+a] = until
}
