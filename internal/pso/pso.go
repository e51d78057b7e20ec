package pso

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Solver - алгоритм роя частиц с кодированием random-keys:
// ключ с номером id относится к операции id, порядок ключей задаёт
// последовательность номеров работ.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый PSO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// particle описывает одну частицу роя.
type particle struct {
	// pos - позиция частицы
	pos []float64
	// vel - скорость частицы
	vel []float64

	// pBestPos - лучшая позиция частицы за всё время
	pBestPos []float64
	// pBestCost - значение целевой функции в pBestPos
	pBestCost int

	// Вспомогательные буферы
	seqScratch jobshop.JobNumbers
	idxScratch []int
}

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	// Валидация конфигурации
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	// Оценка целевой функции
	eval, err := jobshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	score := func(seq jobshop.JobNumbers) (int, error) {
		ro, err := seq.ToResourceOrder(inst)
		if err != nil {
			return 0, err
		}
		ms, ok := eval.Makespan(ro)
		if !ok {
			return 0, jobshop.ErrInfeasible
		}
		return ms, nil
	}

	n := inst.Size()
	tasks := inst.Tasks

	iters := s.Cfg.Iterations
	if iters <= 0 {
		iters = s.Cfg.IterationsPerOperation * n
	}

	// Инициализация частиц
	ps := make([]particle, s.Cfg.Particles)
	for i := range ps {
		ps[i] = particle{
			pos:        make([]float64, n),
			vel:        make([]float64, n),
			pBestPos:   make([]float64, n),
			pBestCost:  math.MaxInt,
			seqScratch: make(jobshop.JobNumbers, n),
			idxScratch: make([]int, n),
		}
	}

	posMin, posMax := s.Cfg.PosMin, s.Cfg.PosMax
	doPosClamp := posMin < posMax

	// Случайная инициализация позиций и скоростей частиц
	for i := range ps {
		for d := 0; d < n; d++ {
			if doPosClamp {
				ps[i].pos[d] = posMin + s.Rng.Float64()*(posMax-posMin)
			} else {
				ps[i].pos[d] = s.Rng.Float64()
			}
			if s.Cfg.VMax > 0 {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * s.Cfg.VMax
			} else {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * 0.1
			}
		}

		// Оценка начального положения частицы
		decodeRandomKeys(ps[i].pos, tasks, ps[i].seqScratch, ps[i].idxScratch)
		cost, err := score(ps[i].seqScratch)
		if err != nil {
			return opt.Result{}, err
		}

		ps[i].pBestCost = cost
		copy(ps[i].pBestPos, ps[i].pos)
	}

	evals := s.Cfg.Particles

	// Вычисление глобально лучшего решения
	gBestPos := make([]float64, n)
	gBestSeq := make(jobshop.JobNumbers, n)
	gBestCost := math.MaxInt

	for i := range ps {
		if ps[i].pBestCost < gBestCost {
			gBestCost = ps[i].pBestCost
			copy(gBestPos, ps[i].pBestPos)
			decodeRandomKeys(gBestPos, tasks, gBestSeq, make([]int, n))
		}
	}
	makespans := []int{gBestCost}

	w, c1, c2 := s.Cfg.W, s.Cfg.C1, s.Cfg.C2
	vMax := s.Cfg.VMax

	finish := func(cause opt.ExitCause, iterations int) (opt.Result, error) {
		ro, err := gBestSeq.ToResourceOrder(inst)
		if err != nil {
			return opt.Result{}, err
		}
		sched, ok := eval.Schedule(ro)
		if !ok {
			return opt.Result{}, jobshop.ErrInfeasible
		}
		return opt.Result{
			Instance:    inst,
			Schedule:    sched,
			Cause:       cause,
			Evaluations: evals,
			Iterations:  iterations,
			Duration:    time.Since(start),
			Makespans:   makespans,
			Meta: map[string]any{
				"particles": s.Cfg.Particles,
				"w":         w,
				"c1":        c1,
				"c2":        c2,
				"vmax":      vMax,
				"pos_min":   posMin,
				"pos_max":   posMax,
			},
		}, nil
	}

	// Основной цикл
	for iter := 0; iter < iters; iter++ {
		if opt.Expired(ctx) {
			return finish(opt.Timeout, iter)
		}

		for i := range ps {
			p := &ps[i]

			// Обновление скорости и позиции частицы
			for d := 0; d < n; d++ {
				r1 := s.Rng.Float64()
				r2 := s.Rng.Float64()

				v := w*p.vel[d] +
					c1*r1*(p.pBestPos[d]-p.pos[d]) +
					c2*r2*(gBestPos[d]-p.pos[d])

				// Ограничение скорости
				if vMax > 0 {
					if v > vMax {
						v = vMax
					} else if v < -vMax {
						v = -vMax
					}
				}
				p.vel[d] = v

				x := p.pos[d] + v
				if doPosClamp {
					if x < posMin {
						x = posMin
						p.vel[d] = 0
					} else if x > posMax {
						x = posMax
						p.vel[d] = 0
					}
				}
				p.pos[d] = x
			}

			// Оценка нового положения частицы
			decodeRandomKeys(p.pos, tasks, p.seqScratch, p.idxScratch)
			cost, err := score(p.seqScratch)
			if err != nil {
				return opt.Result{}, err
			}
			evals++

			if cost < p.pBestCost {
				p.pBestCost = cost
				copy(p.pBestPos, p.pos)
			}

			if cost < gBestCost {
				gBestCost = cost
				copy(gBestPos, p.pos)
				copy(gBestSeq, p.seqScratch)
				makespans = append(makespans, gBestCost)
			}
		}
	}

	return finish(opt.MaxIteration, iters)
}

// decodeRandomKeys сортирует ключи операций и заменяет каждую операцию
// номером её работы. Последовательность всегда допустима.
func decodeRandomKeys(keys []float64, tasks int, out jobshop.JobNumbers, idxScratch []int) {
	n := len(keys)
	for i := 0; i < n; i++ {
		idxScratch[i] = i
	}
	sort.Slice(idxScratch, func(i, j int) bool {
		a := idxScratch[i]
		b := idxScratch[j]
		ka := keys[a]
		kb := keys[b]
		if ka == kb {
			return a < b
		}
		return ka < kb
	})
	for i := 0; i < n; i++ {
		out[i] = idxScratch[i] / tasks
	}
}
