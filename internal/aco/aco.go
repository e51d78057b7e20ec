package aco

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Solver - муравьиный алгоритм. Муравей строит последовательность номеров
// работ, феромон лежит на переходах "работа -> следующая работа".
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый ACO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	startTime := time.Now()

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

	n := inst.Jobs
	size := inst.Size()

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerJob * n
	}

	// чем меньше суммарная работа - тем лучше
	eta := make([]float64, n)
	for j := 0; j < n; j++ {
		eta[j] = 1.0 / float64(inst.Remaining(j, 0)+1)
	}

	// Матрица феромонов, строка n - фиктивный старт
	tau := make([]float64, (n+1)*n)
	for i := range tau {
		tau[i] = s.Cfg.Tau0
	}

	// Вспомогательные буферы
	seq := make(jobshop.JobNumbers, size)
	available := make([]int, n)
	left := make([]int, n)
	weights := make([]float64, n)

	bestSeq := make(jobshop.JobNumbers, size)
	bestCost := math.MaxInt
	iterBestSeq := make(jobshop.JobNumbers, size)
	evals := 0
	var makespans []int

	alpha := s.Cfg.Alpha
	beta := s.Cfg.Beta
	rho := s.Cfg.Rho
	Q := s.Cfg.Q

	finish := func(cause opt.ExitCause, iterations int) (opt.Result, error) {
		ro, err := bestSeq.ToResourceOrder(inst)
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
			Duration:    time.Since(startTime),
			Makespans:   makespans,
			Meta: map[string]any{
				"ants":        s.Cfg.Ants,
				"alpha":       alpha,
				"beta":        beta,
				"rho":         rho,
				"Q":           Q,
				"tau0":        s.Cfg.Tau0,
				"candidate_k": s.Cfg.CandidateK,
			},
		}, nil
	}

	for iter := 0; iter < maxIter; iter++ {
		// Первая итерация выполняется всегда: без неё нет ни одного решения
		if iter > 0 && opt.Expired(ctx) {
			return finish(opt.Timeout, iter)
		}

		iterBestCost := math.MaxInt

		// Муравьи пошли
		for a := 0; a < s.Cfg.Ants; a++ {
			constructSequence(
				n, inst.Tasks, tau, eta,
				alpha, beta,
				s.Cfg.CandidateK,
				s.Rng,
				seq, available, left, weights,
			)

			cost, err := score(seq)
			if err != nil {
				return opt.Result{}, err
			}
			evals++

			if cost < iterBestCost {
				iterBestCost = cost
				copy(iterBestSeq, seq)
			}
			if cost < bestCost {
				bestCost = cost
				copy(bestSeq, seq)
				makespans = append(makespans, bestCost)
			}
		}

		// Испарение феромона
		ev := 1.0 - rho
		for i := range tau {
			tau[i] *= ev
			if tau[i] < 1e-12 {
				tau[i] = 1e-12
			}
		}

		// Добавление феромона только по лучшему пути итерации
		dep := Q / float64(iterBestCost+1)
		addPheromonePath(tau, n, iterBestSeq, dep)
	}

	return finish(opt.MaxIteration, maxIter)
}

func tauIdx(n, from, to int) int {
	return from*n + to
}

// addPheromonePath усиливает феромон вдоль последовательности
// от фиктивного старта до последней операции.
func addPheromonePath(tau []float64, n int, seq jobshop.JobNumbers, delta float64) {
	if len(seq) == 0 {
		return
	}
	tau[tauIdx(n, n, seq[0])] += delta
	for i := 0; i < len(seq)-1; i++ {
		tau[tauIdx(n, seq[i], seq[i+1])] += delta
	}
}

// constructSequence строит одну последовательность номеров работ.
// Работа остаётся доступной, пока не выбрана tasks раз.
func constructSequence(
	n int,
	tasks int,
	tau []float64,
	eta []float64,
	alpha float64,
	beta float64,
	candidateK int,
	rng *rand.Rand,
	out jobshop.JobNumbers,
	available []int,
	left []int,
	weights []float64,
) {
	for j := 0; j < n; j++ {
		available[j] = j
		left[j] = tasks
	}
	rem := n

	prev := n // prev - предыдущая вершина

	for pos := range out {
		// Ограничение списка кандидатов
		k := rem
		if candidateK > 0 && candidateK < rem {
			k = candidateK
			for t := 0; t < k; t++ {
				r := t + rng.Intn(rem-t)
				available[t], available[r] = available[r], available[t]
			}
		}

		sumW := 0.0
		for i := 0; i < k; i++ {
			j := available[i]
			w := fastPow(tau[tauIdx(n, prev, j)], alpha) * fastPow(eta[j], beta)
			weights[i] = w
			sumW += w
		}

		// Стохастический выбор следующей работы
		var chosenIdx int
		if sumW <= 0 {
			chosenIdx = rng.Intn(k)
		} else {
			r := rng.Float64() * sumW
			acc := 0.0
			chosenIdx = k - 1
			for i := 0; i < k; i++ {
				acc += weights[i]
				if r <= acc {
					chosenIdx = i
					break
				}
			}
		}

		job := available[chosenIdx]
		out[pos] = job
		prev = job

		left[job]--
		if left[job] == 0 {
			available[chosenIdx], available[rem-1] = available[rem-1], available[chosenIdx]
			rem--
		}
	}
}

// fastPow - избегаем вызова math.Pow в простых случаях.
func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
