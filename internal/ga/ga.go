package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Solver - генетический алгоритм над последовательностями номеров работ.
// Любая такая последовательность декодируется в допустимое решение.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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
	start := time.Now()

	// Проверка корректности входных данных и конфигурации
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

	size := inst.Size()
	popSize := s.Cfg.Population

	// Вспомогательная анонимная функция для создания популяции с общим буфером
	makeSeqs := func() []jobshop.JobNumbers {
		backing := make([]int, popSize*size)
		seqs := make([]jobshop.JobNumbers, popSize)
		for i := 0; i < popSize; i++ {
			seqs[i] = backing[i*size : (i+1)*size]
		}
		return seqs
	}

	// Две популяции: текущая (A) и следующая (B)
	seqsA := makeSeqs()
	seqsB := makeSeqs()
	scoresA := make([]int, popSize)
	scoresB := make([]int, popSize)

	// Инициализация начальной популяции
	initial := jobshop.NewJobNumbers(inst)
	for i := 0; i < popSize; i++ {
		copy(seqsA[i], initial)
		shuffleSequence(seqsA[i], s.Rng)
		ms, err := score(seqsA[i])
		if err != nil {
			return opt.Result{}, err
		}
		scoresA[i] = ms
	}
	evaluations := popSize

	// Поиск лучшего решения в начальной популяции
	bestSeq := make(jobshop.JobNumbers, size)
	bestMakespan := scoresA[0]
	copy(bestSeq, seqsA[0])
	for i := 1; i < popSize; i++ {
		if scoresA[i] < bestMakespan {
			bestMakespan = scoresA[i]
			copy(bestSeq, seqsA[i])
		}
	}
	makespans := []int{bestMakespan}

	meta := map[string]any{
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"elite":       s.Cfg.Elite,
	}
	finish := func(cause opt.ExitCause, gens int) (opt.Result, error) {
		res, err := toResult(inst, eval, bestSeq, cause, evaluations, gens, makespans, meta)
		res.Duration = time.Since(start)
		return res, err
	}

	// mark и stamp отмечают работы, выбранные в кроссовере
	mark := make([]int, inst.Jobs)
	stamp := 0

	// Временный буфер для второго потомка,
	// если в популяции остаётся нечётное число мест
	scratchChild := make(jobshop.JobNumbers, size)

	// Индексы для сортировки популяции по приспособленности
	idxs := make([]int, popSize)
	for i := range idxs {
		idxs[i] = i
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		if opt.Expired(ctx) {
			return finish(opt.Timeout, gen)
		}

		// Сортировка индексов по возрастанию значения целевой функции
		sort.Slice(idxs, func(i, j int) bool {
			return scoresA[idxs[i]] < scoresA[idxs[j]]
		})

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for e := 0; e < s.Cfg.Elite; e++ {
			src := idxs[e]
			copy(seqsB[write], seqsA[src])
			scoresB[write] = scoresA[src]
			write++
		}

		improved := false
		accept := func(child jobshop.JobNumbers) error {
			ms, err := score(child)
			if err != nil {
				return err
			}
			scoresB[write] = ms
			evaluations++
			if ms < bestMakespan {
				bestMakespan = ms
				copy(bestSeq, child)
				improved = true
			}
			write++
			return nil
		}

		// Генерация остальных особей нового поколения
		for write < popSize {
			// Турнирный отбор
			p1 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			p2 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			for p2 == p1 {
				p2 = tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			}

			child1 := seqsB[write]
			hasSecond := write+1 < popSize
			child2 := scratchChild
			if hasSecond {
				child2 = seqsB[write+1]
			}

			// Кроссовер
			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				jobOrderCrossover(seqsA[p1], seqsA[p2], child1, child2, inst.Jobs, s.Rng, mark, &stamp)
			} else {
				copy(child1, seqsA[p1])
				if hasSecond {
					copy(child2, seqsA[p2])
				}
			}

			// Мутация
			if s.Rng.Float64() < s.Cfg.MutationRate {
				mutateSwap(child1, s.Rng)
			}
			if hasSecond && s.Rng.Float64() < s.Cfg.MutationRate {
				mutateSwap(child2, s.Rng)
			}

			if err := accept(child1); err != nil {
				return opt.Result{}, err
			}
			if hasSecond {
				if err := accept(child2); err != nil {
					return opt.Result{}, err
				}
			}
		}
		if improved {
			makespans = append(makespans, bestMakespan)
		}

		// Смена поколений
		seqsA, seqsB = seqsB, seqsA
		scoresA, scoresB = scoresB, scoresA
	}

	return finish(opt.MaxIteration, s.Cfg.Generations)
}
