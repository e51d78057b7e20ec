package greedy

import (
	"context"
	"time"

	"github.com/samber/lo"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Solver - жадный конструктор на основе правила приоритета.
type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// candidate - готовая к размещению операция вместе с её характеристиками.
type candidate struct {
	op        jobshop.Operation
	duration  int
	remaining int
	est       int
}

// Build строит порядок на машинах, добавляя по одной операции за шаг.
// Времена освобождения машин и работ ведутся инкрементально.
func (s *Solver) Build(inst *jobshop.Instance) (*jobshop.ResourceOrder, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return nil, err
	}

	ro, err := jobshop.NewResourceOrder(inst)
	if err != nil {
		return nil, err
	}

	// Фронт: для каждой работы индекс первой неразмещённой операции
	next := make([]int, inst.Jobs)
	jobFree := make([]int, inst.Jobs)
	machineFree := make([]int, inst.Machines)

	// Оставшаяся длительность работы, начиная с текущей операции
	remaining := make([]int, inst.Jobs)
	for j := range remaining {
		remaining[j] = inst.Remaining(j, 0)
	}

	ready := make([]candidate, 0, inst.Jobs)
	for placed := 0; placed < inst.Size(); placed++ {
		ready = ready[:0]
		for j := 0; j < inst.Jobs; j++ {
			if next[j] >= inst.Tasks {
				continue
			}
			op := jobshop.Operation{Job: j, Index: next[j]}
			ready = append(ready, candidate{
				op:        op,
				duration:  inst.DurationOf(op),
				remaining: remaining[j],
				est:       max(jobFree[j], machineFree[inst.MachineOf(op)]),
			})
		}

		chosen := choose(s.Cfg.Priority, ready)

		m := inst.MachineOf(chosen.op)
		if err := ro.AddToMachine(m, chosen.op); err != nil {
			return nil, err
		}
		end := chosen.est + chosen.duration
		jobFree[chosen.op.Job] = end
		machineFree[m] = end
		remaining[chosen.op.Job] -= chosen.duration
		next[chosen.op.Job]++
	}
	return ro, nil
}

// choose выбирает операцию по правилу; при равенстве побеждает первая в фронте.
func choose(p Priority, ready []candidate) candidate {
	if p.restricted() {
		earliest := lo.MinBy(ready, func(a, b candidate) bool { return a.est < b.est }).est
		ready = lo.Filter(ready, func(c candidate, _ int) bool { return c.est == earliest })
	}
	switch p.base() {
	case SPT:
		return lo.MinBy(ready, func(a, b candidate) bool { return a.duration < b.duration })
	case LPT:
		return lo.MaxBy(ready, func(a, b candidate) bool { return a.duration > b.duration })
	case SRPT:
		return lo.MinBy(ready, func(a, b candidate) bool { return a.remaining < b.remaining })
	default:
		return lo.MaxBy(ready, func(a, b candidate) bool { return a.remaining > b.remaining })
	}
}

// Solve строит начальное решение. Жадный алгоритм завершается с причиной Blocked.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	ro, err := s.Build(inst)
	if err != nil {
		return opt.Result{}, err
	}
	eval, err := jobshop.NewEvaluator(inst)
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
		Cause:       opt.Blocked,
		Evaluations: 1,
		Iterations:  inst.Size(),
		Duration:    time.Since(start),
		Meta: map[string]any{
			"priority": string(s.Cfg.Priority),
		},
	}, nil
}
