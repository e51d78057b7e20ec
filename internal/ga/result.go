package ga

import (
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// toResult декодирует лучшую последовательность в расписание.
func toResult(
	inst *jobshop.Instance,
	eval *jobshop.Evaluator,
	best jobshop.JobNumbers,
	cause opt.ExitCause,
	evals, gens int,
	makespans []int,
	meta map[string]any,
) (opt.Result, error) {
	ro, err := best.ToResourceOrder(inst)
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
		Iterations:  gens,
		Makespans:   makespans,
		Meta:        meta,
	}, nil
}
