package jobshop

import "fmt"

// Evaluator simulates resource orders into start times, reusing its buffers
// between calls. Not safe for concurrent use.
type Evaluator struct {
	inst        *Instance
	nextPos     []int
	nextIndex   []int
	jobFree     []int
	machineFree []int
	starts      []int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		inst:        inst,
		nextPos:     make([]int, inst.Machines),
		nextIndex:   make([]int, inst.Jobs),
		jobFree:     make([]int, inst.Jobs),
		machineFree: make([]int, inst.Machines),
		starts:      make([]int, inst.Size()),
	}, nil
}

// simulate fills e.starts and reports the makespan. It returns false when the
// order stalls with operations left, i.e. it contains a cycle or is incomplete.
func (e *Evaluator) simulate(ro *ResourceOrder) (int, bool) {
	if ro == nil || ro.inst != e.inst {
		return 0, false
	}
	for m := range e.nextPos {
		e.nextPos[m] = 0
		e.machineFree[m] = 0
	}
	for j := range e.nextIndex {
		e.nextIndex[j] = 0
		e.jobFree[j] = 0
	}

	makespan := 0
	remaining := e.inst.Size()
	for remaining > 0 {
		progressed := false
		for m, seq := range ro.tasks {
			pos := e.nextPos[m]
			if pos >= len(seq) {
				continue
			}
			op := seq[pos]
			if e.nextIndex[op.Job] != op.Index {
				continue
			}
			start := e.jobFree[op.Job]
			if e.machineFree[m] > start {
				start = e.machineFree[m]
			}
			end := start + e.inst.DurationOf(op)
			e.starts[e.inst.ID(op)] = start
			e.jobFree[op.Job] = end
			e.machineFree[m] = end
			e.nextPos[m]++
			e.nextIndex[op.Job]++
			if end > makespan {
				makespan = end
			}
			remaining--
			progressed = true
		}
		if !progressed {
			return 0, false
		}
	}
	return makespan, true
}

func (e *Evaluator) Schedule(ro *ResourceOrder) (*Schedule, bool) {
	if _, ok := e.simulate(ro); !ok {
		return nil, false
	}
	starts := make([]int, len(e.starts))
	copy(starts, e.starts)
	order := make([][]Operation, len(ro.tasks))
	for m, seq := range ro.tasks {
		order[m] = make([]Operation, len(seq))
		copy(order[m], seq)
	}
	return newSchedule(e.inst, starts, order), true
}

func (e *Evaluator) Makespan(ro *ResourceOrder) (int, bool) {
	return e.simulate(ro)
}

func (e *Evaluator) MustMakespan(ro *ResourceOrder) int {
	ms, ok := e.simulate(ro)
	if !ok {
		if ro != nil && !ro.Complete() {
			panic(fmt.Errorf("%w:\n%v", ErrIncompleteOrder, ro))
		}
		panic(fmt.Errorf("%w:\n%v", ErrInfeasible, ro))
	}
	return ms
}
