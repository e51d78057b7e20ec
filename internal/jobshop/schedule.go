package jobshop

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type Schedule struct {
	inst   *Instance
	starts []int
	// order[m] lists the operations of machine m in processing order.
	order [][]Operation
	// position of each operation (by ID) in its machine sequence.
	slot []int
}

// NewSchedule wraps explicit start times; machine sequences follow the start times.
func NewSchedule(inst *Instance, starts []int) (*Schedule, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if len(starts) != inst.Size() {
		return nil, fmt.Errorf("starts length must be jobs*tasks=%d (got %d)", inst.Size(), len(starts))
	}
	order := make([][]Operation, inst.Machines)
	for j := 0; j < inst.Jobs; j++ {
		for i := 0; i < inst.Tasks; i++ {
			m := inst.Machine(j, i)
			order[m] = append(order[m], Operation{Job: j, Index: i})
		}
	}
	for _, seq := range order {
		sort.SliceStable(seq, func(a, b int) bool {
			oa, ob := seq[a], seq[b]
			sa, sb := starts[inst.ID(oa)], starts[inst.ID(ob)]
			if sa != sb {
				return sa < sb
			}
			return sa+inst.DurationOf(oa) < sb+inst.DurationOf(ob)
		})
	}
	st := make([]int, len(starts))
	copy(st, starts)
	return newSchedule(inst, st, order), nil
}

func newSchedule(inst *Instance, starts []int, order [][]Operation) *Schedule {
	slot := make([]int, inst.Size())
	for _, seq := range order {
		for pos, op := range seq {
			slot[inst.ID(op)] = pos
		}
	}
	return &Schedule{inst: inst, starts: starts, order: order, slot: slot}
}

func (s *Schedule) Instance() *Instance {
	return s.inst
}

func (s *Schedule) Start(job, index int) int {
	return s.starts[job*s.inst.Tasks+index]
}

func (s *Schedule) StartOf(op Operation) int {
	return s.starts[s.inst.ID(op)]
}

func (s *Schedule) EndOf(op Operation) int {
	return s.StartOf(op) + s.inst.DurationOf(op)
}

func (s *Schedule) Makespan() int {
	ms := 0
	for j := 0; j < s.inst.Jobs; j++ {
		for i := 0; i < s.inst.Tasks; i++ {
			if end := s.EndOf(Operation{Job: j, Index: i}); end > ms {
				ms = end
			}
		}
	}
	return ms
}

func (s *Schedule) IsValid() bool {
	for j := 0; j < s.inst.Jobs; j++ {
		prevEnd := 0
		for i := 0; i < s.inst.Tasks; i++ {
			op := Operation{Job: j, Index: i}
			if s.StartOf(op) < prevEnd {
				return false
			}
			prevEnd = s.EndOf(op)
		}
	}
	for _, seq := range s.order {
		byStart := slices.Clone(seq)
		sort.SliceStable(byStart, func(a, b int) bool {
			return s.StartOf(byStart[a]) < s.StartOf(byStart[b])
		})
		for k := 1; k < len(byStart); k++ {
			if s.StartOf(byStart[k]) < s.EndOf(byStart[k-1]) {
				return false
			}
		}
	}
	return true
}

// CriticalPath walks tight edges back from the last-finishing operation.
// When both the machine edge and the job edge are tight, the machine edge wins.
func (s *Schedule) CriticalPath() []Operation {
	var cur Operation
	latest := -1
	for j := 0; j < s.inst.Jobs; j++ {
		for i := 0; i < s.inst.Tasks; i++ {
			op := Operation{Job: j, Index: i}
			if end := s.EndOf(op); end > latest {
				latest = end
				cur = op
			}
		}
	}

	path := []Operation{cur}
	for len(path) <= s.inst.Size() {
		prev, ok := s.tightPredecessor(cur)
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)
	return path
}

func (s *Schedule) tightPredecessor(op Operation) (Operation, bool) {
	start := s.StartOf(op)
	m := s.inst.MachineOf(op)
	if pos := s.slot[s.inst.ID(op)]; pos > 0 {
		prev := s.order[m][pos-1]
		if s.EndOf(prev) == start {
			return prev, true
		}
	}
	if op.Index > 0 {
		prev := Operation{Job: op.Job, Index: op.Index - 1}
		if s.EndOf(prev) == start {
			return prev, true
		}
	}
	return Operation{}, false
}

func (s *Schedule) String() string {
	var b strings.Builder
	for j := 0; j < s.inst.Jobs; j++ {
		fmt.Fprintf(&b, "job %d:", j)
		for i := 0; i < s.inst.Tasks; i++ {
			fmt.Fprintf(&b, " [m%d %d..%d]", s.inst.Machine(j, i), s.Start(j, i), s.Start(j, i)+s.inst.Duration(j, i))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "makespan: %d\n", s.Makespan())
	return b.String()
}
