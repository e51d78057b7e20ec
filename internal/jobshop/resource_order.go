package jobshop

import (
	"fmt"
	"strings"
)

type ResourceOrder struct {
	inst     *Instance
	capacity []int
	tasks    [][]Operation
}

func NewResourceOrder(inst *Instance) (*ResourceOrder, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	capacity := inst.Load()
	tasks := make([][]Operation, inst.Machines)
	for m := range tasks {
		tasks[m] = make([]Operation, 0, capacity[m])
	}
	return &ResourceOrder{inst: inst, capacity: capacity, tasks: tasks}, nil
}

// ResourceOrderFromSchedule recovers the machine sequences a schedule was built with.
func ResourceOrderFromSchedule(s *Schedule) (*ResourceOrder, error) {
	if s == nil {
		return nil, ErrInfeasible
	}
	ro, err := NewResourceOrder(s.inst)
	if err != nil {
		return nil, err
	}
	for m, seq := range s.order {
		for _, op := range seq {
			if err := ro.AddToMachine(m, op); err != nil {
				return nil, err
			}
		}
	}
	return ro, nil
}

// ToSchedule reconstructs with a throwaway evaluator.
func (ro *ResourceOrder) ToSchedule() (*Schedule, bool) {
	e, err := NewEvaluator(ro.inst)
	if err != nil {
		return nil, false
	}
	return e.Schedule(ro)
}

func (ro *ResourceOrder) Instance() *Instance {
	return ro.inst
}

func (ro *ResourceOrder) AddToMachine(machine int, op Operation) error {
	if machine < 0 || machine >= len(ro.tasks) {
		return fmt.Errorf("%w: machine %d not in [0,%d)", ErrIndexOutOfRange, machine, len(ro.tasks))
	}
	if !ro.inst.Contains(op) {
		return fmt.Errorf("%w: operation %v not in instance", ErrIndexOutOfRange, op)
	}
	if got := ro.inst.MachineOf(op); got != machine {
		return fmt.Errorf("%w: operation %v runs on machine %d, not %d", ErrAssignmentMismatch, op, got, machine)
	}
	if ro.Position(machine, op) >= 0 {
		return fmt.Errorf("%w: operation %v already placed on machine %d", ErrAssignmentMismatch, op, machine)
	}
	if len(ro.tasks[machine]) >= ro.capacity[machine] {
		return fmt.Errorf("%w: machine %d is full (%d operations)", ErrAssignmentMismatch, machine, ro.capacity[machine])
	}
	ro.tasks[machine] = append(ro.tasks[machine], op)
	return nil
}

// Add places op on its own machine.
func (ro *ResourceOrder) Add(op Operation) error {
	if !ro.inst.Contains(op) {
		return fmt.Errorf("%w: operation %v not in instance", ErrIndexOutOfRange, op)
	}
	return ro.AddToMachine(ro.inst.MachineOf(op), op)
}

// Swap is its own inverse.
func (ro *ResourceOrder) Swap(machine, a, b int) error {
	if machine < 0 || machine >= len(ro.tasks) {
		return fmt.Errorf("%w: machine %d not in [0,%d)", ErrIndexOutOfRange, machine, len(ro.tasks))
	}
	seq := ro.tasks[machine]
	if a < 0 || a >= len(seq) || b < 0 || b >= len(seq) {
		return fmt.Errorf("%w: swap (%d,%d) on machine %d with %d operations", ErrIndexOutOfRange, a, b, machine, len(seq))
	}
	seq[a], seq[b] = seq[b], seq[a]
	return nil
}

// TaskAt returns false once position runs past the machine's sequence.
func (ro *ResourceOrder) TaskAt(machine, position int) (Operation, bool) {
	if machine < 0 || machine >= len(ro.tasks) {
		return Operation{}, false
	}
	seq := ro.tasks[machine]
	if position < 0 || position >= len(seq) {
		return Operation{}, false
	}
	return seq[position], true
}

func (ro *ResourceOrder) Position(machine int, op Operation) int {
	for pos, o := range ro.tasks[machine] {
		if o == op {
			return pos
		}
	}
	return -1
}

func (ro *ResourceOrder) Len(machine int) int {
	return len(ro.tasks[machine])
}

func (ro *ResourceOrder) Complete() bool {
	for m, seq := range ro.tasks {
		if len(seq) != ro.capacity[m] {
			return false
		}
	}
	return true
}

func (ro *ResourceOrder) Copy() *ResourceOrder {
	tasks := make([][]Operation, len(ro.tasks))
	for m, seq := range ro.tasks {
		tasks[m] = make([]Operation, len(seq), ro.capacity[m])
		copy(tasks[m], seq)
	}
	capacity := make([]int, len(ro.capacity))
	copy(capacity, ro.capacity)
	return &ResourceOrder{inst: ro.inst, capacity: capacity, tasks: tasks}
}

func (ro *ResourceOrder) Equal(other *ResourceOrder) bool {
	if other == nil || len(ro.tasks) != len(other.tasks) {
		return false
	}
	for m, seq := range ro.tasks {
		if len(seq) != len(other.tasks[m]) {
			return false
		}
		for i, op := range seq {
			if other.tasks[m][i] != op {
				return false
			}
		}
	}
	return true
}

func (ro *ResourceOrder) String() string {
	var b strings.Builder
	for m, seq := range ro.tasks {
		fmt.Fprintf(&b, "machine %d :", m)
		for _, op := range seq {
			b.WriteString(" ")
			b.WriteString(op.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}
