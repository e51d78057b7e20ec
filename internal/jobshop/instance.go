package jobshop

import (
	"errors"
	"fmt"
	"math/rand"
)

type Operation struct {
	Job   int
	Index int
}

func (o Operation) String() string {
	return fmt.Sprintf("(%d,%d)", o.Job, o.Index)
}

type Instance struct {
	Jobs     int
	Machines int
	Tasks    int
	// Durations and Assignments are indexed by job*Tasks+index.
	Durations   []int
	Assignments []int
}

func NewInstance(jobs, machines, tasks int, durations, assignments []int) (*Instance, error) {
	inst := &Instance{
		Jobs:        jobs,
		Machines:    machines,
		Tasks:       tasks,
		Durations:   durations,
		Assignments: assignments,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("jobs must be > 0 (got %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("machines must be > 0 (got %d)", inst.Machines)
	}
	if inst.Tasks <= 0 {
		return fmt.Errorf("tasks must be > 0 (got %d)", inst.Tasks)
	}
	n := inst.Jobs * inst.Tasks
	if len(inst.Durations) != n {
		return fmt.Errorf("durations length must be jobs*tasks=%d (got %d)", n, len(inst.Durations))
	}
	if len(inst.Assignments) != n {
		return fmt.Errorf("assignments length must be jobs*tasks=%d (got %d)", n, len(inst.Assignments))
	}
	for i, d := range inst.Durations {
		if d < 0 {
			return fmt.Errorf("durations[%d] must be >= 0 (got %d)", i, d)
		}
	}
	for i, m := range inst.Assignments {
		if m < 0 || m >= inst.Machines {
			return fmt.Errorf("assignments[%d]=%d out of range [0,%d)", i, m, inst.Machines)
		}
	}
	return nil
}

func (inst *Instance) Duration(job, index int) int {
	return inst.Durations[job*inst.Tasks+index]
}

func (inst *Instance) Machine(job, index int) int {
	return inst.Assignments[job*inst.Tasks+index]
}

func (inst *Instance) DurationOf(op Operation) int {
	return inst.Duration(op.Job, op.Index)
}

func (inst *Instance) MachineOf(op Operation) int {
	return inst.Machine(op.Job, op.Index)
}

// ID encodes an operation as job*Tasks+index.
func (inst *Instance) ID(op Operation) int {
	return op.Job*inst.Tasks + op.Index
}

func (inst *Instance) Operation(id int) Operation {
	return Operation{Job: id / inst.Tasks, Index: id % inst.Tasks}
}

func (inst *Instance) Contains(op Operation) bool {
	return op.Job >= 0 && op.Job < inst.Jobs && op.Index >= 0 && op.Index < inst.Tasks
}

func (inst *Instance) Size() int {
	return inst.Jobs * inst.Tasks
}

// Remaining is the processing time of the job from index to its end.
func (inst *Instance) Remaining(job, index int) int {
	sum := 0
	for i := index; i < inst.Tasks; i++ {
		sum += inst.Duration(job, i)
	}
	return sum
}

// Load counts the operations assigned to each machine.
func (inst *Instance) Load() []int {
	load := make([]int, inst.Machines)
	for _, m := range inst.Assignments {
		load[m]++
	}
	return load
}

// RandomInstance builds a Taillard-style instance: every job visits every
// machine once, in a random route.
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	n := jobs * machines
	durations := make([]int, n)
	assignments := make([]int, n)
	span := maxTime - minTime + 1
	for j := 0; j < jobs; j++ {
		route := rng.Perm(machines)
		for k := 0; k < machines; k++ {
			durations[j*machines+k] = minTime
			if span > 1 {
				durations[j*machines+k] += rng.Intn(span)
			}
			assignments[j*machines+k] = route[k]
		}
	}
	inst, err := NewInstance(jobs, machines, machines, durations, assignments)
	if err != nil {
		panic(err)
	}
	return inst
}
