package jobshop

import "fmt"

// JobNumbers is the operation-based encoding: the k-th occurrence of job j
// stands for operation (j,k).
type JobNumbers []int

func ValidateJobNumbers(seq []int, inst *Instance) error {
	if len(seq) != inst.Size() {
		return fmt.Errorf("job numbers length must be %d (got %d)", inst.Size(), len(seq))
	}
	seen := make([]int, inst.Jobs)
	for i, j := range seq {
		if j < 0 || j >= inst.Jobs {
			return fmt.Errorf("seq[%d]=%d out of range [0,%d)", i, j, inst.Jobs)
		}
		seen[j]++
		if seen[j] > inst.Tasks {
			return fmt.Errorf("job %d appears more than %d times", j, inst.Tasks)
		}
	}
	return nil
}

// NewJobNumbers returns 0..0 1..1 ... with every job repeated Tasks times.
func NewJobNumbers(inst *Instance) JobNumbers {
	seq := make(JobNumbers, 0, inst.Size())
	for j := 0; j < inst.Jobs; j++ {
		for i := 0; i < inst.Tasks; i++ {
			seq = append(seq, j)
		}
	}
	return seq
}

// ToResourceOrder dispatches operations to their machines in sequence order,
// which always yields a feasible order.
func (jn JobNumbers) ToResourceOrder(inst *Instance) (*ResourceOrder, error) {
	if err := ValidateJobNumbers(jn, inst); err != nil {
		return nil, err
	}
	ro, err := NewResourceOrder(inst)
	if err != nil {
		return nil, err
	}
	next := make([]int, inst.Jobs)
	for _, j := range jn {
		if err := ro.Add(Operation{Job: j, Index: next[j]}); err != nil {
			return nil, err
		}
		next[j]++
	}
	return ro, nil
}
