package jobshop

import "errors"

var (
	ErrAssignmentMismatch = errors.New("assignment mismatch")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInfeasible         = errors.New("infeasible resource order")
	ErrIncompleteOrder    = errors.New("incomplete resource order")
)
