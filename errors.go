package hiddencols

import "errors"

// Argument errors
var (
	// ErrInvalidRange indicates a range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid column range")

	// ErrNegativeColumn indicates a negative column index passed to a mutation.
	ErrNegativeColumn = errors.New("negative column index")

	// ErrInvalidEdit indicates an insert or delete with a non-positive count.
	ErrInvalidEdit = errors.New("invalid column edit")
)

// Iteration errors
var (
	// ErrIteratorDone indicates that Next was called on an exhausted iterator.
	ErrIteratorDone = errors.New("no more items in iterator")
)

// Consistency errors
var (
	// ErrInvariantViolated indicates the interval store failed a consistency check.
	// It should never be returned by a correctly functioning engine.
	ErrInvariantViolated = errors.New("hidden column invariant violated")
)
