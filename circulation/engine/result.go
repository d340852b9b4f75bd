package engine

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

// Empty is the payload of operations that only report success or failure.
type Empty struct{}

// Result is the outcome of an engine operation.
// Err is nil exactly when Success is true; it carries the kinds of core (ErrNotFound, ErrInvalidTransition, ...).
type Result[T any] struct {
	Success     bool
	Payload     T
	Description string
	Err         error
}

func succeeded[T any](payload T, description string) Result[T] {
	return Result[T]{
		Success:     true,
		Payload:     payload,
		Description: description,
	}
}

func failed[T any](err error) Result[T] {
	return Result[T]{
		Description: core.DescriptionOf(err),
		Err:         err,
	}
}

func resultOf(err error, successDescription string) Result[Empty] {
	if err != nil {
		return failed[Empty](err)
	}

	return succeeded(Empty{}, successDescription)
}
