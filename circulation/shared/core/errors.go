package core

import (
	"errors"
)

var (
	// ErrNotFound means a referenced book, patron, transaction or notification does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means the operation is not permitted given the current status of the book.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConflict means a concurrent writer won the race on the same book.
	ErrConflict = errors.New("conflict")

	// ErrStoreFailure means the underlying persistence failed for infrastructure reasons.
	ErrStoreFailure = errors.New("store failure")
)

// Rejection is a business rule rejection with a human-readable description.
//
// Error returns the description verbatim, errors.Is matches the Kind and the optional Cause.
type Rejection struct {
	Kind        error
	Description string
	Cause       error
}

func (r Rejection) Error() string {
	return r.Description
}

func (r Rejection) Unwrap() []error {
	if r.Cause == nil {
		return []error{r.Kind}
	}

	return []error{r.Kind, r.Cause}
}

// NotFound builds a Rejection of kind ErrNotFound.
func NotFound(description string) Rejection {
	return Rejection{Kind: ErrNotFound, Description: description}
}

// InvalidTransition builds a Rejection of kind ErrInvalidTransition.
func InvalidTransition(description string) Rejection {
	return Rejection{Kind: ErrInvalidTransition, Description: description}
}

// LostRace builds the Rejection for a concurrency conflict that survived the retry.
// It is an InvalidTransition for the caller and still matches ErrConflict and the cause.
func LostRace(cause error) Rejection {
	return Rejection{
		Kind:        ErrInvalidTransition,
		Description: DescriptionCurrentlyUnavailable,
		Cause:       errors.Join(ErrConflict, cause),
	}
}

// StoreFailure joins err with ErrStoreFailure.
func StoreFailure(err error) error {
	return errors.Join(ErrStoreFailure, err)
}

// DescriptionOf returns the human-readable text for err.
// Errors which are not a Rejection map to the generic failure description.
func DescriptionOf(err error) string {
	if err == nil {
		return ""
	}

	var rejection Rejection
	if errors.As(err, &rejection) {
		return rejection.Description
	}

	return DescriptionGenericFailure
}
