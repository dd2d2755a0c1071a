package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUpstream     = errors.New("upstream failure")
	ErrData         = errors.New("data error")

	// ErrInvalidRequest is returned when free text is not a coherent trip request.
	ErrInvalidRequest = fmt.Errorf("%w: not a feasible trip request", ErrInvalidInput)
	// ErrNoCandidates means every candidate search failed or came back empty.
	ErrNoCandidates = fmt.Errorf("%w: no candidate places could be resolved", ErrUpstream)
)

// InputError reports malformed or incomplete trip parameters.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// UpstreamError wraps a failed or timed out directory, detail or oracle call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// DataError reports a single record that cannot be used.
type DataError struct {
	PlaceID string
	Reason  string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("place %s: %s", e.PlaceID, e.Reason)
}

func (e *DataError) Unwrap() error { return ErrData }
