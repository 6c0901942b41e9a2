// Package fetch models the idle/loading/success/error lifecycle that every
// data-bound view goes through, and ties each fetch to a cancellable scope.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
)

// Status is the lifecycle stage of a fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// MarshalText lets Status serialize as its name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Kind classifies a failed fetch.
type Kind string

const (
	KindTransport Kind = "transport" // no response was received
	KindStatus    Kind = "status"    // response received with a non-success status
	KindDecode    Kind = "decode"    // body did not have the expected shape
	KindCanceled  Kind = "canceled"  // the owning scope went away
)

// Error is the typed payload carried by StatusError states.
type Error struct {
	Kind       Kind   `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Retryable is true for failures that may succeed on a later attempt.
// Nothing retries automatically; the state view offers a reload link for them.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTransport:
		return true
	case KindStatus:
		return e.StatusCode >= 500
	}
	return false
}

// statusCoder is implemented by errors that carry an upstream HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// shapeError is implemented by errors that report a malformed response body.
type shapeError interface {
	ShapeError() bool
}

// Classify converts an error returned by a fetch function into an Error.
// The message is the failure text, unmodified.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	e := &Error{Kind: KindTransport, Message: err.Error()}

	var sc statusCoder
	var se shapeError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, context.Canceled):
		e.Kind = KindCanceled
	case errors.As(err, &sc):
		e.Kind = KindStatus
		e.StatusCode = sc.HTTPStatus()
	case errors.As(err, &se) && se.ShapeError(),
		errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		e.Kind = KindDecode
	}
	return e
}

// State is a snapshot of a fetch. Data is nil until a fetch succeeds.
type State[T any] struct {
	Status Status `json:"status"`
	Data   *T     `json:"data,omitempty"`
	Err    *Error `json:"error,omitempty"`
}

// Loading reports whether a request is in flight.
func (s State[T]) Loading() bool { return s.Status == StatusLoading }

// Failed reports whether the last fetch failed.
func (s State[T]) Failed() bool { return s.Status == StatusError }

// Loaded reports whether Data is available.
func (s State[T]) Loaded() bool { return s.Status == StatusSuccess && s.Data != nil }

// Run performs a single fetch and returns its terminal state.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) State[T] {
	v, err := fn(ctx)
	if err != nil {
		return State[T]{Status: StatusError, Err: Classify(err)}
	}
	return State[T]{Status: StatusSuccess, Data: &v}
}
