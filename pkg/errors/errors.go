// Package errors provides structured error reporting for clockface.
//
// Library code returns ordinary wrapped errors. Errors that cannot be
// returned to a caller, such as a failed clock read inside a background
// task, are wrapped in a [ClockError] and passed to [Report], which hands
// them to the global [ErrorHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTime indicates a failed or invalid wall-clock read.
	KindTime
	// KindRender indicates a drawing or presentation error.
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error raised while running the clock.
type ClockError struct {
	// Op is the operation that failed (e.g., "screen.refresh").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "screen.frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported through this package.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
