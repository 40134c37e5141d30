// Package errors provides structured error handling for the choreo engine.
package errors

import (
	"fmt"
	"runtime"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid or missing sequence configuration.
	KindConfig
	// KindSequence indicates a failure while playing a sequence.
	KindSequence
	// KindInteraction indicates a micro-interaction failure.
	KindInteraction
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSequence:
		return "sequence"
	case KindInteraction:
		return "interaction"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ChoreoError represents a structured error in the choreo engine.
type ChoreoError struct {
	// Op is the operation that failed (e.g., "choreo.PlayEntrance").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Sequence is the sequence name in flight, if applicable.
	Sequence string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ChoreoError) Error() string {
	if e.Sequence != "" {
		return fmt.Sprintf("%s [%s] sequence=%s: %v", e.Op, e.Kind, e.Sequence, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ChoreoError) Unwrap() error {
	return e.Err
}

// New builds a ChoreoError with the current time.
func New(op string, kind ErrorKind, sequence string, err error) *ChoreoError {
	return &ChoreoError{
		Op:        op,
		Kind:      kind,
		Sequence:  sequence,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "choreo.playPattern").
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

// FromPanic captures a recovered panic value with the current stack.
func FromPanic(op string, value any) *PanicError {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: string(buf[:n]),
		Timestamp:  time.Now(),
	}
}
