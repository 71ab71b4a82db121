package kernel

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	ErrControllerNotFound = errors.New("controller not registered")
	ErrNilResponse        = errors.New("controller returned nil response")
	ErrInvalidRoute       = errors.New("invalid route")
)

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// Locator is implemented by errors that know where they originated.
type Locator interface {
	Location() (file string, line int)
}

// PanicError interface allows error listeners to detect and handle panics.
// When a controller panics, the kernel wraps the recovered value in an error
// that implements this interface.
type PanicError interface {
	error
	Locator
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
	file  string
	line  int
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Location() (string, int) {
	return e.file, e.line
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

// panicLocation finds the first non-runtime frame above the recovering
// deferred function, i.e. the statement that panicked.
func panicLocation(skip int) (string, int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, "runtime.") {
			return f.File, f.Line
		}
		if !more {
			return "", 0
		}
	}
}
