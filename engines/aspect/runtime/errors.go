package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVariable marks a variable reference with no stored value.
	// Resolution failures are sentinel outcomes, not logged errors.
	ErrInvalidVariable = errors.New("invalid variable")

	ErrEmptyName   = errors.New("function name is empty")
	ErrNilFunction = errors.New("function is nil")
)

// ErrorKind classifies an interpreter error.
type ErrorKind string

const (
	// SyntaxError marks source text that failed to parse where the
	// interpreter requires a valid shape.
	SyntaxError ErrorKind = "SyntaxError"

	// InvalidFunction marks call text that matched no registered name.
	InvalidFunction ErrorKind = "InvalidFunction"

	// RuntimeError marks a registered function that returned an error or
	// panicked during invocation.
	RuntimeError ErrorKind = "RuntimeError"

	// InvalidVariable marks a reference to an unknown variable.
	InvalidVariable ErrorKind = "InvalidVariable"
)

// Error is a structured interpreter failure tied to a source line.
type Error struct {
	Kind   ErrorKind
	Line   int
	Detail string
}

// NewError builds an Error for the given line. Line zero means the failure
// is not tied to a specific source line.
func NewError(kind ErrorKind, line int, detail string) *Error {
	return &Error{Kind: kind, Line: line, Detail: detail}
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Detail, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
