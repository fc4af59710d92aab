package cnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParseFailed is matched by every *ParseError.
	ErrParseFailed = errors.New("cnode: parse failed")
	// ErrKindMismatch reports an operation applied to a node of the wrong kind.
	ErrKindMismatch = errors.New("cnode: kind mismatch")
)

// ParseError is returned when the front end could not produce a usable
// translation unit: bad arguments, unreadable input or error diagnostics.
type ParseError struct {
	Path        string
	Diagnostics []Diagnostic
	Err         error // cancellation cause, if any
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("cnode: ")
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
		return sb.String()
	}
	errs := 0
	var first *Diagnostic
	for i := range e.Diagnostics {
		if e.Diagnostics[i].Severity == SeverityError {
			if first == nil {
				first = &e.Diagnostics[i]
			}
			errs++
		}
	}
	switch {
	case first == nil:
		sb.WriteString("parse failed")
	case errs == 1:
		sb.WriteString(first.Message)
	default:
		fmt.Fprintf(&sb, "%s (and %d more errors)", first.Message, errs-1)
	}
	return sb.String()
}

func (e *ParseError) Is(target error) bool { return target == ErrParseFailed }

func (e *ParseError) Unwrap() error { return e.Err }

// Errors returns only the error-severity diagnostics.
func (e *ParseError) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// MisuseError is the panic value for contract violations: a handle used after
// its Unit was closed, a null handle, or an index out of range.
type MisuseError struct {
	Op     string
	Reason string
}

func (e *MisuseError) Error() string {
	return "cnode: " + e.Op + ": " + e.Reason
}

func misuse(op, format string, args ...any) {
	panic(&MisuseError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

func checkIndex(op string, i, n int) {
	if i < 0 || i >= n {
		misuse(op, "index %d out of range [0,%d)", i, n)
	}
}
