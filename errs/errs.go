// Package errs classifies the failure modes of the dxfcut pipeline so
// callers can discriminate on Kind rather than matching error strings.
package errs

import "fmt"

// Kind enumerates the pipeline's error categories.
type Kind string

const (
	ParseError        Kind = "parse-error"
	BadInput          Kind = "bad-input"
	DuplicateSection  Kind = "duplicate-section"
	UnsupportedEntity Kind = "unsupported-entity"
	NotImplemented    Kind = "not-implemented"
	InvalidArgument   Kind = "invalid-argument"
	InvalidPolyline   Kind = "invalid-polyline"
	IOError           Kind = "io-error"
)

// Error wraps a cause with a Kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error from a formatted message.
func New(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a Kind and Op to an existing error.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err (or any error it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Err
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
