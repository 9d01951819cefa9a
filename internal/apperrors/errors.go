// Package apperrors defines the failure kinds of the article pipeline.
//
// Every stage returns an *Error carrying its Kind so the HTTP layer can map
// failures to a response in one place.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindFetch is a browser, navigation or network failure while loading the source page.
	KindFetch Kind = iota + 1
	// KindExtraction is an expected element missing from the loaded document.
	KindExtraction
	// KindGeneration is a failed or unparseable call to the text generation service.
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindExtraction:
		return "extraction"
	case KindGeneration:
		return "generation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrFetch      = &Error{Kind: KindFetch}
	ErrExtraction = &Error{Kind: KindExtraction}
	ErrGeneration = &Error{Kind: KindGeneration}
)

// Error is a pipeline failure of a given kind.
type Error struct {
	Kind Kind
	// Op names the step that failed, e.g. "navigate" or "winning numbers".
	Op  string
	Err error
}

// New wraps err as a failure of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a failure of the given kind from a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s failed: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s failed: %s", e.Kind, e.Op)
	default:
		return fmt.Sprintf("%s failed", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
