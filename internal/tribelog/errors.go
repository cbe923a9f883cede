package tribelog

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the decoder. Every failure is wrapped in a
// *DecodeError carrying the offset and literals involved.
var (
	ErrMarkerNotFound   = errors.New("tribe log marker not found")
	ErrMalformedHeader  = errors.New("malformed property header")
	ErrUnexpectedEOF    = errors.New("unexpected end of data")
	ErrInvalidText      = errors.New("invalid entry text")
	ErrInvalidColorSpec = errors.New("invalid color spec")
	ErrCountMismatch    = errors.New("entry count mismatch")
)

// DecodeError describes where and why a decode failed.
type DecodeError struct {
	Kind     error
	Offset   int64
	Expected string
	Actual   string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	if e.Expected != "" || e.Actual != "" {
		msg += fmt.Sprintf(": expected %q, got %q", e.Expected, e.Actual)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, offset int64, expected, actual string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Expected: expected, Actual: actual}
}
