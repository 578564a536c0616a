package protocol

import (
	"errors"
	"fmt"
)

// WireSchemeVersion identifies the flat one-byte tag enumeration.
// The packed wire-type/field-number tag byte is not a supported mode.
const WireSchemeVersion = 1

var (
	ErrInvalidInput    = errors.New("protocol: invalid input")
	ErrOutOfBounds     = errors.New("protocol: out of bounds")
	ErrInvalidEncoding = errors.New("protocol: invalid encoding")
	ErrNotImplemented  = errors.New("protocol: not implemented")
)

// DecodeError reports where a decode stopped and why.
// Offset is the position the failing operation started from.
type DecodeError struct {
	Op     string
	Offset int
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %v: %s", e.Op, e.Offset, e.Err, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Errorf builds a DecodeError around one of the sentinel errors.
func Errorf(op string, offset int, err error, format string, args ...any) error {
	return &DecodeError{
		Op:     op,
		Offset: offset,
		Err:    err,
		Detail: fmt.Sprintf(format, args...),
	}
}

// OffsetOf returns the offset carried by err, if any.
func OffsetOf(err error) (int, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset, true
	}
	return 0, false
}
