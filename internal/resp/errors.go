package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is matched by every *MalformedInputError
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidValue is matched by every *InvalidValueError
	ErrInvalidValue = errors.New("invalid value")

	// ErrNestingTooDeep is the cause reported when arrays nest deeper than the configured limit
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// MalformedInputError reports bytes that do not follow the RESP grammar
type MalformedInputError struct {
	Offset   int    // position in the input where the mismatch was detected
	Expected string // token that was expected at Offset
	Err      error  // optional underlying cause
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("resp: malformed input at offset %d: expected %s", e.Offset, e.Expected)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// InvalidValueError reports a Value that cannot be represented on the wire
type InvalidValueError struct {
	Type   Type
	Reason string
	Err    error
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("resp: invalid %s value: %s", e.Type, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

func malformed(offset int, expected string) error {
	return &MalformedInputError{Offset: offset, Expected: expected}
}
