package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange reports an edit/delete target that is no longer
	// valid, either by position or by ID.
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownTier     = errors.New("unknown goal tier")
	ErrBlank           = errors.New("text is blank")
)

// DecodeError reports a persisted document that is not valid JSON or not
// the expected shape.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func outOfRange(index, n int) error {
	return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, n)
}

func unknownID(id string) error {
	return fmt.Errorf("%w: no entry with id %q", ErrIndexOutOfRange, id)
}
