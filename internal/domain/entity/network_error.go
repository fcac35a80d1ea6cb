package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is matched by every decoding failure.
	ErrMalformedInput = errors.New("malformed input")
	// ErrNetworkNotFound is returned when a network key is not registered.
	ErrNetworkNotFound = errors.New("network not found")
)

// MalformedInputError describes why a networks document could not be decoded.
// Key is the network id or field involved, when known.
type MalformedInputError struct {
	Key string
	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", ErrMalformedInput, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", ErrMalformedInput, e.Key, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedInput) match.
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }
