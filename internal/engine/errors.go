package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence is returned when the incident store fails; the
	// session is torn down and the user has to restart the flow.
	ErrPersistence = errors.New("persistence failure")

	// ErrAlreadyClosed is returned when a close commit loses the race:
	// the target incident was no longer open.
	ErrAlreadyClosed = errors.New("incident already closed")
)

func wrapPersistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
