package loop

import (
	"errors"
	"fmt"
)

// ErrTerminated is returned when Run is called on a finished loop.
var ErrTerminated = errors.New("loop: already terminated")

// InputError wraps a failure reading from the event source. Input
// failures are fatal; the loop does not retry.
type InputError struct {
	Op  string // "poll" or "wait"
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("loop: input %s: %v", e.Op, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
