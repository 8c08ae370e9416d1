package scpi

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNil indicates that a nil Session was provided to a controller.
	ErrSessionNil = errors.New("session is nil")

	// ErrSessionClosed indicates that an operation was attempted on a session
	// that is no longer live.
	ErrSessionClosed = errors.New("session closed")

	// ErrQueryTimeout indicates that a query response did not arrive within
	// the configured response timeout. Most likely to occur while waiting on
	// the operation-complete barrier of a very large sweep.
	ErrQueryTimeout = errors.New("query response timeout")
)

// TransportError wraps an I/O fault encountered while talking to an
// instrument. Op identifies the operation ("write" or "read") and Cmd the
// command being issued when the fault occurred.
type TransportError struct {
	Op  string
	Cmd string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed for %q: %v", e.Op, e.Cmd, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IgnorableOnTeardown reports whether err is one of the conditions a
// controller deliberately swallows during teardown: a transport fault or an
// already-closed session. Any other failure, including a query timeout,
// still propagates from teardown paths.
func IgnorableOnTeardown(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrSessionClosed) {
		return true
	}

	var terr *TransportError
	return errors.As(err, &terr)
}
