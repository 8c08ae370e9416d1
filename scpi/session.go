package scpi

import "time"

// Session defines the interface of an open instrument session.
//
// Implementations are created externally (see the visa package), configured
// once by the owning controller's initialization protocol, and closed exactly
// once at teardown. Close must be idempotent: calling it on an already-closed
// session returns nil.
type Session interface {
	// Write sends one command line to the instrument.
	// It returns a *TransportError on an I/O fault, or ErrSessionClosed if
	// the session is no longer live.
	Write(cmd string) error

	// Query sends one command line and blocks until a single response line
	// arrives, returning the response with its terminator stripped.
	// At most one query may be in flight per session; there is no pipelining.
	// It returns a *TransportError on an I/O fault, ErrSessionClosed if the
	// session is no longer live, or an error wrapping ErrQueryTimeout when
	// the response timeout elapses.
	Query(cmd string) (string, error)

	// SetTermination sets the read and write line terminators.
	SetTermination(read, write string)

	// SetTimeout sets the response timeout for subsequent queries.
	SetTimeout(d time.Duration)

	// Close closes the session. It is idempotent and returns an error only
	// for a genuinely live-but-unclosable handle.
	Close() error
}
