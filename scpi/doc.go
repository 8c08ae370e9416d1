// Package scpi defines the shared instrument-session contract used by every
// instrument controller in go-scpi.
//
// A Session is an open duplex text channel to one SCPI-speaking instrument.
// The protocol is inherently sequential: a command must not be issued before
// the previous one's completion is confirmed, so a Session permits at most
// one in-flight query and each Session is exclusively owned by exactly one
// controller instance.
//
// Error Taxonomy:
//   - TransportError: an I/O fault during write or read.
//   - ErrSessionClosed: an operation on a session that is no longer live.
//   - ErrQueryTimeout: a query response did not arrive within the configured
//     response timeout.
//
// Teardown Discipline:
//
// Controllers perform best-effort cleanup on Close. A transport fault or an
// already-closed session encountered during teardown is a normal, ignorable
// condition; IgnorableOnTeardown reports exactly that set of conditions so
// teardown paths can swallow them without also hiding real failures.
package scpi
