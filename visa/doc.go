// Package visa implements the scpi.Session contract over a raw TCP socket,
// the transport most SCPI instruments expose on port 5025.
//
// Sessions are opened from VISA-style resource strings such as
//
//	TCPIP0::192.168.0.10::5025::SOCKET
//
// or from a bare "host:port" address. Only the TCPIP SOCKET resource class
// is supported; GPIB and serial resources need a hardware gateway and are
// out of scope.
//
// Each Session serializes its I/O: a query is a write followed by a blocking
// read of one response line, and at most one query is in flight at a time.
// Two instruments on two sessions may be driven concurrently as long as each
// session is used by one goroutine at a time; the ResourceManager registry
// is safe for that kind of sharing.
package visa
