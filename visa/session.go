package visa

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emlab/go-scpi/logger"
	"github.com/emlab/go-scpi/scpi"
)

const (
	defTimeout     = 10 * time.Second
	defDialTimeout = 3 * time.Second
	defTermination = "\n"
)

// Session is a SCPI session over a raw TCP socket. It implements
// scpi.Session.
type Session struct {
	resource string
	addr     string

	mu        sync.Mutex
	conn      net.Conn
	reader    *bufio.Reader
	readTerm  string
	writeTerm string
	timeout   time.Duration

	dialTimeout time.Duration

	closed  atomic.Bool
	metrics SessionMetrics
	logger  logger.Logger

	manager *ResourceManager
}

var _ scpi.Session = (*Session)(nil)

// Option configures a Session before it is dialed.
type Option interface {
	apply(*Session) error
}

type optFunc func(*Session) error

func (f optFunc) apply(s *Session) error { return f(s) }

// WithTimeout sets the initial response timeout for queries.
// Controllers usually override it during their initialization protocol.
//
// The default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return optFunc(func(s *Session) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		s.timeout = d

		return nil
	})
}

// WithTermination sets the initial read and write line terminators.
//
// The default is "\n" for both.
func WithTermination(read, write string) Option {
	return optFunc(func(s *Session) error {
		if read == "" || write == "" {
			return errors.New("termination must not be empty")
		}
		s.readTerm = read
		s.writeTerm = write

		return nil
	})
}

// WithDialTimeout sets the timeout for establishing the TCP connection.
//
// The default is 3 seconds.
func WithDialTimeout(d time.Duration) Option {
	return optFunc(func(s *Session) error {
		if d <= 0 {
			return errors.New("dial timeout must be positive")
		}
		s.dialTimeout = d

		return nil
	})
}

// WithLogger sets the logger for the session.
// The default is the global logger instance.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(s *Session) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		s.logger = l

		return nil
	})
}

// Open dials the instrument identified by the given resource string and
// returns an open session.
func Open(resource string, opts ...Option) (*Session, error) {
	addr, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}

	s := &Session{
		resource:    resource,
		addr:        addr,
		readTerm:    defTermination,
		writeTerm:   defTermination,
		timeout:     defTimeout,
		dialTimeout: defDialTimeout,
		logger:      logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(s); err != nil {
			return nil, err
		}
	}

	conn, err := net.DialTimeout("tcp", addr, s.dialTimeout)
	if err != nil {
		return nil, &scpi.TransportError{Op: "dial", Cmd: resource, Err: err}
	}
	s.conn = conn
	s.reader = bufio.NewReader(conn)

	s.logger.Info("session opened", "resource", resource, "addr", addr)

	return s, nil
}

// Resource returns the resource string the session was opened from.
func (s *Session) Resource() string { return s.resource }

// Metrics returns the session's atomic counters.
func (s *Session) Metrics() *SessionMetrics { return &s.metrics }

// Write sends one command line, appending the write terminator.
func (s *Session) Write(cmd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(cmd)
}

func (s *Session) writeLocked(cmd string) error {
	if s.closed.Load() {
		return scpi.ErrSessionClosed
	}

	if _, err := s.conn.Write([]byte(cmd + s.writeTerm)); err != nil {
		s.metrics.incErrCount()
		return &scpi.TransportError{Op: "write", Cmd: cmd, Err: err}
	}
	s.metrics.incWriteCount()

	return nil
}

// Query sends one command line and blocks until a full response line
// arrives or the response timeout elapses. The mutex guarantees at most one
// query is in flight per session.
func (s *Session) Query(cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeLocked(cmd); err != nil {
		return "", err
	}

	if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		s.metrics.incErrCount()
		return "", &scpi.TransportError{Op: "read", Cmd: cmd, Err: err}
	}

	line, err := s.reader.ReadString(s.readTerm[len(s.readTerm)-1])
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			s.metrics.incTimeoutCount()
			return "", fmt.Errorf("query %q: %w", cmd, scpi.ErrQueryTimeout)
		}
		s.metrics.incErrCount()

		return "", &scpi.TransportError{Op: "read", Cmd: cmd, Err: err}
	}
	s.metrics.incQueryCount()

	return strings.TrimSuffix(line, s.readTerm), nil
}

// SetTermination sets the read and write line terminators.
func (s *Session) SetTermination(read, write string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if read != "" {
		s.readTerm = read
	}
	if write != "" {
		s.writeTerm = write
	}
}

// SetTimeout sets the response timeout for subsequent queries.
func (s *Session) SetTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d > 0 {
		s.timeout = d
	}
}

// Close closes the TCP connection and deregisters the session from its
// ResourceManager, if any. Closing an already-closed session returns nil.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	if s.manager != nil {
		s.manager.deregister(s)
	}

	s.logger.Info("session closed", "resource", s.resource)

	if err := s.conn.Close(); err != nil {
		return &scpi.TransportError{Op: "close", Cmd: s.resource, Err: err}
	}

	return nil
}
