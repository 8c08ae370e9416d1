package switchmatrix

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/emlab/go-scpi/logger"
	"github.com/emlab/go-scpi/scpi"
)

// Port indices are 1-24 inclusive.
const (
	PortMin = 1
	PortMax = 24
)

// defDebounce is the settling time of the mechanical switch. Each port
// change blocks for this long before returning.
const defDebounce = 30 * time.Millisecond

const (
	verbTransmit = "tran"
	verbReflect  = "refl"

	cmdReset = "*rst"
)

// InvalidPortError indicates an attempt to select a switch port outside
// [PortMin, PortMax]. It is raised before any command is written.
type InvalidPortError struct {
	Port int
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid switch port %d, should be in range of [%d, %d]", e.Port, PortMin, PortMax)
}

// Matrix controls a multiport switch matrix over a SCPI session.
type Matrix struct {
	session  scpi.Session
	logger   logger.Logger
	debounce time.Duration

	closed atomic.Bool

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// Option configures a Matrix at construction time.
type Option interface {
	apply(*Matrix) error
}

type optFunc func(*Matrix) error

func (f optFunc) apply(m *Matrix) error { return f(m) }

// WithLogger sets the logger for the matrix.
// The default is the global logger instance.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(m *Matrix) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		m.logger = l

		return nil
	})
}

// WithDebounce sets the settling time waited after every port change.
//
// The default is 30 milliseconds.
func WithDebounce(d time.Duration) Option {
	return optFunc(func(m *Matrix) error {
		if d <= 0 {
			return errors.New("debounce must be positive")
		}
		m.debounce = d

		return nil
	})
}

// New creates a Matrix over the given session. The session is exclusively
// owned by the returned Matrix until Close.
func New(session scpi.Session, opts ...Option) (*Matrix, error) {
	if session == nil {
		return nil, scpi.ErrSessionNil
	}

	m := &Matrix{
		session:  session,
		logger:   logger.GetLogger(),
		debounce: defDebounce,
		sleep:    time.Sleep,
	}

	for _, opt := range opts {
		if err := opt.apply(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Initialize resets the switch hardware.
func (m *Matrix) Initialize() error {
	return m.write(cmdReset)
}

// SetTransmit connects the given port to the transmit path and blocks for
// the debounce interval.
func (m *Matrix) SetTransmit(port int) error {
	return m.setPort(verbTransmit, port)
}

// SetReflect connects the given port to the reflect path and blocks for
// the debounce interval.
func (m *Matrix) SetReflect(port int) error {
	return m.setPort(verbReflect, port)
}

func (m *Matrix) setPort(verb string, port int) error {
	if port < PortMin || port > PortMax {
		return &InvalidPortError{Port: port}
	}

	if err := m.write(verb + "_" + FormatPort(port)); err != nil {
		return err
	}
	m.sleep(m.debounce)

	return nil
}

// FormatPort formats a port number as the two-digit decimal string the
// switch command syntax requires: ports below 10 get a leading zero.
func FormatPort(port int) string {
	return fmt.Sprintf("%02d", port)
}

// Close closes the session. It is idempotent and swallows transport faults
// and already-closed sessions, which are normal during teardown; any other
// failure propagates.
func (m *Matrix) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	if err := m.session.Close(); err != nil {
		if !scpi.IgnorableOnTeardown(err) {
			return err
		}
		m.logger.Debug("session close ignored during teardown", "error", err)
	}

	return nil
}

func (m *Matrix) write(cmd string) error {
	m.logger.Debug("switch write", "cmd", cmd)
	return m.session.Write(cmd)
}
