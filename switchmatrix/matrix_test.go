package switchmatrix

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emlab/go-scpi/scpi"
)

// fakeSession records written commands and serves canned close errors.
type fakeSession struct {
	commands   []string
	writeErr   error
	closeErr   error
	closeCalls int
}

var _ scpi.Session = (*fakeSession)(nil)

func (f *fakeSession) Write(cmd string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.commands = append(f.commands, cmd)

	return nil
}

func (f *fakeSession) Query(cmd string) (string, error) { return "", nil }

func (f *fakeSession) SetTermination(read, write string) {}

func (f *fakeSession) SetTimeout(d time.Duration) {}

func (f *fakeSession) Close() error {
	f.closeCalls++
	return f.closeErr
}

func newTestMatrix(t *testing.T, opts ...Option) (*Matrix, *fakeSession) {
	t.Helper()

	sess := &fakeSession{}
	m, err := New(sess, opts...)
	require.NoError(t, err)

	return m, sess
}

func TestNew_NilSession(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, scpi.ErrSessionNil)
}

func TestWithDebounce_Invalid(t *testing.T) {
	_, err := New(&fakeSession{}, WithDebounce(0))
	assert.Error(t, err)

	_, err = New(&fakeSession{}, WithDebounce(-time.Millisecond))
	assert.Error(t, err)
}

func TestFormatPort(t *testing.T) {
	tests := []struct {
		port int
		want string
	}{
		{1, "01"},
		{3, "03"},
		{9, "09"},
		{10, "10"},
		{24, "24"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPort(tt.port))
	}

	// Every valid port formats to exactly two digits with the same value.
	for p := PortMin; p <= PortMax; p++ {
		s := FormatPort(p)
		require.Len(t, s, 2)
		n, err := strconv.Atoi(s)
		require.NoError(t, err)
		assert.Equal(t, p, n)
	}
}

func TestMatrix_Initialize(t *testing.T) {
	m, sess := newTestMatrix(t)

	require.NoError(t, m.Initialize())
	assert.Equal(t, []string{"*rst"}, sess.commands)
}

func TestMatrix_SetPorts_CommandOrder(t *testing.T) {
	m, sess := newTestMatrix(t, WithDebounce(time.Millisecond))

	require.NoError(t, m.SetTransmit(1))
	require.NoError(t, m.SetReflect(2))

	assert.Equal(t, []string{"tran_01", "refl_02"}, sess.commands)
}

func TestMatrix_SetPorts_Debounce(t *testing.T) {
	m, _ := newTestMatrix(t)

	var slept []time.Duration
	m.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, m.SetTransmit(12))
	require.NoError(t, m.SetReflect(7))

	// Each call blocks for the full debounce interval before returning.
	assert.Equal(t, []time.Duration{defDebounce, defDebounce}, slept)
}

func TestMatrix_SetPorts_DebounceBlocks(t *testing.T) {
	debounce := 20 * time.Millisecond
	m, _ := newTestMatrix(t, WithDebounce(debounce))

	start := time.Now()
	require.NoError(t, m.SetTransmit(1))
	assert.GreaterOrEqual(t, time.Since(start), debounce)
}

func TestMatrix_SetPorts_InvalidPort(t *testing.T) {
	m, sess := newTestMatrix(t)

	for _, port := range []int{0, -1, 25, 100} {
		err := m.SetTransmit(port)
		var perr *InvalidPortError
		require.ErrorAs(t, err, &perr, "port %d", port)
		assert.Equal(t, port, perr.Port)

		err = m.SetReflect(port)
		require.ErrorAs(t, err, &perr, "port %d", port)
		assert.Equal(t, port, perr.Port)
	}

	// No command reaches the hardware for a rejected port.
	assert.Empty(t, sess.commands)
}

func TestMatrix_SetPorts_NoDebounceOnWriteFault(t *testing.T) {
	m, sess := newTestMatrix(t)
	sess.writeErr = &scpi.TransportError{Op: "write", Cmd: "tran_01", Err: errors.New("i/o fault")}

	var slept []time.Duration
	m.sleep = func(d time.Duration) { slept = append(slept, d) }

	err := m.SetTransmit(1)
	var terr *scpi.TransportError
	assert.ErrorAs(t, err, &terr)
	assert.Empty(t, slept)
}

func TestMatrix_Close_Idempotent(t *testing.T) {
	m, sess := newTestMatrix(t)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Equal(t, 1, sess.closeCalls)
}

func TestMatrix_Close_SwallowsTeardownFaults(t *testing.T) {
	t.Run("ClosedSession", func(t *testing.T) {
		m, sess := newTestMatrix(t)
		sess.closeErr = scpi.ErrSessionClosed

		assert.NoError(t, m.Close())
	})

	t.Run("TransportFault", func(t *testing.T) {
		m, sess := newTestMatrix(t)
		sess.closeErr = &scpi.TransportError{Op: "close", Cmd: "", Err: errors.New("i/o fault")}

		assert.NoError(t, m.Close())
	})
}

func TestMatrix_Close_PropagatesOtherFailures(t *testing.T) {
	m, sess := newTestMatrix(t)
	sess.closeErr = errors.New("unexpected failure")

	assert.Error(t, m.Close())
}
