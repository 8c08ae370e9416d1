package visa

import (
	"sync/atomic"
)

// SessionMetrics contains atomic metrics for a session.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type SessionMetrics struct {
	// WriteCount indicates the number of commands written.
	WriteCount atomic.Uint64
	// QueryCount indicates the number of queries completed.
	QueryCount atomic.Uint64
	// ErrCount indicates the number of transport faults.
	ErrCount atomic.Uint64
	// TimeoutCount indicates the number of query response timeouts.
	TimeoutCount atomic.Uint64
}

func (m *SessionMetrics) incWriteCount() {
	m.WriteCount.Add(1)
}

func (m *SessionMetrics) incQueryCount() {
	m.QueryCount.Add(1)
}

func (m *SessionMetrics) incErrCount() {
	m.ErrCount.Add(1)
}

func (m *SessionMetrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}
