package scpi

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockSession implements the Session interface for testing.
type MockSession struct {
	mock.Mock
}

var _ Session = (*MockSession)(nil)

func NewMockSession() *MockSession {
	return &MockSession{}
}

func (m *MockSession) Write(cmd string) error {
	args := m.Called(cmd)
	return args.Error(0)
}

func (m *MockSession) Query(cmd string) (string, error) {
	args := m.Called(cmd)
	return args.String(0), args.Error(1)
}

func (m *MockSession) SetTermination(read, write string) {
	m.Called(read, write)
}

func (m *MockSession) SetTimeout(d time.Duration) {
	m.Called(d)
}

func (m *MockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}
