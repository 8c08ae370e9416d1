package vna

import (
	"time"

	"github.com/emlab/go-scpi/scpi"
)

// fakeSession records the command stream so tests can assert protocol order,
// and serves canned query responses.
type fakeSession struct {
	commands  []string
	responses map[string]string

	writeErr map[string]error
	queryErr map[string]error

	timeout    time.Duration
	readTerm   string
	writeTerm  string
	closeCalls int
	closeErr   error
}

var _ scpi.Session = (*fakeSession)(nil)

// newFakeSession returns a session preloaded with well-formed discovery
// responses for an E8363B-like instrument.
func newFakeSession() *fakeSession {
	return &fakeSession{
		responses: map[string]string{
			"*IDN?":                       "Agilent Technologies,E8363B,US12345678,A.07.50.48",
			"*OPC?":                       "1",
			"SENSE1:SWEEP:POINTS? MIN":    "2",
			"SENSE1:SWEEP:POINTS? MAX":    "16001",
			"SENSE1:BANDWIDTH? MIN":       "1",
			"SENSE1:BANDWIDTH? MAX":       "40000",
			"SENSE1:FREQUENCY:START? MIN": "10000000",
			"SENSE1:FREQUENCY:START? MAX": "40000000000",
			"SENSE1:FREQUENCY:STOP? MIN":  "10000000",
			"SENSE1:FREQUENCY:STOP? MAX":  "40000000000",
			"SOURCE1:POWER1? MIN":         "-90",
			"SOURCE1:POWER1? MAX":         "20",
			"CALCULATE:DATA? SDATA":       "1.0E-1,2.0E-1,3.0E-1",
		},
		writeErr: make(map[string]error),
		queryErr: make(map[string]error),
	}
}

func (f *fakeSession) Write(cmd string) error {
	if err := f.writeErr[cmd]; err != nil {
		return err
	}
	f.commands = append(f.commands, cmd)

	return nil
}

func (f *fakeSession) Query(cmd string) (string, error) {
	if err := f.queryErr[cmd]; err != nil {
		return "", err
	}
	f.commands = append(f.commands, cmd)

	return f.responses[cmd], nil
}

func (f *fakeSession) SetTermination(read, write string) {
	f.readTerm = read
	f.writeTerm = write
}

func (f *fakeSession) SetTimeout(d time.Duration) {
	f.timeout = d
}

func (f *fakeSession) Close() error {
	f.closeCalls++
	return f.closeErr
}

// commandsAfter returns the recorded commands that follow the first
// occurrence of marker.
func (f *fakeSession) commandsAfter(marker string) []string {
	for i, cmd := range f.commands {
		if cmd == marker {
			return f.commands[i+1:]
		}
	}

	return nil
}
