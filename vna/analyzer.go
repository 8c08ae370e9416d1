package vna

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/emlab/go-scpi/internal/util"
	"github.com/emlab/go-scpi/logger"
	"github.com/emlab/go-scpi/scpi"
)

// defSweepTimeout bounds the wait on the operation-complete barrier. It is
// deliberately far larger than any expected sweep so large point counts
// never trip it.
const defSweepTimeout = 100 * time.Second

const lineTermination = "\n"

// ErrNotInitialized indicates that Fire was called before Initialize.
var ErrNotInitialized = errors.New("analyzer not initialized")

// Result maps each acquired scattering parameter to its raw SDATA response
// payload. A fresh Result is created on every Fire; ownership passes to the
// caller.
type Result map[SParam]string

// Analyzer controls a network analyzer over a SCPI session.
//
// The zero value is not usable; construct with New, which runs the range
// discovery protocol against the instrument.
type Analyzer struct {
	session scpi.Session
	logger  logger.Logger

	sweepTimeout time.Duration

	id      string
	ranges  map[Setting]Range
	cfg     Config
	measure []SParam

	initialized bool
	closed      atomic.Bool
}

// Option configures an Analyzer at construction time.
type Option interface {
	apply(*Analyzer) error
}

type optFunc func(*Analyzer) error

func (f optFunc) apply(a *Analyzer) error { return f(a) }

// WithLogger sets the logger for the analyzer.
// The default is the global logger instance.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(a *Analyzer) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		a.logger = l

		return nil
	})
}

// WithSweepTimeout sets the response timeout applied to the session during
// Initialize. It bounds the operation-complete wait in Fire and must be
// generous enough for the largest configured point count.
//
// The default is 100 seconds.
func WithSweepTimeout(d time.Duration) Option {
	return optFunc(func(a *Analyzer) error {
		if d <= 0 {
			return errors.New("sweep timeout must be positive")
		}
		a.sweepTimeout = d

		return nil
	})
}

// New creates an Analyzer over the given session and runs the range
// discovery protocol once. The session is exclusively owned by the returned
// Analyzer until Close.
func New(session scpi.Session, opts ...Option) (*Analyzer, error) {
	if session == nil {
		return nil, scpi.ErrSessionNil
	}

	a := &Analyzer{
		session:      session,
		logger:       logger.GetLogger(),
		sweepTimeout: defSweepTimeout,
		ranges:       make(map[Setting]Range, len(Settings())),
	}

	for _, opt := range opts {
		if err := opt.apply(a); err != nil {
			return nil, err
		}
	}

	if err := a.discoverRanges(); err != nil {
		return nil, err
	}

	return a, nil
}

// ID returns the instrument identity reported by *IDN? during discovery.
func (a *Analyzer) ID() string { return a.id }

// Ranges returns a copy of the parameter ranges discovered from the
// instrument, keyed by setting name.
func (a *Analyzer) Ranges() map[Setting]Range {
	out := make(map[Setting]Range, len(a.ranges))
	for k, v := range a.ranges {
		out[k] = v
	}

	return out
}

// discoverRanges queries the instrument for the advertised MIN/MAX of each
// tunable setting. The preset/define/trigger-mode warm-up issued first is
// required for the range queries to return valid data; testing against the
// hardware confirmed the sequence, so treat it as a mandatory protocol even
// where the physical necessity is not understood. Order matters.
func (a *Analyzer) discoverRanges() error {
	a.session.SetTermination(lineTermination, lineTermination)

	id, err := a.query(cmdIdentify)
	if err != nil {
		return err
	}
	a.id = strings.TrimSpace(id)

	setup := []string{
		cmdFullPreset,
		cmdDefineParam(S21), // scratch measurement parameter
		cmdContinuousOff,
		cmdTriggerManual,
		cmdSweepHold,
		cmdAverageOff,
		cmdSweepLinear,
	}
	for _, cmd := range setup {
		if err := a.write(cmd); err != nil {
			return err
		}
	}

	for _, setting := range Settings() {
		q := settingQueries[setting]
		r, err := a.queryRange(setting, q)
		if err != nil {
			return err
		}
		a.ranges[setting] = r
	}

	a.logger.Info("analyzer ranges discovered", "id", a.id)

	return nil
}

func (a *Analyzer) queryRange(setting Setting, query string) (Range, error) {
	minResp, err := a.query(query + " MIN")
	if err != nil {
		return Range{}, err
	}
	maxResp, err := a.query(query + " MAX")
	if err != nil {
		return Range{}, err
	}

	minVal, err := strconv.ParseFloat(strings.TrimSpace(minResp), 64)
	if err != nil {
		return Range{}, fmt.Errorf("parse %s MIN response %q: %w", setting, minResp, err)
	}
	maxVal, err := strconv.ParseFloat(strings.TrimSpace(maxResp), 64)
	if err != nil {
		return Range{}, fmt.Errorf("parse %s MAX response %q: %w", setting, maxResp, err)
	}

	return Range{Min: minVal, Max: maxVal}, nil
}

// Initialize sequences the analyzer into the measurement configuration
// described by cfg. It may be called again with a new configuration;
// redefining the same named measurement parameters is safe.
//
// The command order is fixed: full preset, display off, measurement
// parameter definitions, manual triggering, averaging off, linear sweep,
// then the five numeric settings.
func (a *Analyzer) Initialize(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.validateRanges(a.ranges); err != nil {
		return err
	}

	a.session.SetTermination(lineTermination, lineTermination)

	if err := a.write(cmdFullPreset); err != nil {
		return err
	}

	// The instrument sweeps faster with the display off; on is only useful
	// for debugging at the bench.
	if err := a.DisplayOn(false); err != nil {
		return err
	}

	for _, p := range AllSParams() {
		if err := a.write(cmdDefineParam(p)); err != nil {
			return err
		}
	}

	setup := []string{
		cmdContinuousOff,
		cmdTriggerManual,
		cmdSweepHold,
		cmdAverageOff,
		cmdSweepLinear,
		cmdSetPoints(cfg.NumPoints),
		cmdSetBandwidth(cfg.IFBW),
		cmdSetFreqStart(cfg.FreqStart),
		cmdSetFreqStop(cfg.FreqStop),
		cmdSetPower(cfg.Power),
	}
	for _, cmd := range setup {
		if err := a.write(cmd); err != nil {
			return err
		}
	}

	a.session.SetTimeout(a.sweepTimeout)

	a.cfg = cfg
	a.measure = util.CloneSlice(cfg.SParams, 0)
	a.initialized = true

	a.logger.Info("analyzer initialized",
		"freqStart", cfg.FreqStart,
		"freqStop", cfg.FreqStop,
		"numPoints", cfg.NumPoints,
		"sparams", cfg.SParams,
	)

	return nil
}

// FrequencyList returns the sweep frequencies of the current configuration.
// It performs no hardware I/O and fails with ErrNotInitialized before
// Initialize.
func (a *Analyzer) FrequencyList() ([]float64, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}

	return a.cfg.FrequencyList()
}

// Fire triggers a single sweep, blocks until the instrument reports
// operation complete, and reads back the payload of every configured
// scattering parameter in configuration order.
//
// Transport faults and timeouts propagate to the caller without retry: a
// partial sweep is not safely retryable without re-triggering.
func (a *Analyzer) Fire() (Result, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}

	if err := a.write(cmdTriggerSweep); err != nil {
		return nil, err
	}
	// *OPC? doubles as the completion barrier: it does not return until the
	// sweep instruction has completed, which keeps the controller from
	// attempting a premature read.
	if _, err := a.query(cmdOpComplete); err != nil {
		return nil, err
	}

	result := make(Result, len(a.measure))
	for _, p := range a.measure {
		if err := a.write(cmdSelectParam(p)); err != nil {
			return nil, err
		}
		payload, err := a.query(cmdDataQuery)
		if err != nil {
			return nil, err
		}
		result[p] = payload
	}

	return result, nil
}

// DisplayOn toggles the physical display.
func (a *Analyzer) DisplayOn(on bool) error {
	if on {
		return a.write(cmdDisplayOn)
	}

	return a.write(cmdDisplayOff)
}

// Close resets the instrument and closes the session. The reset prevents
// the instrument's control software from being left in a bad state.
//
// Close is idempotent and swallows transport faults and already-closed
// sessions, which are normal during teardown; any other failure propagates.
func (a *Analyzer) Close() error {
	if a.closed.Swap(true) {
		return nil
	}

	if err := a.session.Write(cmdReset); err != nil {
		if !scpi.IgnorableOnTeardown(err) {
			_ = a.session.Close()
			return err
		}
		a.logger.Debug("reset ignored during teardown", "error", err)
	}

	if err := a.session.Close(); err != nil {
		if !scpi.IgnorableOnTeardown(err) {
			return err
		}
		a.logger.Debug("session close ignored during teardown", "error", err)
	}

	return nil
}

func (a *Analyzer) write(cmd string) error {
	a.logger.Debug("vna write", "cmd", cmd)
	return a.session.Write(cmd)
}

func (a *Analyzer) query(cmd string) (string, error) {
	a.logger.Debug("vna query", "cmd", cmd)
	return a.session.Query(cmd)
}
