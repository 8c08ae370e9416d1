package vna

import (
	"errors"
	"fmt"
)

// Setting names one of the five tunable acquisition settings whose valid
// ranges are discovered from the instrument.
type Setting string

const (
	SettingNumPoints Setting = "num_points"
	SettingIFBW      Setting = "ifbw"
	SettingFreqStart Setting = "freq_start"
	SettingFreqStop  Setting = "freq_stop"
	SettingPower     Setting = "power"
)

// Settings returns all tunable settings in discovery order.
func Settings() []Setting {
	return []Setting{SettingNumPoints, SettingIFBW, SettingFreqStart, SettingFreqStop, SettingPower}
}

// Range is a closed numeric interval [Min, Max] advertised by the instrument
// for one setting. Discovered once per controller instance, read-only
// afterward.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ConfigError describes an invalid or missing acquisition setting.
type ConfigError struct {
	Setting Setting
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid acquisition setting %q: %s", e.Setting, e.Reason)
}

// ErrNoSParams indicates that a Config requests no scattering parameters.
var ErrNoSParams = errors.New("no scattering parameters requested")

// Config holds the acquisition settings for one measurement setup.
// It is passed explicitly to Initialize; the controller keeps no hidden
// dependency on external mutable state.
type Config struct {
	// FreqStart and FreqStop bound the sweep in Hz.
	FreqStart float64
	FreqStop  float64

	// NumPoints is the number of sweep points. Must be at least 2.
	NumPoints int

	// IFBW is the intermediate-frequency bandwidth in Hz.
	IFBW float64

	// Power is the source power in dBm.
	Power float64

	// SParams lists the scattering parameters to acquire, in the order
	// Fire collects them. Duplicates and unknown names are rejected.
	SParams []SParam
}

// Validate checks the structural invariants of the configuration.
func (c Config) Validate() error {
	if c.NumPoints < 2 {
		return &ConfigError{SettingNumPoints, fmt.Sprintf("must be at least 2, got %d", c.NumPoints)}
	}
	if c.FreqStart > c.FreqStop {
		return &ConfigError{SettingFreqStart, fmt.Sprintf("start %g exceeds stop %g", c.FreqStart, c.FreqStop)}
	}
	if c.IFBW <= 0 {
		return &ConfigError{SettingIFBW, fmt.Sprintf("must be positive, got %g", c.IFBW)}
	}

	if len(c.SParams) == 0 {
		return ErrNoSParams
	}
	seen := make(map[SParam]bool, len(c.SParams))
	for _, p := range c.SParams {
		if _, err := ParseSParam(string(p)); err != nil {
			return err
		}
		if seen[p] {
			return fmt.Errorf("duplicate scattering parameter %q", p)
		}
		seen[p] = true
	}

	return nil
}

// validateRanges checks the configuration against the ranges discovered from
// the instrument. The caller is expected to pre-validate user input with
// Analyzer.Ranges; this is the controller's own guard so a violation fails
// with a clear condition instead of garbage hardware behavior.
func (c Config) validateRanges(ranges map[Setting]Range) error {
	checks := []struct {
		setting Setting
		value   float64
	}{
		{SettingNumPoints, float64(c.NumPoints)},
		{SettingIFBW, c.IFBW},
		{SettingFreqStart, c.FreqStart},
		{SettingFreqStop, c.FreqStop},
		{SettingPower, c.Power},
	}
	for _, chk := range checks {
		r, ok := ranges[chk.setting]
		if !ok {
			continue
		}
		if !r.Contains(chk.value) {
			return &ConfigError{chk.setting, fmt.Sprintf("%g outside instrument range [%g, %g]", chk.value, r.Min, r.Max)}
		}
	}

	return nil
}

// FrequencyList returns the NumPoints sweep frequencies, linearly spaced
// from FreqStart to FreqStop inclusive. The first element equals FreqStart
// and the last equals FreqStop up to floating-point rounding.
func (c Config) FrequencyList() ([]float64, error) {
	if c.NumPoints < 2 {
		return nil, &ConfigError{SettingNumPoints, fmt.Sprintf("must be at least 2, got %d", c.NumPoints)}
	}

	list := make([]float64, c.NumPoints)
	inc := (c.FreqStop - c.FreqStart) / float64(c.NumPoints-1)
	for i := range list {
		list[i] = c.FreqStart + float64(i)*inc
	}

	return list, nil
}
