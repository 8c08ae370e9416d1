// Package config loads scan configuration files for go-scpi applications.
//
// The controllers themselves take explicit configuration values; this
// package is the file-reading convenience layer the example scanner uses.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/emlab/go-scpi/vna"
)

// ScanConfig holds everything needed to run one measurement scan: the two
// instrument resources, the sweep settings, and the switch ports to visit.
type ScanConfig struct {
	Analyzer AnalyzerSection
	Switch   SwitchSection
	Sweep    SweepSection
	Ports    []int
	LogLevel string
}

// AnalyzerSection holds analyzer connection settings.
type AnalyzerSection struct {
	Resource string
}

// SwitchSection holds switch matrix connection settings.
type SwitchSection struct {
	Resource string
	Debounce time.Duration
}

// SweepSection holds the acquisition settings for the analyzer.
type SweepSection struct {
	FreqStart float64
	FreqStop  float64
	NumPoints int
	IFBW      float64
	Power     float64
	SParams   []string
}

// Load reads a YAML scan configuration from the given path. A missing file
// falls back to defaults; malformed values surface as errors.
func Load(path string) (*ScanConfig, error) {
	v := viper.New()

	v.SetDefault("analyzer.resource", "TCPIP0::192.168.0.10::5025::SOCKET")
	v.SetDefault("switch.resource", "TCPIP0::192.168.0.11::5025::SOCKET")
	v.SetDefault("switch.debounce", "30ms")
	v.SetDefault("sweep.freq_start", 1e9)
	v.SetDefault("sweep.freq_stop", 2e9)
	v.SetDefault("sweep.num_points", 201)
	v.SetDefault("sweep.ifbw", 1000.0)
	v.SetDefault("sweep.power", -10.0)
	v.SetDefault("sweep.sparams", []string{"S11", "S21", "S12", "S22"})
	v.SetDefault("ports", []int{})
	v.SetDefault("log_level", "info")

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// A missing file keeps the defaults; anything else is a real error.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read scan config %q: %w", path, err)
		}
	}

	cfg := &ScanConfig{
		Analyzer: AnalyzerSection{
			Resource: v.GetString("analyzer.resource"),
		},
		Switch: SwitchSection{
			Resource: v.GetString("switch.resource"),
			Debounce: v.GetDuration("switch.debounce"),
		},
		Sweep: SweepSection{
			FreqStart: v.GetFloat64("sweep.freq_start"),
			FreqStop:  v.GetFloat64("sweep.freq_stop"),
			NumPoints: v.GetInt("sweep.num_points"),
			IFBW:      v.GetFloat64("sweep.ifbw"),
			Power:     v.GetFloat64("sweep.power"),
			SParams:   v.GetStringSlice("sweep.sparams"),
		},
		Ports:    v.GetIntSlice("ports"),
		LogLevel: v.GetString("log_level"),
	}

	return cfg, nil
}

// AnalyzerConfig converts the sweep section into a validated vna.Config.
func (c *ScanConfig) AnalyzerConfig() (vna.Config, error) {
	sparams := make([]vna.SParam, 0, len(c.Sweep.SParams))
	for _, name := range c.Sweep.SParams {
		p, err := vna.ParseSParam(name)
		if err != nil {
			return vna.Config{}, err
		}
		sparams = append(sparams, p)
	}

	cfg := vna.Config{
		FreqStart: c.Sweep.FreqStart,
		FreqStop:  c.Sweep.FreqStop,
		NumPoints: c.Sweep.NumPoints,
		IFBW:      c.Sweep.IFBW,
		Power:     c.Sweep.Power,
		SParams:   sparams,
	}
	if err := cfg.Validate(); err != nil {
		return vna.Config{}, err
	}

	return cfg, nil
}
