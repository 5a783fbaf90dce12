package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const MaxTempo = 999

// Config holds everything the editor needs to mount and talk to the page.
type Config struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	HostElementID string `json:"hostElementId"`
	Title         string `json:"title,omitempty"`
	LogLevel      string `json:"logLevel,omitempty"`

	Tempo              int `json:"tempo"`
	TimeSigNumerator   int `json:"timeSigNumerator"`
	TimeSigDenominator int `json:"timeSigDenominator"`
	TempoDebounceMs    int `json:"tempoDebounceMs"`

	// Names of page globals the wasm build binds to.
	AudioContextVar string `json:"audioContext,omitempty"`
	SchedulerFunc   string `json:"scheduler,omitempty"`
	StateFunc       string `json:"stateFunc,omitempty"`
	RenderFunc      string `json:"renderFunc,omitempty"`
}

// Default is the host page layout: a 900×200 track mounted into
// #midiTrack at 120 BPM in 4/4.
func Default() *Config {
	return &Config{
		Width:              900,
		Height:             200,
		HostElementID:      "midiTrack",
		Title:              "midiclip",
		LogLevel:           "INFO",
		Tempo:              120,
		TimeSigNumerator:   4,
		TimeSigDenominator: 4,
		TempoDebounceMs:    250,
		AudioContextVar:    "audioCtx",
		SchedulerFunc:      "midiclipSchedule",
		StateFunc:          "midiclipUpdateState",
		RenderFunc:         "midiclipRender",
	}
}

// Load reads a JSON config on top of the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configs the surface cannot be built from.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("surface size %dx%d must be positive", c.Width, c.Height))
	}
	if c.HostElementID == "" {
		errs = append(errs, errors.New("hostElementId is required"))
	}
	if c.Tempo < 1 || c.Tempo > MaxTempo {
		errs = append(errs, fmt.Errorf("tempo %d out of range 1..%d", c.Tempo, MaxTempo))
	}
	if c.TimeSigNumerator <= 0 || c.TimeSigDenominator <= 0 {
		errs = append(errs, fmt.Errorf("time signature %d/%d is invalid", c.TimeSigNumerator, c.TimeSigDenominator))
	}
	if c.TempoDebounceMs < 0 {
		errs = append(errs, errors.New("tempoDebounceMs must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) TempoDebounce() time.Duration {
	return time.Duration(c.TempoDebounceMs) * time.Millisecond
}
