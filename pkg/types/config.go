package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds backend selection and decode/encode options. It is loaded
// from config.yaml by the CLI and handed to Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StrictCounts rejects SLINK records whose PIPE line count differs
	// from the declared pipe count.
	StrictCounts bool `json:"strict_counts" yaml:"strict_counts"`

	// Spatial stores dataset time steps as encoded rasters instead of
	// plain cell arrays.
	Spatial bool `json:"spatial" yaml:"spatial"`

	// SkipMissingMask turns a missing mask on dataset read into a logged
	// warning instead of a failed command.
	SkipMissingMask bool `json:"skip_missing_mask" yaml:"skip_missing_mask"`

	// MaskPath is the GRASS ASCII mask grid used for dataset files.
	MaskPath string `json:"mask" yaml:"mask"`

	// StartDate ("YYYY MM DD") and StartTime ("HH MM") set the epoch for
	// dataset timestamps. Both empty means DefaultEpoch.
	StartDate string `json:"start_date" yaml:"start_date"`
	StartTime string `json:"start_time" yaml:"start_time"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrInvalidEpoch    = errors.New("invalid start date or time")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	if _, err := c.Epoch(); err != nil {
		return err
	}
	return nil
}

// Epoch returns the configured timestamp base, or DefaultEpoch when no
// start date is set. The date and time use the whitespace-separated
// layout of the project START_DATE and START_TIME cards.
func (c Config) Epoch() (time.Time, error) {
	return ParseEpoch(c.StartDate, c.StartTime)
}

// ParseEpoch builds an epoch from "YYYY MM DD" and "HH MM" strings.
// When either is empty, or has too few parts, DefaultEpoch is returned.
func ParseEpoch(date, clock string) (time.Time, error) {
	dateParts := strings.Fields(date)
	timeParts := strings.Fields(clock)
	if len(dateParts) < 3 || len(timeParts) < 2 {
		return DefaultEpoch, nil
	}
	vals := make([]int, 0, 5)
	for _, p := range append(dateParts[:3:3], timeParts[:2]...) {
		v, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidEpoch, p)
		}
		vals = append(vals, v)
	}
	if vals[1] < 1 || vals[1] > 12 || vals[2] < 1 || vals[2] > 31 || vals[3] < 0 || vals[3] > 23 || vals[4] < 0 || vals[4] > 59 {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrInvalidEpoch, date, clock)
	}
	return time.Date(vals[0], time.Month(vals[1]), vals[2], vals[3], vals[4], 0, 0, time.UTC), nil
}
