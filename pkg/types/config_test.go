package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "sqlite with empty DataDir is valid at config level",
			config:  Config{Backend: "sqlite", DataDir: ""},
			wantErr: nil,
		},
		{
			name:    "unknown log level",
			config:  Config{Backend: "sqlite", LogLevel: "chatty"},
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:    "non-numeric start date",
			config:  Config{Backend: "sqlite", StartDate: "2014 JAN 01", StartTime: "00 00"},
			wantErr: ErrInvalidEpoch,
		},
		{
			name:    "out of range start time",
			config:  Config{Backend: "sqlite", StartDate: "2014 01 01", StartTime: "25 00"},
			wantErr: ErrInvalidEpoch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseEpoch(t *testing.T) {
	t.Run("defaults when date missing", func(t *testing.T) {
		got, err := ParseEpoch("", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultEpoch, got)
	})

	t.Run("defaults when time has too few parts", func(t *testing.T) {
		got, err := ParseEpoch("2002 08 30", "12")
		require.NoError(t, err)
		assert.Equal(t, DefaultEpoch, got)
	})

	t.Run("parses card layout", func(t *testing.T) {
		got, err := ParseEpoch("2002 08 30", "12 30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2002, time.August, 30, 12, 30, 0, 0, time.UTC), got)
	})
}
