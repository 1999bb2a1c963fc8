package config

import (
	"errors"
	"testing"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.CurvePoints != DefaultCurvePoints {
		t.Errorf("CurvePoints = %d, want %d", cfg.CurvePoints, DefaultCurvePoints)
	}
	if !cfg.SaveToDB {
		t.Error("SaveToDB = false, want true by default")
	}
	if cfg.DBDir == "" {
		t.Error("DBDir is empty, want XDG data directory")
	}
	if cfg.JSONReport || cfg.MarkdownReport {
		t.Error("report format flags should default to false")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Inputs = []string{"session.csv"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no inputs",
			mutate:  func(c *Config) { c.Inputs = nil },
			wantErr: ErrNoInput,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative batch size",
			mutate:  func(c *Config) { c.BatchSize = -2 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "one curve point",
			mutate:  func(c *Config) { c.CurvePoints = 1 },
			wantErr: ErrInvalidCurvePoints,
		},
		{
			name:    "json alone is fine",
			mutate:  func(c *Config) { c.JSONReport = true },
			wantErr: nil,
		},
		{
			name:    "markdown alone is fine",
			mutate:  func(c *Config) { c.MarkdownReport = true },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if XDGDataDir() == "" {
		t.Error("XDGDataDir() is empty")
	}
	if XDGConfigDir() == "" {
		t.Error("XDGConfigDir() is empty")
	}
	if XDGDataDir() == XDGConfigDir() {
		t.Error("data and config directories should differ")
	}
}
