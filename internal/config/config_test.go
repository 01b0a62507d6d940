package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Analyzer.Command) == 0 || cfg.Analyzer.Command[0] != "npx" {
		t.Errorf("Analyzer.Command = %v", cfg.Analyzer.Command)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Output.DefaultFormat = %q, want text", cfg.Output.DefaultFormat)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", cfg.Watch.Debounce)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "empty analyzer command",
			mutate:  func(c *Config) { c.Analyzer.Command = nil },
			wantErr: true,
		},
		{
			name:    "zero analyzer timeout",
			mutate:  func(c *Config) { c.Analyzer.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "xml" },
			wantErr: true,
		},
		{
			name:   "markdown output format",
			mutate: func(c *Config) { c.Output.DefaultFormat = "markdown" },
		},
		{
			name:    "bad color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "sometimes" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Watch.Extensions = []string{"jsx"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
