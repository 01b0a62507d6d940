package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Analyzer AnalyzerConfig `yaml:"analyzer" json:"analyzer"`
	Editor   EditorConfig   `yaml:"editor" json:"editor"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Watch    WatchConfig    `yaml:"watch" json:"watch"`
}

// AnalyzerConfig configures the external analysis command
type AnalyzerConfig struct {
	Command []string      `yaml:"command" json:"command"` // argv form, e.g. ["npx", "jsx-info"]
	Timeout time.Duration `yaml:"timeout" json:"timeout"` // per-run timeout
}

// EditorConfig configures jump-to-editor navigation
type EditorConfig struct {
	// Command is argv form with {file}, {line}, {column} placeholders.
	// Empty means open locations in the built-in source viewer.
	Command []string `yaml:"command" json:"command"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	Emoji         bool   `yaml:"emoji" json:"emoji"`                   // emoji icons in text output
}

// WatchConfig configures the watch command
type WatchConfig struct {
	Debounce   time.Duration `yaml:"debounce" json:"debounce"`     // quiet period before re-analysis
	Extensions []string      `yaml:"extensions" json:"extensions"` // file extensions that trigger a rerun
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Analyzer: AnalyzerConfig{
			Command: []string{"npx", "jsx-info"},
			Timeout: 120 * time.Second,
		},
		Editor: EditorConfig{
			Command: nil,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Emoji:         true,
		},
		Watch: WatchConfig{
			Debounce:   500 * time.Millisecond,
			Extensions: []string{".js", ".jsx", ".ts", ".tsx"},
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Analyzer.Command) == 0 {
		return fmt.Errorf("analyzer command must not be empty")
	}
	if c.Analyzer.Timeout <= 0 {
		return fmt.Errorf("analyzer timeout must be positive")
	}

	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}

	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}
	for _, ext := range c.Watch.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("invalid watch extension %q (must start with a dot)", ext)
		}
	}

	return nil
}
