package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.jsxplorer.yaml",               // Project-specific config (highest priority)
	"~/.config/jsxplorer/config.yaml", // User config
	"/etc/jsxplorer/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.jsxplorer.yaml
// 4. ~/.config/jsxplorer/config.yaml
// 5. /etc/jsxplorer/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths in reverse priority order so higher
		// priority files overwrite lower ones.
		paths := make([]string, len(l.configPaths))
		copy(paths, l.configPaths)
		for i := len(paths)/2 - 1; i >= 0; i-- {
			opp := len(paths) - 1 - i
			paths[i], paths[opp] = paths[opp], paths[i]
		}

		for _, path := range paths {
			expandedPath := expandPath(path)
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it into config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"JSXPLORER_ANALYZER_TIMEOUT": func(v string) error { return parseDuration(v, &config.Analyzer.Timeout) },
		"JSXPLORER_OUTPUT_FORMAT":    func(v string) error { config.Output.DefaultFormat = v; return nil },
		"JSXPLORER_COLOR_MODE":       func(v string) error { config.Output.ColorMode = v; return nil },
		"JSXPLORER_VERBOSE":          func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"JSXPLORER_WATCH_DEBOUNCE":   func(v string) error { return parseDuration(v, &config.Watch.Debounce) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Command lines are whitespace-split from a single variable.
	if cmd := os.Getenv("JSXPLORER_ANALYZER_COMMAND"); cmd != "" {
		config.Analyzer.Command = strings.Fields(cmd)
	}
	if cmd := os.Getenv("JSXPLORER_EDITOR_COMMAND"); cmd != "" {
		config.Editor.Command = strings.Fields(cmd)
	}

	return nil
}

// GetConfigPaths returns the configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	if len(src.Analyzer.Command) > 0 {
		dst.Analyzer.Command = src.Analyzer.Command
	}
	if src.Analyzer.Timeout > 0 {
		dst.Analyzer.Timeout = src.Analyzer.Timeout
	}

	if len(src.Editor.Command) > 0 {
		dst.Editor.Command = src.Editor.Command
	}

	if src.Output.DefaultFormat != "" {
		dst.Output.DefaultFormat = src.Output.DefaultFormat
	}
	if src.Output.ColorMode != "" {
		dst.Output.ColorMode = src.Output.ColorMode
	}
	if src.Output.Verbose {
		dst.Output.Verbose = true
	}

	if src.Watch.Debounce > 0 {
		dst.Watch.Debounce = src.Watch.Debounce
	}
	if len(src.Watch.Extensions) > 0 {
		dst.Watch.Extensions = src.Watch.Extensions
	}
}

func parseBool(value string, target *bool) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("expected boolean, got %q", value)
	}
	*target = parsed
	return nil
}

func parseDuration(value string, target *time.Duration) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("expected duration, got %q", value)
	}
	*target = parsed
	return nil
}
