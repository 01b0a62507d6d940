// Package cli wires the cobra command tree: explore, watch, config and
// version.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jsxplorer/jsxplorer/internal/config"
	"github.com/jsxplorer/jsxplorer/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsxplorer",
		Short: "Explore JSX component usage in your codebase",
		Long: `jsxplorer analyzes how JSX components and their props are used across a
directory and presents the result as an explorable report tree.

It shells out to the jsx-info analyzer and renders usage counts, prop
frequencies and individual prop lines, either interactively in a TUI or as
text, JSON, Markdown or CSV output.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if cmd.Flags().Changed("verbose") {
				cfg.Output.Verbose = verbose
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.DefaultFormat = outputFmt
			}
			if noColor {
				cfg.Output.ColorMode = "never"
			}

			globalConfig = cfg
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")

	// Add subcommands
	rootCmd.AddCommand(newExploreCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("jsxplorer %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the loaded configuration, falling back to defaults
// when commands run outside the cobra lifecycle (tests mostly).
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		globalConfig = config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return GetGlobalConfig().Output.Verbose
}

func colorEnabled() bool {
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !noColor
	}
}

type verboseChecker struct{}

func (verboseChecker) IsVerbose() bool { return isVerbose() }

func newLogger(component string) *logger.Logger {
	return logger.New(component, verboseChecker{})
}
