package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsxplorer/jsxplorer/internal/formatter"
	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/ui"
)

var (
	exploreComponents []string
	exploreReport     string
	exploreProp       string
	exploreNoTUI      bool
	exploreOutputFile string
	exploreTimeout    time.Duration
	exploreTheme      string
)

func newExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [directory]",
		Short: "Analyze JSX usage and browse the report",
		Long: `Analyze a directory of JSX sources and explore the result.

By default this opens the interactive report tree. With --no-tui the chosen
report is printed once in the configured output format.

Examples:
  jsxplorer explore ./src
  jsxplorer explore --report props ./src
  jsxplorer explore --report lines --prop onClick ./src
  jsxplorer explore --no-tui -o json ./src > report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExplore,
	}

	cmd.Flags().StringSliceVar(&exploreComponents, "components", nil, "only analyze these components")
	cmd.Flags().StringVarP(&exploreReport, "report", "r", "usage", "report to build (usage, props, lines)")
	cmd.Flags().StringVarP(&exploreProp, "prop", "p", "", "prop to trace (lines report only)")
	cmd.Flags().BoolVar(&exploreNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&exploreOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().DurationVar(&exploreTimeout, "timeout", 0, "analysis timeout (default from config)")
	cmd.Flags().StringVar(&exploreTheme, "theme", "", "TUI color theme (default, high-contrast, minimal)")

	return cmd
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	analyzer := jsx.NewCommandAnalyzer(cfg.Analyzer.Command)
	log := newLogger("cli")

	if !exploreNoTUI {
		if exploreTheme != "" && !ui.SetThemeByName(exploreTheme) {
			return fmt.Errorf("unknown theme: %s (available: %v)", exploreTheme, ui.GetAvailableThemes())
		}
		return ui.Run(analyzer, cfg.Editor.Command, dir, log)
	}

	opts, err := exploreOptions(dir)
	if err != nil {
		return err
	}

	timeout := exploreTimeout
	if !cmd.Flag("timeout").Changed {
		timeout = cfg.Analyzer.Timeout
	}
	ctx, cancel := analysisContext(context.Background(), timeout)
	defer cancel()

	result, err := analyzer.Analyze(ctx, jsx.AnalyzeRequest{
		Directory:  opts.Dir,
		Components: opts.Components,
		Prop:       opts.Prop,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeReport(result, *opts)
}

// analysisContext applies the analyze deadline; zero or negative means the
// run is unbounded rather than instantly expired.
func analysisContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// exploreOptions builds and validates analysis options from the flags
func exploreOptions(dir string) (*jsx.Options, error) {
	if dir == "" {
		dir = "."
	}

	report, err := jsx.ParseReportKind(exploreReport)
	if err != nil {
		return nil, err
	}

	opts := jsx.Options{
		Dir:        dir,
		Components: exploreComponents,
		Report:     report,
		Prop:       exploreProp,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func writeReport(result *jsx.Result, opts jsx.Options) error {
	cfg := GetGlobalConfig()

	f, err := getFormatter(cfg.Output.DefaultFormat, colorEnabled(), cfg.Output.Emoji)
	if err != nil {
		return err
	}

	output, err := f.Format(result, opts)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if exploreOutputFile != "" {
		return writeOutputBytesToFile(output, exploreOutputFile)
	}

	_, err = os.Stdout.Write(output)
	return err
}

// getFormatter returns the appropriate formatter for the given format
func getFormatter(format string, color, emoji bool) (formatter.Formatter, error) {
	switch format {
	case "json":
		return formatter.NewJSON(), nil
	case "markdown", "md":
		return formatter.NewMarkdown(), nil
	case "csv":
		return formatter.NewCSV(), nil
	case "text", "terminal", "":
		return formatter.NewTerminal(color, emoji), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
