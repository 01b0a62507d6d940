package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
)

var (
	watchComponents []string
	watchReport     string
	watchProp       string
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Re-run the analysis when source files change",
		Long: `Watch a directory tree for changes to JSX sources and re-run the analysis
after each burst of writes, printing the fresh report.

Only files with the configured extensions trigger a re-run; events are
debounced so a save storm runs the analyzer once. Press Ctrl+C to stop.

Examples:
  jsxplorer watch ./src
  jsxplorer watch --report props ./src`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringSliceVar(&watchComponents, "components", nil, "only analyze these components")
	cmd.Flags().StringVarP(&watchReport, "report", "r", "usage", "report to build (usage, props, lines)")
	cmd.Flags().StringVarP(&watchProp, "prop", "p", "", "prop to trace (lines report only)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	report, err := jsx.ParseReportKind(watchReport)
	if err != nil {
		return err
	}
	opts := jsx.Options{Dir: dir, Components: watchComponents, Report: report, Prop: watchProp}
	if err := opts.Validate(); err != nil {
		return err
	}

	watcher, err := newRecursiveWatcher(dir)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching %s\n", dir)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	// first run before any change arrives
	if err := analyzeAndPrint(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return runWatchLoop(watcher, opts)
}

// newRecursiveWatcher watches the directory and every subdirectory; fsnotify
// does not recurse on its own.
func newRecursiveWatcher(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch directory tree: %w", err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// runWatchLoop debounces relevant events and re-runs the analysis after each
// quiet period.
func runWatchLoop(watcher *fsnotify.Watcher, opts jsx.Options) error {
	cfg := GetGlobalConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	debounce := time.NewTimer(cfg.Watch.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevantEvent(event, cfg.Watch.Extensions) {
				// new directories join the watch set
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				continue
			}
			pending = true
			debounce.Reset(cfg.Watch.Debounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			if err := analyzeAndPrint(opts); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// relevantEvent reports whether the event should trigger a re-run
func relevantEvent(event fsnotify.Event, extensions []string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	ext := filepath.Ext(event.Name)
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func analyzeAndPrint(opts jsx.Options) error {
	cfg := GetGlobalConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Analyzer.Timeout)
	defer cancel()

	analyzer := jsx.NewCommandAnalyzer(cfg.Analyzer.Command)
	result, err := analyzer.Analyze(ctx, jsx.AnalyzeRequest{
		Directory:  opts.Dir,
		Components: opts.Components,
		Prop:       opts.Prop,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("── %s ──\n", time.Now().Format("15:04:05"))
	return writeReport(result, opts)
}
