package jsx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// AnalyzeRequest carries the subset of Options the analyzer needs.
type AnalyzeRequest struct {
	Directory  string
	Components []string
	Prop       string
}

// Analyzer performs the actual JSX analysis. Walking source trees and counting
// usage happens entirely behind this interface; the rest of the program only
// consumes the Result.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*Result, error)
}

// CommandAnalyzer shells out to the jsx-info CLI and decodes its JSON report.
type CommandAnalyzer struct {
	// Command is the analyzer invocation split into argv form,
	// e.g. ["npx", "jsx-info"].
	Command []string
}

// NewCommandAnalyzer creates an analyzer backed by the given command line.
// An empty command falls back to "npx jsx-info".
func NewCommandAnalyzer(command []string) *CommandAnalyzer {
	if len(command) == 0 {
		command = []string{"npx", "jsx-info"}
	}
	return &CommandAnalyzer{Command: command}
}

func (a *CommandAnalyzer) Analyze(ctx context.Context, req AnalyzeRequest) (*Result, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("no directory to analyze")
	}

	args := append([]string{}, a.Command[1:]...)
	args = append(args, "--json", "--directory", req.Directory)
	if req.Prop != "" {
		args = append(args, "--prop", req.Prop)
	}
	args = append(args, req.Components...)

	cmd := exec.CommandContext(ctx, a.Command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("analyzer failed: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("analyzer failed: %w", err)
	}

	return DecodeResult(stdout.Bytes())
}

// DecodeResult parses a jsx-info JSON report and normalizes absent mappings
// so callers never see nil maps.
func DecodeResult(data []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis report: %w", err)
	}

	if result.ComponentUsage == nil {
		result.ComponentUsage = make(map[string]int)
	}
	if result.PropUsage == nil {
		result.PropUsage = make(map[string]map[string]int)
	}
	if result.LineUsage == nil {
		result.LineUsage = make(map[string]map[string][]Occurrence)
	}
	if result.Errors == nil {
		result.Errors = make(map[string]FileError)
	}

	return &result, nil
}

// lastLine returns the last non-empty line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
