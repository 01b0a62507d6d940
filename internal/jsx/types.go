package jsx

import (
	"fmt"
	"strings"
)

// ReportKind selects which aggregate view of the analysis is rendered.
type ReportKind string

const (
	ReportUsage ReportKind = "usage"
	ReportProps ReportKind = "props"
	ReportLines ReportKind = "lines"
)

// String returns the display name of the report kind.
func (k ReportKind) String() string {
	switch k {
	case ReportUsage:
		return "Usage"
	case ReportProps:
		return "Props"
	case ReportLines:
		return "Lines"
	default:
		return string(k)
	}
}

// ParseReportKind parses a user-supplied report name.
func ParseReportKind(s string) (ReportKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "usage", "":
		return ReportUsage, nil
	case "props", "prop":
		return ReportProps, nil
	case "lines", "line":
		return ReportLines, nil
	default:
		return "", fmt.Errorf("unknown report kind %q (available: usage, props, lines)", s)
	}
}

// Location is a 1-based line and 0-based column position in a source file.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Occurrence is one concrete source location where a prop match was found.
type Occurrence struct {
	Filename string   `json:"filename"`
	StartLoc Location `json:"startLoc"`
	EndLoc   Location `json:"endLoc"`
	PropCode string   `json:"propCode"`
}

// FileError records a parse failure reported for a single file.
type FileError struct {
	Loc     Location `json:"loc"`
	Message string   `json:"message"`
}

// Result is the complete output of one analysis run. It is immutable once
// received; every render reads from the same value.
type Result struct {
	Directory           string                             `json:"directory"`
	Filenames           []string                           `json:"filenames"`
	ElapsedTime         float64                            `json:"elapsedTime"`
	ComponentTotal      int                                `json:"componentTotal"`
	ComponentUsageTotal int                                `json:"componentUsageTotal"`
	ComponentUsage      map[string]int                     `json:"componentUsage"`
	PropUsage           map[string]map[string]int          `json:"propUsage"`
	LineUsage           map[string]map[string][]Occurrence `json:"lineUsage"`
	Errors              map[string]FileError               `json:"errors"`
	SuggestedPlugins    []string                           `json:"suggestedPlugins"`
}

// Options describes one analysis request as collected from the user.
type Options struct {
	Dir        string
	Components []string
	Report     ReportKind
	Prop       string
}

// Validate enforces the Options invariant: a prop filter is present and
// non-empty exactly when the Lines report is selected.
func (o Options) Validate() error {
	if o.Dir == "" {
		return fmt.Errorf("no directory selected")
	}
	switch o.Report {
	case ReportUsage, ReportProps:
		if o.Prop != "" {
			return fmt.Errorf("prop filter is only valid for the lines report")
		}
	case ReportLines:
		if strings.TrimSpace(o.Prop) == "" {
			return fmt.Errorf("lines report requires a prop filter")
		}
	default:
		return fmt.Errorf("unknown report kind %q", string(o.Report))
	}
	return nil
}
