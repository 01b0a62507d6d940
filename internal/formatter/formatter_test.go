package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
)

func sampleResult() *jsx.Result {
	return &jsx.Result{
		Directory:           "/app/src",
		Filenames:           []string{"App.jsx", "Button.jsx"},
		ElapsedTime:         0.42,
		ComponentTotal:      2,
		ComponentUsageTotal: 13,
		ComponentUsage:      map[string]int{"Button": 10, "Card": 3},
		PropUsage: map[string]map[string]int{
			"Button": {"onClick": 6, "variant": 3},
			"Card":   {"title": 2},
		},
		LineUsage: map[string]map[string][]jsx.Occurrence{
			"Button": {
				"onClick": {
					{
						Filename: "App.jsx",
						StartLoc: jsx.Location{Line: 12, Column: 4},
						EndLoc:   jsx.Location{Line: 12, Column: 20},
						PropCode: "onClick={save}",
					},
				},
			},
		},
		Errors: map[string]jsx.FileError{
			"broken.jsx": {
				Loc:     jsx.Location{Line: 3, Column: 0},
				Message: "Unexpected token",
			},
		},
		SuggestedPlugins: []string{"typescript"},
	}
}

func TestTerminalFormat(t *testing.T) {
	f := NewTerminal(false, false)

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportUsage})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	output := string(out)

	for _, want := range []string{
		"JSX Usage Report",
		"/app/src",
		"10 <Button>",
		"3 <Card>",
		"Unexpected token",
		"typescript",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	buttonPos := strings.Index(output, "10 <Button>")
	cardPos := strings.Index(output, "3 <Card>")
	if buttonPos > cardPos {
		t.Error("Button should appear before Card in usage output")
	}
}

func TestTerminalFormatPropsReport(t *testing.T) {
	f := NewTerminal(false, false)

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportProps})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	output := string(out)

	if !strings.Contains(output, "6 onClick") {
		t.Errorf("output missing prop count:\n%s", output)
	}
	if !strings.Contains(output, "60%") {
		t.Errorf("output missing prop share:\n%s", output)
	}
}

func TestJSONFormat(t *testing.T) {
	f := NewJSON()

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportUsage})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Summary.Directory != "/app/src" {
		t.Errorf("Summary.Directory = %q", decoded.Summary.Directory)
	}
	if decoded.Report != "Usage" {
		t.Errorf("Report = %q, want Usage", decoded.Report)
	}
	if len(decoded.Usage) != 2 {
		t.Fatalf("len(Usage) = %d, want 2", len(decoded.Usage))
	}
	if decoded.Usage[0].Component != "Button" || decoded.Usage[0].Count != 10 {
		t.Errorf("Usage[0] = %+v", decoded.Usage[0])
	}
	if len(decoded.Errors) != 1 || decoded.Errors[0].Filename != "broken.jsx" {
		t.Errorf("Errors = %+v", decoded.Errors)
	}
}

func TestJSONFormatLinesReport(t *testing.T) {
	f := NewJSON()

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportLines, Prop: "onClick"})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(decoded.Lines))
	}
	line := decoded.Lines[0]
	if line.Component != "Button" || line.Prop != "onClick" || line.StartLine != 12 {
		t.Errorf("Lines[0] = %+v", line)
	}
}

func TestMarkdownFormat(t *testing.T) {
	f := NewMarkdown()

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportProps})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	output := string(out)

	for _, want := range []string{
		"# JSX Usage Report",
		"## Summary",
		"### `<Button>` (10 uses)",
		"| `onClick` | 6 | 60% |",
		"## Errors",
		"`broken.jsx`",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMarkdownFormatEmptyUsage(t *testing.T) {
	f := NewMarkdown()

	result := &jsx.Result{Directory: "/empty"}
	out, err := f.Format(result, jsx.Options{})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	if !strings.Contains(string(out), "No results.") {
		t.Error("empty usage section should say No results.")
	}
}

func TestCSVFormat(t *testing.T) {
	f := NewCSV()

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportUsage})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "Component,Uses" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Button,10" {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestCSVFormatLines(t *testing.T) {
	f := NewCSV()

	out, err := f.Format(sampleResult(), jsx.Options{Report: jsx.ReportLines, Prop: "onClick"})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	output := string(out)

	if !strings.Contains(output, "Button,onClick,onClick={save},App.jsx,12,4,12,20") {
		t.Errorf("missing occurrence row:\n%s", output)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.input); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
