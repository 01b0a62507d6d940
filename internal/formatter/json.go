package formatter

import (
	"encoding/json"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/sortutil"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(result *jsx.Result, opts jsx.Options) ([]byte, error) {
	output := &JSONOutput{
		Summary: createSummary(result),
		Report:  opts.Report.String(),
	}

	switch opts.Report {
	case jsx.ReportProps:
		output.Props = createPropOutputs(result)
	case jsx.ReportLines:
		output.Lines = createLineOutputs(result)
	default:
		output.Usage = createUsageOutputs(result)
	}

	if len(result.Errors) > 0 {
		output.Errors = createErrorOutputs(result.Errors)
	}
	output.SuggestedPlugins = result.SuggestedPlugins

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the top-level JSON report structure
type JSONOutput struct {
	Summary          *SummaryOutput   `json:"summary"`
	Report           string           `json:"report"`
	Usage            []*UsageOutput   `json:"usage,omitempty"`
	Props            []*PropOutput    `json:"props,omitempty"`
	Lines            []*LineOutput    `json:"lines,omitempty"`
	Errors           []*ErrorOutput   `json:"errors,omitempty"`
	SuggestedPlugins []string         `json:"suggested_plugins,omitempty"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Directory           string  `json:"directory"`
	Files               int     `json:"files"`
	ComponentTotal      int     `json:"component_total"`
	ComponentUsageTotal int     `json:"component_usage_total"`
	ElapsedSeconds      float64 `json:"elapsed_seconds"`
}

// UsageOutput represents one component's usage count
type UsageOutput struct {
	Component string `json:"component"`
	Count     int    `json:"count"`
}

// PropOutput represents prop counts for one component
type PropOutput struct {
	Component string             `json:"component"`
	Usage     int                `json:"usage"`
	Props     []*PropCountOutput `json:"props"`
}

// PropCountOutput represents one prop's count within a component
type PropCountOutput struct {
	Prop  string `json:"prop"`
	Count int    `json:"count"`
}

// LineOutput represents one prop occurrence with its source location
type LineOutput struct {
	Component string `json:"component"`
	Prop      string `json:"prop"`
	Code      string `json:"code"`
	Filename  string `json:"filename"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// ErrorOutput represents a per-file analysis failure
type ErrorOutput struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

func createSummary(result *jsx.Result) *SummaryOutput {
	return &SummaryOutput{
		Directory:           result.Directory,
		Files:               len(result.Filenames),
		ComponentTotal:      result.ComponentTotal,
		ComponentUsageTotal: result.ComponentUsageTotal,
		ElapsedSeconds:      result.ElapsedTime,
	}
}

func createUsageOutputs(result *jsx.Result) []*UsageOutput {
	pairs := sortutil.ByValueDesc(result.ComponentUsage)
	outputs := make([]*UsageOutput, 0, len(pairs))
	for _, pair := range pairs {
		outputs = append(outputs, &UsageOutput{Component: pair.Key, Count: pair.Value})
	}
	return outputs
}

func createPropOutputs(result *jsx.Result) []*PropOutput {
	byUsage := sortutil.Sort(result.PropUsage, sortutil.Desc,
		func(component string, _ map[string]int) int {
			return result.ComponentUsage[component]
		})

	outputs := make([]*PropOutput, 0, len(byUsage))
	for _, pair := range byUsage {
		props := make([]*PropCountOutput, 0, len(pair.Value))
		for _, prop := range sortutil.ByValueDesc(pair.Value) {
			props = append(props, &PropCountOutput{Prop: prop.Key, Count: prop.Value})
		}
		outputs = append(outputs, &PropOutput{
			Component: pair.Key,
			Usage:     result.ComponentUsage[pair.Key],
			Props:     props,
		})
	}
	return outputs
}

func createLineOutputs(result *jsx.Result) []*LineOutput {
	var outputs []*LineOutput
	for _, component := range sortutil.ByKeyAsc(result.LineUsage) {
		for _, prop := range sortutil.ByKeyAsc(component.Value) {
			for _, occ := range prop.Value {
				outputs = append(outputs, &LineOutput{
					Component: component.Key,
					Prop:      prop.Key,
					Code:      occ.PropCode,
					Filename:  occ.Filename,
					StartLine: occ.StartLoc.Line,
					StartCol:  occ.StartLoc.Column,
					EndLine:   occ.EndLoc.Line,
					EndCol:    occ.EndLoc.Column,
				})
			}
		}
	}
	return outputs
}

func createErrorOutputs(errors map[string]jsx.FileError) []*ErrorOutput {
	pairs := sortutil.ByKeyAsc(errors)
	outputs := make([]*ErrorOutput, 0, len(pairs))
	for _, pair := range pairs {
		outputs = append(outputs, &ErrorOutput{
			Filename: pair.Key,
			Line:     pair.Value.Loc.Line,
			Column:   pair.Value.Loc.Column,
			Message:  pair.Value.Message,
		})
	}
	return outputs
}
