package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/sortutil"
)

// csvFormatter formats report rows as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *jsx.Result, opts jsx.Options) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	var err error
	switch opts.Report {
	case jsx.ReportProps:
		err = f.writeProps(writer, result)
	case jsx.ReportLines:
		err = f.writeLines(writer, result)
	default:
		err = f.writeUsage(writer, result)
	}
	if err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

func (f *csvFormatter) writeUsage(writer *csv.Writer, result *jsx.Result) error {
	if err := writer.Write([]string{"Component", "Uses"}); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, pair := range sortutil.ByValueDesc(result.ComponentUsage) {
		record := []string{pair.Key, fmt.Sprintf("%d", pair.Value)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

func (f *csvFormatter) writeProps(writer *csv.Writer, result *jsx.Result) error {
	if err := writer.Write([]string{"Component", "Prop", "Count"}); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	byUsage := sortutil.Sort(result.PropUsage, sortutil.Desc,
		func(component string, _ map[string]int) int {
			return result.ComponentUsage[component]
		})

	for _, component := range byUsage {
		for _, prop := range sortutil.ByValueDesc(component.Value) {
			record := []string{component.Key, prop.Key, fmt.Sprintf("%d", prop.Value)}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}
	return nil
}

func (f *csvFormatter) writeLines(writer *csv.Writer, result *jsx.Result) error {
	headers := []string{"Component", "Prop", "Code", "Filename", "Start Line", "Start Col", "End Line", "End Col"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, component := range sortutil.ByKeyAsc(result.LineUsage) {
		for _, prop := range sortutil.ByKeyAsc(component.Value) {
			for _, occ := range prop.Value {
				record := []string{
					component.Key,
					prop.Key,
					occ.PropCode,
					occ.Filename,
					fmt.Sprintf("%d", occ.StartLoc.Line),
					fmt.Sprintf("%d", occ.StartLoc.Column),
					fmt.Sprintf("%d", occ.EndLoc.Line),
					fmt.Sprintf("%d", occ.EndLoc.Column),
				}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}
	return nil
}
