package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/sortutil"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(result *jsx.Result, opts jsx.Options) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# JSX Usage Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writeSummaryTable(&b, result)

	switch opts.Report {
	case jsx.ReportProps:
		f.writePropsSection(&b, result)
	case jsx.ReportLines:
		f.writeLinesSection(&b, result)
	default:
		f.writeUsageSection(&b, result)
	}

	if len(result.Errors) > 0 {
		f.writeErrorsSection(&b, result.Errors)
	}

	if len(result.SuggestedPlugins) > 0 {
		b.WriteString("## Suggested Plugins\n\n")
		for _, plugin := range result.SuggestedPlugins {
			b.WriteString("- `" + plugin + "`\n")
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, result *jsx.Result) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Directory | `%s` |\n", result.Directory)
	fmt.Fprintf(b, "| Files scanned | %s |\n", formatNumber(len(result.Filenames)))
	fmt.Fprintf(b, "| Components | %s |\n", formatNumber(result.ComponentTotal))
	fmt.Fprintf(b, "| Component uses | %s |\n", formatNumber(result.ComponentUsageTotal))
	fmt.Fprintf(b, "| Elapsed | %.2fs |\n\n", result.ElapsedTime)
}

func (f *markdownFormatter) writeUsageSection(b *strings.Builder, result *jsx.Result) {
	b.WriteString("## Component Usage\n\n")

	pairs := sortutil.ByValueDesc(result.ComponentUsage)
	if len(pairs) == 0 {
		b.WriteString("No results.\n\n")
		return
	}

	b.WriteString("| Component | Uses |\n")
	b.WriteString("|-----------|------|\n")
	for _, pair := range pairs {
		fmt.Fprintf(b, "| `<%s>` | %d |\n", pair.Key, pair.Value)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writePropsSection(b *strings.Builder, result *jsx.Result) {
	b.WriteString("## Prop Usage\n\n")

	byUsage := sortutil.Sort(result.PropUsage, sortutil.Desc,
		func(component string, _ map[string]int) int {
			return result.ComponentUsage[component]
		})
	if len(byUsage) == 0 {
		b.WriteString("No results.\n\n")
		return
	}

	for _, pair := range byUsage {
		usage := result.ComponentUsage[pair.Key]
		fmt.Fprintf(b, "### `<%s>` (%d uses)\n\n", pair.Key, usage)
		b.WriteString("| Prop | Count | Share |\n")
		b.WriteString("|------|-------|-------|\n")
		for _, prop := range sortutil.ByValueDesc(pair.Value) {
			share := "-"
			if usage > 0 {
				share = fmt.Sprintf("%d%%", percentOf(prop.Value, usage))
			}
			fmt.Fprintf(b, "| `%s` | %d | %s |\n", prop.Key, prop.Value, share)
		}
		b.WriteString("\n")
	}
}

func (f *markdownFormatter) writeLinesSection(b *strings.Builder, result *jsx.Result) {
	b.WriteString("## Prop Lines\n\n")

	components := sortutil.ByKeyAsc(result.LineUsage)
	if len(components) == 0 {
		b.WriteString("No results.\n\n")
		return
	}

	for _, component := range components {
		fmt.Fprintf(b, "### `<%s>`\n\n", component.Key)
		for _, prop := range sortutil.ByKeyAsc(component.Value) {
			fmt.Fprintf(b, "#### `%s`\n\n", prop.Key)
			for _, occ := range prop.Value {
				fmt.Fprintf(b, "- `%s` at %s:%d\n", occ.PropCode, occ.Filename, occ.StartLoc.Line)
			}
			b.WriteString("\n")
		}
	}
}

func (f *markdownFormatter) writeErrorsSection(b *strings.Builder, errors map[string]jsx.FileError) {
	b.WriteString("## Errors\n\n")
	b.WriteString("| File | Location | Message |\n")
	b.WriteString("|------|----------|--------|\n")
	for _, pair := range sortutil.ByKeyAsc(errors) {
		fmt.Fprintf(b, "| `%s` | %d:%d | %s |\n",
			pair.Key, pair.Value.Loc.Line, pair.Value.Loc.Column, pair.Value.Message)
	}
	b.WriteString("\n")
}
