package formatter

import (
	"fmt"
	"strings"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/report"
	"github.com/jsxplorer/jsxplorer/internal/tree"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(result *jsx.Result, opts jsx.Options) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeSummary(&b, result)

	if len(result.Errors) > 0 {
		f.writeTree(&b, "error", report.ErrorsFolder(result.Errors))
	}

	f.writeTree(&b, "statistics", report.Section(result, opts))

	if len(result.SuggestedPlugins) > 0 {
		f.writePlugins(&b, result.SuggestedPlugins)
	}

	return []byte(b.String()), nil
}

// writeHeader writes a box-drawn report title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "JSX Usage Report"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes directory-level counts with tree-style formatting
func (f *terminalFormatter) writeSummary(b *strings.Builder, result *jsx.Result) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Summary\n")

	items := []termfmt.TreeItem{
		{Label: "Directory", Value: result.Directory},
		{Label: "Files scanned", Value: formatNumber(len(result.Filenames))},
		{Label: "Components", Value: formatNumber(result.ComponentTotal)},
		{Label: "Component uses", Value: formatNumber(result.ComponentUsageTotal)},
		{Label: "Elapsed", Value: fmt.Sprintf("%.2fs", result.ElapsedTime), Last: true},
	}

	view := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(view + "\n\n")
}

// writeTree renders a report folder and its nested children
func (f *terminalFormatter) writeTree(b *strings.Builder, emojiKey string, node *tree.Node) {
	symbol := termfmt.GetEmoji(emojiKey, f.opts)
	b.WriteString(symbol + " " + node.Label + "\n")

	view := termfmt.TreeViewWithOptions(treeItems(node.Children), f.opts)
	b.WriteString(view + "\n\n")
}

func (f *terminalFormatter) writePlugins(b *strings.Builder, plugins []string) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Suggested Plugins\n")

	for i, plugin := range plugins {
		if i == len(plugins)-1 {
			fmt.Fprintf(b, "└─ %s\n", plugin)
		} else {
			fmt.Fprintf(b, "├─ %s\n", plugin)
		}
	}
	b.WriteString("\n")
}

// treeItems converts report nodes into go-termfmt tree items, recursively
func treeItems(nodes []*tree.Node) []termfmt.TreeItem {
	items := make([]termfmt.TreeItem, 0, len(nodes))
	for i, n := range nodes {
		items = append(items, termfmt.TreeItem{
			Label:    n.Label,
			Value:    n.Description,
			Children: treeItems(n.Children),
			Last:     i == len(nodes)-1,
		})
	}
	return items
}
