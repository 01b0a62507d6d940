// Package report transforms a flat analysis result into the tree of nodes the
// explorer view displays. Build is pure: it never mutates the result and two
// calls with the same inputs produce structurally identical trees.
package report

import (
	"fmt"
	"math"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/sortutil"
	"github.com/jsxplorer/jsxplorer/internal/tree"
)

// Command names dispatched by the run/refresh nodes.
const (
	CommandRun     = "run"
	CommandRefresh = "refresh"
)

// RunNode is the command node that starts a new analysis.
func RunNode() *tree.Node {
	return tree.Command("Run analysis", CommandRun, nil).WithIcon("run")
}

// RefreshNode re-runs the last analysis with the same options.
func RefreshNode() *tree.Node {
	return tree.Command("Refresh", CommandRefresh, nil).WithIcon("refresh")
}

// Build renders the full report for a completed analysis: the command nodes,
// the directory summary folder and exactly one report section chosen by the
// options.
func Build(result *jsx.Result, opts jsx.Options) []*tree.Node {
	return []*tree.Node{
		RunNode(),
		RefreshNode(),
		DirectoryFolder(result),
		Section(result, opts),
	}
}

// Section builds the report section folder selected by the options.
func Section(result *jsx.Result, opts jsx.Options) *tree.Node {
	switch opts.Report {
	case jsx.ReportProps:
		return propsSection(result)
	case jsx.ReportLines:
		return linesSection(result)
	default:
		return usageSection(result)
	}
}

// DirectoryFolder summarizes the analyzed directory: file and component
// counts, analysis errors and plugin suggestions.
func DirectoryFolder(result *jsx.Result) *tree.Node {
	children := []*tree.Node{
		tree.Info(fmt.Sprintf("%d files in %.2fs", len(result.Filenames), result.ElapsedTime)),
		tree.Info(fmt.Sprintf("%d components, %d uses", result.ComponentTotal, result.ComponentUsageTotal)),
	}

	if len(result.Errors) > 0 {
		children = append(children, ErrorsFolder(result.Errors))
	}
	if len(result.SuggestedPlugins) > 0 {
		children = append(children, pluginsFolder(result.SuggestedPlugins))
	}

	return tree.Folder(result.Directory, children)
}

// ErrorsFolder lists per-file analysis failures, sorted by filename.
func ErrorsFolder(errors map[string]jsx.FileError) *tree.Node {
	children := make([]*tree.Node, 0, len(errors))
	for _, pair := range sortutil.ByKeyAsc(errors) {
		ferr := pair.Value
		node := tree.FileLoc(pair.Key, pair.Key,
			ferr.Loc.Line, ferr.Loc.Column, ferr.Loc.Line, ferr.Loc.Column)
		node.Description = ferr.Message
		node.Icon = "error"
		children = append(children, node)
	}
	return tree.Folder("Errors", children).WithIcon("error")
}

func pluginsFolder(plugins []string) *tree.Node {
	children := make([]*tree.Node, 0, len(plugins))
	for _, plugin := range plugins {
		children = append(children, tree.Info(plugin).WithIcon("plugin"))
	}
	return tree.Folder("Suggested plugins", children).WithIcon("plugin")
}

func usageSection(result *jsx.Result) *tree.Node {
	children := make([]*tree.Node, 0, len(result.ComponentUsage))
	for _, pair := range sortutil.ByValueDesc(result.ComponentUsage) {
		children = append(children, tree.Info(fmt.Sprintf("%d <%s>", pair.Value, pair.Key)))
	}
	return tree.Folder("Usage", children).WithIcon("report")
}

func propsSection(result *jsx.Result) *tree.Node {
	byUsage := sortutil.Sort(result.PropUsage, sortutil.Desc,
		func(component string, _ map[string]int) int {
			return result.ComponentUsage[component]
		})

	children := make([]*tree.Node, 0, len(byUsage))
	for _, pair := range byUsage {
		children = append(children, componentPropsFolder(pair.Key, pair.Value, result.ComponentUsage[pair.Key]))
	}
	return tree.Folder("Props", children).WithIcon("report")
}

func componentPropsFolder(component string, props map[string]int, totalUsage int) *tree.Node {
	children := make([]*tree.Node, 0, len(props))
	for _, pair := range sortutil.ByValueDesc(props) {
		node := tree.Info(fmt.Sprintf("%d %s", pair.Value, pair.Key))
		if totalUsage > 0 {
			node.Description = fmt.Sprintf("%d%%", percent(pair.Value, totalUsage))
		}
		children = append(children, node)
	}
	return tree.Folder(fmt.Sprintf("<%s>", component), children)
}

func linesSection(result *jsx.Result) *tree.Node {
	byName := sortutil.ByKeyAsc(result.LineUsage)

	children := make([]*tree.Node, 0, len(byName))
	for _, pair := range byName {
		children = append(children, componentLinesFolder(pair.Key, pair.Value))
	}
	return tree.Folder("Lines", children).WithIcon("report")
}

func componentLinesFolder(component string, props map[string][]jsx.Occurrence) *tree.Node {
	children := make([]*tree.Node, 0, len(props))
	for _, pair := range sortutil.ByKeyAsc(props) {
		children = append(children, propLinesFolder(pair.Key, pair.Value))
	}
	return tree.Folder(fmt.Sprintf("<%s>", component), children)
}

func propLinesFolder(prop string, occurrences []jsx.Occurrence) *tree.Node {
	children := make([]*tree.Node, 0, len(occurrences))
	for _, occ := range occurrences {
		node := tree.FileLoc(occ.PropCode, occ.Filename,
			occ.StartLoc.Line, occ.StartLoc.Column, occ.EndLoc.Line, occ.EndLoc.Column)
		node.Description = fmt.Sprintf("%s:%d", occ.Filename, occ.StartLoc.Line)
		children = append(children, node)
	}
	return tree.Folder(prop, children)
}

func percent(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}
