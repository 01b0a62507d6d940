package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsxplorer/jsxplorer/internal/nav"
)

// SourceViewer shows a source file with the reported range highlighted and
// scrolled into view. It implements the nav opener protocol, so navigation
// failures stay inside the dispatcher and the previous document is kept.
type SourceViewer struct {
	viewport viewport.Model
	filename string
	sel      nav.Selection
	loaded   bool

	width  int
	height int
}

// NewSourceViewer creates an empty viewer
func NewSourceViewer() *SourceViewer {
	return &SourceViewer{viewport: viewport.New(80, 24)}
}

// SetSize resizes the viewer to the terminal dimensions
func (v *SourceViewer) SetSize(width, height int) {
	v.width = width
	v.height = height
	// header and footer rows
	v.viewport.Width = width
	v.viewport.Height = max(height-4, 1)
}

// Loaded reports whether a document is currently shown
func (v *SourceViewer) Loaded() bool {
	return v.loaded
}

// Open loads the file, highlights the selection and centers it in the
// viewport. Selection positions are 0-based.
func (v *SourceViewer) Open(filename string, sel nav.Selection) error {
	data, err := os.ReadFile(filename) // #nosec G304 - filename comes from the analysis result
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if sel.Start.Line >= len(lines) {
		return fmt.Errorf("line %d beyond end of %s", sel.Start.Line+1, filename)
	}

	v.filename = filename
	v.sel = sel
	v.viewport.SetContent(v.renderLines(lines))
	v.loaded = true
	v.center()
	return nil
}

func (v *SourceViewer) renderLines(lines []string) string {
	styles := GetStyles()

	numWidth := len(fmt.Sprintf("%d", len(lines)))
	var b strings.Builder
	for i, line := range lines {
		number := styles.Muted.Render(fmt.Sprintf("%*d │ ", numWidth, i+1))

		if i >= v.sel.Start.Line && i <= v.sel.End.Line {
			line = styles.Highlight.Render(line)
		}

		b.WriteString(number + line + "\n")
	}
	return b.String()
}

// center scrolls the selection to the middle of the viewport
func (v *SourceViewer) center() {
	offset := v.sel.Start.Line - v.viewport.Height/2
	v.viewport.SetYOffset(max(offset, 0))
}

// Update forwards scrolling keys to the viewport
func (v *SourceViewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// View renders the viewer with a location header and key hints
func (v *SourceViewer) View() string {
	styles := GetStyles()

	header := styles.Header.Render(fmt.Sprintf("%s:%d", v.filename, v.sel.Start.Line+1))
	footer := styles.Muted.Render("↑↓/PgUp/PgDn Scroll • Esc Back • q Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		styles.Muted.Render(strings.Repeat("─", max(v.width, 1))),
		v.viewport.View(),
		footer,
	)
}
