// Package ui hosts the explorer in a bubbletea program: a collapsible report
// tree, the options prompt flow and an inline source viewer.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsxplorer/jsxplorer/internal/explorer"
	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/logger"
	"github.com/jsxplorer/jsxplorer/internal/nav"
	"github.com/jsxplorer/jsxplorer/internal/report"
	"github.com/jsxplorer/jsxplorer/internal/tree"
)

type viewState int

const (
	viewTree viewState = iota
	viewPrompt
	viewSource
	viewHelp
)

// row is one visible line of the flattened tree
type row struct {
	node  *tree.Node
	depth int
}

// statusMessenger surfaces provider and navigation errors on the status line
type statusMessenger struct {
	ch chan statusMsg
}

func (s *statusMessenger) ShowError(msg string) {
	s.ch <- statusMsg{text: msg, isErr: true}
}

// Model is the top-level bubbletea model
type Model struct {
	provider *explorer.Provider
	bridge   *promptBridge
	viewer   *SourceViewer
	source   *nav.Dispatcher
	editor   *nav.EditorOpener
	log      *logger.Logger

	modeCh   chan struct{}
	statusCh chan statusMsg

	rows      []row
	collapsed map[*tree.Node]bool
	cursor    int

	state    viewState
	prompt   *promptFlow
	status   statusMsg
	width    int
	height   int
	ready    bool
	quitting bool

	ctx        context.Context
	defaultDir string
}

// NewModel wires the provider, prompt bridge and navigation dispatchers
// around the given analyzer.
func NewModel(analyzer jsx.Analyzer, editorCommand []string, defaultDir string, log *logger.Logger) *Model {
	if log == nil {
		log = logger.New("ui", nil)
	}

	statusCh := make(chan statusMsg, 8)
	messenger := &statusMessenger{ch: statusCh}

	bridge := newPromptBridge()
	provider := explorer.New(analyzer, bridge, messenger, log.WithComponent("explorer"))

	viewer := NewSourceViewer()

	m := &Model{
		provider:   provider,
		bridge:     bridge,
		viewer:     viewer,
		source:     nav.NewDispatcher(viewer, messenger, log.WithComponent("nav")),
		editor:     nav.NewEditorOpener(editorCommand),
		log:        log,
		modeCh:     make(chan struct{}, 8),
		statusCh:   statusCh,
		collapsed:  make(map[*tree.Node]bool),
		ctx:        context.Background(),
		defaultDir: defaultDir,
	}

	provider.OnChange(func() {
		select {
		case m.modeCh <- struct{}{}:
		default:
		}
	})

	m.rebuildRows()
	return m
}

// Init starts the channel listeners
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForModeChange(m.modeCh),
		waitForPromptRequest(m.bridge.requests),
		waitForStatus(m.statusCh),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewer.SetSize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case modeChangedMsg:
		// A mode change always carries a fresh tree; folders start expanded.
		m.collapsed = make(map[*tree.Node]bool)
		m.rebuildRows()
		return m, waitForModeChange(m.modeCh)

	case promptRequestMsg:
		m.prompt = newPromptFlow(m.defaultDir)
		m.state = viewPrompt
		return m, tea.Batch(waitForPromptRequest(m.bridge.requests), m.prompt.input.Focus())

	case statusMsg:
		m.status = msg
		return m, waitForStatus(m.statusCh)

	case runFinishedMsg:
		if msg.err != nil {
			m.status = statusMsg{text: msg.err.Error(), isErr: true}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == viewSource {
		return m, m.viewer.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case viewPrompt:
		return m.handlePromptKey(msg)
	case viewSource:
		return m.handleSourceKey(msg)
	case viewHelp:
		m.state = viewTree
		return m, nil
	default:
		return m.handleTreeKey(msg)
	}
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.bridge.results <- nil
		m.quitting = true
		return m, tea.Quit
	}

	done, opts, cmd := m.prompt.Update(msg)
	if !done {
		return m, cmd
	}

	m.state = viewTree
	m.prompt = nil
	m.bridge.results <- opts
	return m, nil
}

func (m *Model) handleSourceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.state = viewTree
		return m, nil
	}
	return m, m.viewer.Update(msg)
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "right", "l":
		m.expand()
	case "left", "h":
		m.collapse()
	case "enter", " ":
		return m.activate()
	case "e":
		return m.openInEditor()
	case "r":
		return m, m.startRefresh()
	case "?":
		m.state = viewHelp
	}
	return m, nil
}

func (m *Model) currentNode() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m *Model) expand() {
	node := m.currentNode()
	if node == nil || node.Kind != tree.KindFolder || !m.collapsed[node] {
		return
	}
	delete(m.collapsed, node)
	m.rebuildRows()
}

// collapse folds the current folder, or jumps to the parent when the cursor
// sits on a leaf or an already-folded node.
func (m *Model) collapse() {
	node := m.currentNode()
	if node == nil {
		return
	}

	if node.Kind == tree.KindFolder && !m.collapsed[node] {
		m.collapsed[node] = true
		m.rebuildRows()
		return
	}

	if parent := m.provider.GetParent(node); parent != nil {
		for i, r := range m.rows {
			if r.node == parent {
				m.cursor = i
				return
			}
		}
	}
}

func (m *Model) activate() (tea.Model, tea.Cmd) {
	node := m.currentNode()
	if node == nil {
		return m, nil
	}

	switch node.Kind {
	case tree.KindFolder:
		if m.collapsed[node] {
			delete(m.collapsed, node)
		} else {
			m.collapsed[node] = true
		}
		m.rebuildRows()
	case tree.KindCommand:
		switch node.Command {
		case report.CommandRun:
			return m, m.startRun()
		case report.CommandRefresh:
			return m, m.startRefresh()
		}
	case tree.KindFileLocation:
		m.source.OpenFile(node.Location)
		if m.viewer.Loaded() {
			m.state = viewSource
		}
	}
	return m, nil
}

// openInEditor suspends the program and hands the terminal to the editor;
// running it inline would fight bubbletea for the alternate screen.
func (m *Model) openInEditor() (tea.Model, tea.Cmd) {
	node := m.currentNode()
	if node == nil || node.Kind != tree.KindFileLocation {
		return m, nil
	}

	cmd, err := m.editor.Cmd(node.Location.Filename, nav.FromFileLocation(node.Location))
	if err != nil {
		m.log.Error("failed to open %s: %v", node.Location.Filename, err)
		m.status = statusMsg{text: fmt.Sprintf("cannot open %s: %v", node.Location.Filename, err), isErr: true}
		return m, nil
	}

	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return statusMsg{text: "editor failed: " + err.Error(), isErr: true}
		}
		return nil
	})
}

func (m *Model) startRun() tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg{err: m.provider.Run(m.ctx)}
	}
}

func (m *Model) startRefresh() tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg{err: m.provider.Refresh(m.ctx)}
	}
}

// rebuildRows flattens the provider's tree into visible rows, honoring the
// expansion state, and clamps the cursor.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	m.appendRows(m.provider.GetChildren(nil), 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) appendRows(nodes []*tree.Node, depth int) {
	for _, node := range nodes {
		m.rows = append(m.rows, row{node: node, depth: depth})
		if node.Kind == tree.KindFolder && !m.collapsed[node] {
			m.appendRows(node.Children, depth+1)
		}
	}
}

// View renders the current view
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	styles := GetStyles()

	switch m.state {
	case viewPrompt:
		return m.prompt.View(styles, m.width, m.height)
	case viewSource:
		return m.viewer.View()
	case viewHelp:
		return m.renderHelp(styles)
	default:
		return m.renderTree(styles)
	}
}

func (m *Model) renderTree(styles *Styles) string {
	var lines []string
	lines = append(lines, styles.Title.Render("jsxplorer"), "")

	visible := m.visibleWindow()
	for i := visible.start; i < visible.end; i++ {
		lines = append(lines, m.renderRow(styles, m.rows[i], i == m.cursor))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	statusLine := m.renderStatus(styles)
	hints := styles.Muted.Render("↑↓ Move • ←→ Fold • Enter Activate • e Editor • r Refresh • ? Help • q Quit")

	gap := m.height - lipgloss.Height(body) - 2
	if gap < 0 {
		gap = 0
	}

	return body + strings.Repeat("\n", gap+1) + statusLine + "\n" + hints
}

type window struct {
	start int
	end   int
}

// visibleWindow keeps the cursor inside the rows that fit on screen
func (m *Model) visibleWindow() window {
	capacity := m.height - 5
	if capacity < 1 {
		capacity = 1
	}
	if len(m.rows) <= capacity {
		return window{start: 0, end: len(m.rows)}
	}

	start := m.cursor - capacity/2
	if start < 0 {
		start = 0
	}
	end := start + capacity
	if end > len(m.rows) {
		end = len(m.rows)
		start = end - capacity
	}
	return window{start: start, end: end}
}

func (m *Model) renderRow(styles *Styles, r row, selected bool) string {
	item := m.provider.GetTreeItem(r.node)

	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	if item.Expandable {
		marker = "▾ "
		if m.collapsed[r.node] {
			marker = "▸ "
		}
	}

	label := item.Label
	if glyph := IconGlyph(item.Icon); glyph != "" {
		label = glyph + " " + label
	}

	line := indent + marker + label
	if item.Description != "" {
		line += "  " + styles.Muted.Render(item.Description)
	}

	if selected {
		return styles.Selected.Render("▶ ") + line
	}
	return "  " + line
}

func (m *Model) renderStatus(styles *Styles) string {
	if m.status.text == "" {
		return ""
	}
	if m.status.isErr {
		return styles.Error.Render("✗ " + m.status.text)
	}
	return styles.Muted.Render(m.status.text)
}

func (m *Model) renderHelp(styles *Styles) string {
	sections := []string{
		styles.Header.Render("jsxplorer keys"),
		"",
		"  ↑↓ or j/k    Move up/down",
		"  ←→ or h/l    Collapse/expand folders",
		"  Enter        Run commands, open source locations",
		"  e            Open the location in your editor",
		"  r            Refresh the last analysis",
		"  q            Quit",
		"",
		styles.Muted.Render("Press any key to go back"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	box := styles.Box.Width(min(m.width-4, 60))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

// Run starts the TUI program
func Run(analyzer jsx.Analyzer, editorCommand []string, defaultDir string, log *logger.Logger) error {
	model := NewModel(analyzer, editorCommand, defaultDir, log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
