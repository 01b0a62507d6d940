package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
)

// promptBridge implements the options source protocol for the provider. The
// provider goroutine blocks in Options while the prompt flow runs on the
// update loop; a nil result means the user backed out.
type promptBridge struct {
	requests chan struct{}
	results  chan *jsx.Options
}

func newPromptBridge() *promptBridge {
	return &promptBridge{
		requests: make(chan struct{}),
		results:  make(chan *jsx.Options),
	}
}

func (b *promptBridge) Options(ctx context.Context) (*jsx.Options, error) {
	select {
	case b.requests <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case opts := <-b.results:
		return opts, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type promptStep int

const (
	stepDir promptStep = iota
	stepComponents
	stepReport
	stepProp
)

var reportChoices = []jsx.ReportKind{jsx.ReportUsage, jsx.ReportProps, jsx.ReportLines}

// promptFlow collects analysis options one step at a time. Esc cancels the
// whole flow, not just the current step.
type promptFlow struct {
	step      promptStep
	input     textinput.Model
	opts      jsx.Options
	reportIdx int
	errText   string
}

func newPromptFlow(defaultDir string) *promptFlow {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 256
	input.SetValue(defaultDir)
	input.Focus()

	return &promptFlow{input: input}
}

// Update advances the flow on key input. It reports whether the flow finished
// and, when finished, the collected options (nil means cancelled).
func (f *promptFlow) Update(msg tea.KeyMsg) (done bool, opts *jsx.Options, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return true, nil, nil
	case "enter":
		return f.advance()
	}

	if f.step == stepReport {
		f.moveChoice(msg.String())
		return false, nil, nil
	}

	f.input, cmd = f.input.Update(msg)
	return false, nil, cmd
}

func (f *promptFlow) moveChoice(key string) {
	switch key {
	case "up", "k":
		if f.reportIdx > 0 {
			f.reportIdx--
		}
	case "down", "j":
		if f.reportIdx < len(reportChoices)-1 {
			f.reportIdx++
		}
	case "u":
		f.reportIdx = 0
	case "p":
		f.reportIdx = 1
	case "l":
		f.reportIdx = 2
	}
}

func (f *promptFlow) advance() (bool, *jsx.Options, tea.Cmd) {
	value := strings.TrimSpace(f.input.Value())

	switch f.step {
	case stepDir:
		if value == "" {
			f.errText = "directory is required"
			return false, nil, nil
		}
		f.opts.Dir = value
		f.next(stepComponents, "")
	case stepComponents:
		f.opts.Components = strings.Fields(value)
		f.next(stepReport, "")
	case stepReport:
		f.opts.Report = reportChoices[f.reportIdx]
		if f.opts.Report != jsx.ReportLines {
			return f.finish()
		}
		f.next(stepProp, "")
	case stepProp:
		if value == "" {
			f.errText = "the lines report needs a prop to trace"
			return false, nil, nil
		}
		f.opts.Prop = value
		return f.finish()
	}

	return false, nil, textinput.Blink
}

func (f *promptFlow) finish() (bool, *jsx.Options, tea.Cmd) {
	if err := f.opts.Validate(); err != nil {
		f.errText = err.Error()
		return false, nil, nil
	}
	opts := f.opts
	return true, &opts, nil
}

func (f *promptFlow) next(step promptStep, value string) {
	f.step = step
	f.errText = ""
	f.input.SetValue(value)
	f.input.CursorEnd()
}

// View renders the current prompt step
func (f *promptFlow) View(styles *Styles, width, height int) string {
	var b strings.Builder

	b.WriteString(styles.Header.Render("New analysis") + "\n\n")

	switch f.step {
	case stepDir:
		b.WriteString("Directory to scan:\n\n")
		b.WriteString(f.input.View())
	case stepComponents:
		b.WriteString("Components to include (space-separated, empty for all):\n\n")
		b.WriteString(f.input.View())
	case stepReport:
		b.WriteString("Report:\n\n")
		for i, kind := range reportChoices {
			line := "  " + kind.String()
			if i == f.reportIdx {
				line = styles.Selected.Render("▶ " + kind.String())
			}
			b.WriteString(line + "\n")
		}
	case stepProp:
		b.WriteString("Prop to trace:\n\n")
		b.WriteString(f.input.View())
	}

	if f.errText != "" {
		b.WriteString("\n\n" + styles.Error.Render(f.errText))
	}

	b.WriteString("\n\n" + styles.Muted.Render("Enter Continue • Esc Cancel"))

	box := styles.Box.Width(min(width-4, 70))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(b.String()))
}
