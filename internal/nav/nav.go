// Package nav translates report tree locations into host navigation actions.
package nav

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jsxplorer/jsxplorer/internal/logger"
	"github.com/jsxplorer/jsxplorer/internal/tree"
)

// Position is a 0-based line/column pair.
type Position struct {
	Line   int
	Column int
}

// Selection is a 0-based source range to select and reveal.
type Selection struct {
	Start Position
	End   Position
}

// Opener is the host navigation protocol: open the document, show the
// selection and scroll it into view, centered when it is outside the
// current viewport.
type Opener interface {
	Open(filename string, sel Selection) error
}

// Messenger is the user-facing error surface for navigation failures.
type Messenger interface {
	ShowError(msg string)
}

// Dispatcher converts stored file locations into open-and-select actions.
// Failures are surfaced and logged; they never propagate and never disturb
// whatever the opener currently shows.
type Dispatcher struct {
	opener    Opener
	messenger Messenger
	log       *logger.Logger
}

// NewDispatcher creates a dispatcher over the given opener.
func NewDispatcher(opener Opener, messenger Messenger, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.New("nav", nil)
	}
	return &Dispatcher{opener: opener, messenger: messenger, log: log}
}

// FromFileLocation converts a stored location into a selection: lines are
// 1-based in storage and 0-based here, columns pass through unchanged.
func FromFileLocation(loc tree.FileLocation) Selection {
	return Selection{
		Start: Position{Line: loc.StartLine - 1, Column: loc.StartColumn},
		End:   Position{Line: loc.EndLine - 1, Column: loc.EndColumn},
	}
}

// OpenFile opens the location's file and selects its range.
func (d *Dispatcher) OpenFile(loc tree.FileLocation) {
	sel := FromFileLocation(loc)

	if err := d.opener.Open(loc.Filename, sel); err != nil {
		d.log.Error("failed to open %s: %v", loc.Filename, err)
		if d.messenger != nil {
			d.messenger.ShowError(fmt.Sprintf("cannot open %s: %v", loc.Filename, err))
		}
	}
}

// EditorOpener launches an external editor at the selection. The command is
// argv form with {file}, {line} and {column} placeholders; line and column
// are rendered 1-based as editors expect.
type EditorOpener struct {
	Command []string
}

// NewEditorOpener builds an opener from a configured command line, falling
// back to $EDITOR and then vi.
func NewEditorOpener(command []string) *EditorOpener {
	if len(command) == 0 {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		command = []string{editor, "+{line}", "{file}"}
	}
	return &EditorOpener{Command: command}
}

// Cmd builds the editor invocation without running it. Hosts that own the
// terminal (the TUI's alternate screen) hand the command to their own process
// runner so the editor gets the tty to itself.
func (o *EditorOpener) Cmd(filename string, sel Selection) (*exec.Cmd, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("file not accessible: %w", err)
	}

	args := make([]string, 0, len(o.Command)-1)
	for _, arg := range o.Command[1:] {
		args = append(args, expandPlaceholders(arg, filename, sel))
	}

	return exec.Command(expandPlaceholders(o.Command[0], filename, sel), args...), nil
}

func (o *EditorOpener) Open(filename string, sel Selection) error {
	cmd, err := o.Cmd(filename, sel)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}

func expandPlaceholders(arg, filename string, sel Selection) string {
	arg = strings.ReplaceAll(arg, "{file}", filename)
	arg = strings.ReplaceAll(arg, "{line}", fmt.Sprintf("%d", sel.Start.Line+1))
	arg = strings.ReplaceAll(arg, "{column}", fmt.Sprintf("%d", sel.Start.Column+1))
	return arg
}
