// Package explorer owns the lifecycle of an analysis run and serves the
// report tree to the hosting view. All state lives in a single Mode value
// with one writer; the hosting view re-reads the tree whenever a change
// notification fires and never mutates nodes it was handed.
package explorer

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/logger"
	"github.com/jsxplorer/jsxplorer/internal/report"
	"github.com/jsxplorer/jsxplorer/internal/tree"
)

// ModeKind tags the analysis lifecycle states.
type ModeKind int

const (
	// ModeEmpty means no options have been collected and nothing has run.
	ModeEmpty ModeKind = iota
	// ModeLoading means an analyze call is in flight for Mode.Options.
	ModeLoading
	// ModeOk holds the last completed analysis.
	ModeOk
)

// Mode is the state machine's sole mutable state. Options is set for Loading
// and Ok, Result only for Ok.
type Mode struct {
	Kind    ModeKind
	Options jsx.Options
	Result  *jsx.Result
}

// OptionsSource collects a validated Options value from the user.
// A (nil, nil) return means the user cancelled; nothing happens then.
type OptionsSource interface {
	Options(ctx context.Context) (*jsx.Options, error)
}

// Messenger is the user-facing error surface: a single-line message display.
type Messenger interface {
	ShowError(msg string)
}

// Provider drives analysis runs and exposes the tree-data protocol the
// hosting view consumes. Run and Refresh may be called from their own
// goroutines while the view reads the tree on its dispatch loop, so Mode and
// the cached roots are guarded by a mutex. The busy flag is the re-entrancy
// guard: it is taken for the whole Run/Refresh call, options prompt included,
// so two quick invocations can never issue overlapping analyze calls.
type Provider struct {
	analyzer  jsx.Analyzer
	options   OptionsSource
	messenger Messenger
	log       *logger.Logger

	mu        sync.Mutex
	mode      Mode
	roots     []*tree.Node
	busy      bool
	listeners []func()
}

// New creates a provider in the Empty state.
func New(analyzer jsx.Analyzer, options OptionsSource, messenger Messenger, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.New("explorer", nil)
	}
	return &Provider{
		analyzer:  analyzer,
		options:   options,
		messenger: messenger,
		log:       log,
	}
}

// Mode returns the current lifecycle state.
func (p *Provider) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// OnChange registers a change listener. Listeners fire after every Mode
// transition; they are the only signal the hosting view uses to re-render.
func (p *Provider) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// notify calls the listeners outside the lock so they may read the provider.
func (p *Provider) notify() {
	p.mu.Lock()
	listeners := make([]func(), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// begin claims the run slot; it fails while a Run or Refresh is already in
// progress, including the prompt phase before Loading is entered.
func (p *Provider) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy || p.mode.Kind == ModeLoading {
		return false
	}
	p.busy = true
	return true
}

func (p *Provider) end() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

func (p *Provider) setMode(mode Mode, roots []*tree.Node) {
	p.mu.Lock()
	p.mode = mode
	p.roots = roots
	p.mu.Unlock()
}

// Run collects fresh options and starts an analysis. It is a no-op while a
// run is already in progress, and a silent no-op when the user cancels the
// options prompts.
func (p *Provider) Run(ctx context.Context) error {
	if !p.begin() {
		return nil
	}
	defer p.end()
	return p.run(ctx)
}

func (p *Provider) run(ctx context.Context) error {
	opts, err := p.options.Options(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect options: %w", err)
	}
	if opts == nil {
		p.log.Debug("options prompt cancelled")
		return nil
	}

	p.refresh(ctx, *opts)
	return nil
}

// Refresh re-runs the last analysis with its stored options. With no previous
// run it behaves like Run; while a run is in progress it is a no-op.
func (p *Provider) Refresh(ctx context.Context) error {
	if !p.begin() {
		return nil
	}
	defer p.end()

	switch mode := p.Mode(); mode.Kind {
	case ModeEmpty:
		return p.run(ctx)
	case ModeOk:
		p.refresh(ctx, mode.Options)
		return nil
	default:
		panic(fmt.Sprintf("explorer: invalid mode %d", mode.Kind))
	}
}

// refresh drives one analyze call: Loading, then Ok on success or back to
// Empty on failure. Analyzer panics are deliberately not recovered; they
// signal a defect, not a failed run.
func (p *Provider) refresh(ctx context.Context, opts jsx.Options) {
	p.setMode(Mode{Kind: ModeLoading, Options: opts}, nil)
	p.notify()

	result, err := p.analyzer.Analyze(ctx, jsx.AnalyzeRequest{
		Directory:  opts.Dir,
		Components: opts.Components,
		Prop:       opts.Prop,
	})
	if err != nil {
		p.log.Error("analysis failed: %v", err)
		if p.messenger != nil {
			p.messenger.ShowError(err.Error())
		}
		p.setMode(Mode{Kind: ModeEmpty}, nil)
		p.notify()
		return
	}

	p.setMode(Mode{Kind: ModeOk, Options: opts, Result: result}, report.Build(result, opts))
	p.notify()
}

// GetChildren returns the root nodes for a nil argument and the node's
// children otherwise. The root render switches exhaustively over the Mode
// tag; an unknown tag is a defect and aborts the render.
func (p *Provider) GetChildren(node *tree.Node) []*tree.Node {
	if node != nil {
		return node.Children
	}

	p.mu.Lock()
	mode, roots := p.mode, p.roots
	p.mu.Unlock()

	switch mode.Kind {
	case ModeEmpty:
		return []*tree.Node{
			report.RunNode(),
			tree.Info("Run an analysis to inspect JSX usage"),
		}
	case ModeLoading:
		return []*tree.Node{
			report.RunNode(),
			tree.Info(fmt.Sprintf("Analyzing %s...", mode.Options.Dir)),
		}
	case ModeOk:
		// Built once per completed run so node identity is stable across
		// renders; the host keys its fold state on node pointers.
		return roots
	default:
		panic(fmt.Sprintf("explorer: invalid mode %d", mode.Kind))
	}
}

// GetTreeItem projects a node for display.
func (p *Provider) GetTreeItem(node *tree.Node) tree.Item {
	return node.Item()
}

// GetParent returns the node's parent, nil for roots.
func (p *Provider) GetParent(node *tree.Node) *tree.Node {
	if node == nil {
		return nil
	}
	return node.Parent
}
