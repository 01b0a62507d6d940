package explorer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jsxplorer/jsxplorer/internal/jsx"
	"github.com/jsxplorer/jsxplorer/internal/report"
	"github.com/jsxplorer/jsxplorer/internal/tree"
)

type fakeAnalyzer struct {
	calls    int
	requests []jsx.AnalyzeRequest
	result   *jsx.Result
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req jsx.AnalyzeRequest) (*jsx.Result, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeOptions struct {
	calls int
	opts  *jsx.Options
	err   error
}

func (f *fakeOptions) Options(context.Context) (*jsx.Options, error) {
	f.calls++
	return f.opts, f.err
}

type fakeMessenger struct {
	messages []string
}

func (f *fakeMessenger) ShowError(msg string) {
	f.messages = append(f.messages, msg)
}

func testResult() *jsx.Result {
	return &jsx.Result{
		Directory:      "/app",
		Filenames:      []string{"src/App.jsx"},
		ComponentUsage: map[string]int{"Button": 10, "Card": 3},
		PropUsage:      map[string]map[string]int{},
		LineUsage:      map[string]map[string][]jsx.Occurrence{},
		Errors:         map[string]jsx.FileError{},
	}
}

func testOptions() *jsx.Options {
	return &jsx.Options{Dir: "/app", Report: jsx.ReportUsage}
}

func newTestProvider(analyzer *fakeAnalyzer, options *fakeOptions, messenger *fakeMessenger) *Provider {
	return New(analyzer, options, messenger, nil)
}

func TestRunTransitionsToOk(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	var seen []ModeKind
	p.OnChange(func() { seen = append(seen, p.Mode().Kind) })

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if p.Mode().Kind != ModeOk {
		t.Errorf("final mode = %v, want ModeOk", p.Mode().Kind)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyze calls = %d, want 1", analyzer.calls)
	}
	want := []ModeKind{ModeLoading, ModeOk}
	if len(seen) != len(want) || seen[0] != want[0] || seen[1] != want[1] {
		t.Errorf("notified modes = %v, want %v", seen, want)
	}
}

func TestRunPassesOptionsToAnalyzer(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: &jsx.Options{
		Dir:        "/app",
		Components: []string{"Button"},
		Report:     jsx.ReportLines,
		Prop:       "onClick",
	}}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	req := analyzer.requests[0]
	if req.Directory != "/app" || req.Prop != "onClick" || len(req.Components) != 1 {
		t.Errorf("analyze request = %+v", req)
	}
}

func TestRunWhileLoadingIsNoOp(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	// Re-enter from the Loading notification; the guard must reject both.
	p.OnChange(func() {
		if p.Mode().Kind == ModeLoading {
			if err := p.Run(context.Background()); err != nil {
				t.Errorf("re-entrant Run() error: %v", err)
			}
			if err := p.Refresh(context.Background()); err != nil {
				t.Errorf("re-entrant Refresh() error: %v", err)
			}
		}
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if analyzer.calls != 1 {
		t.Errorf("analyze calls = %d, want 1 (no second call while loading)", analyzer.calls)
	}
	if options.calls != 1 {
		t.Errorf("options prompts = %d, want 1", options.calls)
	}
}

// blockingAnalyzer parks inside Analyze until released, holding the provider
// in its in-flight window.
type blockingAnalyzer struct {
	entered chan struct{}
	release chan struct{}
	result  *jsx.Result

	mu    sync.Mutex
	calls int
}

func (b *blockingAnalyzer) Analyze(context.Context, jsx.AnalyzeRequest) (*jsx.Result, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.entered <- struct{}{}
	<-b.release
	return b.result, nil
}

func (b *blockingAnalyzer) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// A second keypress lands on its own goroutine while the first analyze call
// is still in flight; the guard must reject it and the view must still be
// able to read the Loading tree concurrently.
func TestRefreshFromAnotherGoroutineWhileInFlight(t *testing.T) {
	analyzer := &blockingAnalyzer{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  testResult(),
	}
	options := &fakeOptions{opts: testOptions()}
	p := New(analyzer, options, &fakeMessenger{}, nil)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()
	<-analyzer.entered

	if err := p.Refresh(context.Background()); err != nil {
		t.Errorf("Refresh() error: %v", err)
	}
	roots := p.GetChildren(nil)
	if len(roots) != 2 || roots[1].Label != "Analyzing /app..." {
		t.Errorf("loading roots = %d nodes, second label %q", len(roots), roots[len(roots)-1].Label)
	}

	close(analyzer.release)
	if err := <-done; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := analyzer.callCount(); got != 1 {
		t.Errorf("analyze calls = %d, want 1 (no overlapping run)", got)
	}
	if p.Mode().Kind != ModeOk {
		t.Errorf("final mode = %v, want ModeOk", p.Mode().Kind)
	}
}

func TestRunCancelledPromptChangesNothing(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: nil} // user cancelled
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	notified := 0
	p.OnChange(func() { notified++ })

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if p.Mode().Kind != ModeEmpty {
		t.Errorf("mode = %v, want ModeEmpty", p.Mode().Kind)
	}
	if analyzer.calls != 0 {
		t.Errorf("analyze calls = %d, want 0", analyzer.calls)
	}
	if notified != 0 {
		t.Errorf("notifications = %d, want 0", notified)
	}
}

func TestAnalyzeErrorResetsToEmptyAndSurfacesMessage(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("disk error")}
	options := &fakeOptions{opts: testOptions()}
	messenger := &fakeMessenger{}
	p := newTestProvider(analyzer, options, messenger)

	var seen []ModeKind
	p.OnChange(func() { seen = append(seen, p.Mode().Kind) })

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if p.Mode().Kind != ModeEmpty {
		t.Errorf("final mode = %v, want ModeEmpty", p.Mode().Kind)
	}
	if len(messenger.messages) != 1 || messenger.messages[0] != "disk error" {
		t.Errorf("surfaced messages = %v, want [disk error]", messenger.messages)
	}
	want := []ModeKind{ModeLoading, ModeEmpty}
	if len(seen) != len(want) || seen[0] != want[0] || seen[1] != want[1] {
		t.Errorf("notified modes = %v, want %v", seen, want)
	}
}

func TestRefreshOnEmptyCollectsOptions(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	if options.calls != 1 {
		t.Errorf("options prompts = %d, want 1", options.calls)
	}
	if p.Mode().Kind != ModeOk {
		t.Errorf("mode = %v, want ModeOk", p.Mode().Kind)
	}
}

func TestRefreshOnOkReusesStoredOptions(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	if options.calls != 1 {
		t.Errorf("options prompts = %d, want 1 (refresh must not re-prompt)", options.calls)
	}
	if analyzer.calls != 2 {
		t.Errorf("analyze calls = %d, want 2", analyzer.calls)
	}
}

func TestGetChildrenPerMode(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	// Empty: run command plus a hint.
	roots := p.GetChildren(nil)
	if len(roots) != 2 {
		t.Fatalf("empty roots = %d, want 2", len(roots))
	}
	if roots[0].Command != report.CommandRun {
		t.Errorf("first root command = %q, want run", roots[0].Command)
	}

	// Loading: observed from inside the notification.
	var loadingRoots []*tree.Node
	p.OnChange(func() {
		if p.Mode().Kind == ModeLoading {
			loadingRoots = p.GetChildren(nil)
		}
	})
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(loadingRoots) != 2 {
		t.Fatalf("loading roots = %d, want 2", len(loadingRoots))
	}
	if loadingRoots[1].Label != "Analyzing /app..." {
		t.Errorf("loading label = %q", loadingRoots[1].Label)
	}

	// Ok: the built report, refresh command included.
	roots = p.GetChildren(nil)
	if len(roots) != 4 {
		t.Fatalf("ok roots = %d, want 4", len(roots))
	}
	if roots[1].Command != report.CommandRefresh {
		t.Errorf("second root command = %q, want refresh", roots[1].Command)
	}
}

func TestGetChildrenAndParentWalkTheTree(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	roots := p.GetChildren(nil)
	dir := roots[2]
	children := p.GetChildren(dir)
	if len(children) == 0 {
		t.Fatal("directory folder has no children")
	}
	if got := p.GetParent(children[0]); got != dir {
		t.Errorf("GetParent = %v, want the directory folder", got)
	}
	if got := p.GetParent(dir); got != nil {
		t.Errorf("GetParent(root) = %v, want nil", got)
	}
}

func TestGetChildrenKeepsNodeIdentity(t *testing.T) {
	analyzer := &fakeAnalyzer{result: testResult()}
	options := &fakeOptions{opts: testOptions()}
	p := newTestProvider(analyzer, options, &fakeMessenger{})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	first := p.GetChildren(nil)
	second := p.GetChildren(nil)
	if first[2] != second[2] {
		t.Error("root nodes should keep their identity between calls")
	}
}

func TestGetChildrenPanicsOnInvalidMode(t *testing.T) {
	p := newTestProvider(&fakeAnalyzer{}, &fakeOptions{}, &fakeMessenger{})
	p.mode.Kind = ModeKind(42)

	defer func() {
		if recover() == nil {
			t.Error("GetChildren should panic on an invalid mode tag")
		}
	}()
	p.GetChildren(nil)
}

func TestRunPropagatesPromptError(t *testing.T) {
	options := &fakeOptions{err: errors.New("terminal closed")}
	p := newTestProvider(&fakeAnalyzer{}, options, &fakeMessenger{})

	if err := p.Run(context.Background()); err == nil {
		t.Error("Run() should propagate a prompt failure")
	}
}
