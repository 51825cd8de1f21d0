package domain

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// defaultOutputDir receives reports when no --output flag is given. It is
// the same directory the state side file lives in.
const defaultOutputDir = ".codelens"

// RunArgs carries the root command's inputs into the workflow.
type RunArgs struct {
	Path string

	// Output is the report directory; relative values nest under the
	// analyzed root.
	Output string

	// Format is empty unless the flag was set, so persisted options win
	// when the user did not ask for a format.
	Format m.OutputFormat

	Full     bool
	Debug    bool
	Excludes []string
	Threads  int
	NoUI     bool
}

// ListArgs carries the list command's inputs.
type ListArgs struct {
	Path string
}

// Workflow drives a full CodeLens run from CLI arguments: load persisted
// state, select the scope, analyze it, write reports, persist state.
type Workflow interface {
	Run(args RunArgs) error
	List(args ListArgs) error
}

// UI presents the selection session and the analysis outcome. The
// controller package provides the implementations; the interface lives
// here because the workflow is its consumer.
type UI interface {
	// SelectScope runs the scan and selection phases and returns the
	// confirmed or cancelled scope. An error means no usable terminal.
	SelectScope(session *Session, opts m.Options) (m.ScopeResult, error)

	// DisplaySummary renders the post-analysis summary.
	DisplaySummary(result m.AnalysisResult, reportPath m.Path) error

	// DisplayState renders a saved selection state for one project root.
	DisplayState(root m.Path, state m.PersistedState, found bool) error
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	states    adapter.StateStore
	reports   adapter.ReportStore
	analyzer  Analyzer
	chunker   *Chunker
	ui        UI
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	states adapter.StateStore,
	reports adapter.ReportStore,
	analyzer Analyzer,
	chunker *Chunker,
	ui UI,
) Workflow {
	return &workflow{
		fsAdapter: fsAdapter,
		states:    states,
		reports:   reports,
		analyzer:  analyzer,
		chunker:   chunker,
		ui:        ui,
	}
}

func (w *workflow) Run(args RunArgs) error {
	root, err := w.resolveRoot(args.Path)
	if err != nil {
		return err
	}

	prior, found := w.states.Load(root)

	opts := m.DefaultOptions()
	if found {
		opts = prior.Options
	}

	opts = applyFlags(opts, args)

	var priorState *m.PersistedState
	if found {
		priorState = &prior
	}

	session := NewSession(w.fsAdapter, root, priorState)

	scope := w.selectScope(session, opts, args.NoUI)
	if scope.Cancelled {
		// An aborted session changes nothing: no analysis, no report,
		// and the state file keeps its previous content.
		return nil
	}

	ctx := context.Background()

	result, err := w.analyzer.Analyze(ctx, scope, args.Threads)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	outputDir := w.outputDir(root, args.Output)

	reportPath, err := w.reports.WriteAnalysis(outputDir, result, opts)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if opts.ExportFull {
		if err := w.exportFullContent(ctx, scope, outputDir); err != nil {
			return err
		}
	}

	// Persistence is best effort; an unwritable project directory must
	// not fail a run that already produced its report.
	_ = w.states.Save(root, session.Store.Snapshot(opts))

	return w.ui.DisplaySummary(result, reportPath)
}

func (w *workflow) List(args ListArgs) error {
	root, err := w.resolveRoot(args.Path)
	if err != nil {
		return err
	}

	state, found := w.states.Load(root)

	return w.ui.DisplayState(root, state, found)
}

func (w *workflow) selectScope(session *Session, opts m.Options, noUI bool) m.ScopeResult {
	if noUI {
		return DefaultScope(session, opts)
	}

	scope, err := w.ui.SelectScope(session, opts)
	if err != nil {
		// No usable terminal. Fall back to the default scope instead of
		// failing the run.
		return DefaultScope(session, opts)
	}

	return scope
}

func (w *workflow) resolveRoot(path string) (m.Path, error) {
	root, err := w.fsAdapter.NormalizeRoot(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}

	info, err := w.fsAdapter.FileInfo(root)
	if err != nil {
		return "", fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}

	return root, nil
}

// outputDir resolves the report destination. Relative paths nest under the
// analyzed root so reports land next to the project by default.
func (w *workflow) outputDir(root m.Path, output string) m.Path {
	if output == "" {
		output = defaultOutputDir
	}

	if filepath.IsAbs(output) {
		return m.Path(output)
	}

	return w.fsAdapter.JoinPath(string(root), output)
}

func (w *workflow) exportFullContent(ctx context.Context, scope m.ScopeResult, outputDir m.Path) error {
	content, err := w.analyzer.CollectContent(ctx, scope)
	if err != nil {
		return fmt.Errorf("collecting content: %w", err)
	}

	if content == "" {
		return nil
	}

	if _, err := w.reports.WriteFullContent(outputDir, w.chunker.Split(content)); err != nil {
		return fmt.Errorf("writing full content: %w", err)
	}

	return nil
}

// applyFlags overlays the command-line flags on the persisted options.
// Only flags the user actually set override what was persisted.
func applyFlags(opts m.Options, args RunArgs) m.Options {
	if args.Format != "" {
		opts.Format = args.Format
	}

	if args.Full {
		opts.ExportFull = true
	}

	if args.Debug {
		opts.Debug = true
	}

	if len(args.Excludes) > 0 {
		opts.ExcludePatterns = args.Excludes
	}

	return opts.Normalize()
}
