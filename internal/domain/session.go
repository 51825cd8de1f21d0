package domain

import (
	"context"
	"sort"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// Session bundles the selection engine parts built around one store for
// one project root. The UI drives it during selection; the workflow
// creates it and freezes its outcome.
type Session struct {
	Store        *SelectionStore
	Resolver     *Resolver
	Mutator      *Mutator
	Materializer *Materializer
	Scanner      *Scanner

	fs adapter.SourceFSAdapter
}

// NewSession builds the engine for root, optionally seeded from a
// persisted snapshot. The root starts expanded so the first view already
// shows its children.
func NewSession(fs adapter.SourceFSAdapter, root m.Path, prior *m.PersistedState) *Session {
	store := NewSelectionStore(root)

	if prior != nil {
		store.Restore(*prior)
	}

	store.Expand(root)

	return &Session{
		Store:        store,
		Resolver:     NewResolver(store, fs),
		Mutator:      NewMutator(store, fs),
		Materializer: NewMaterializer(store, fs),
		Scanner:      NewScanner(store, fs),
		fs:           fs,
	}
}

// IsDir reports whether path is a directory right now. Kind is always a
// live query, never stored state.
func (s *Session) IsDir(path m.Path) bool {
	info, err := s.fs.FileInfo(path)

	return err == nil && info.IsDir()
}

// Confirm freezes the current selection into a scope for the analyzer.
// The include list combines the selected and partially selected sets;
// stats mirror the live set cardinalities at this moment.
func (s *Session) Confirm(opts m.Options) m.ScopeResult {
	includes := append([]m.Path{}, s.Store.SelectedPaths()...)
	includes = append(includes, s.Store.PartiallySelectedPaths()...)

	sort.Slice(includes, func(i, j int) bool { return includes[i] < includes[j] })

	return m.ScopeResult{
		Root:         s.Store.Root(),
		IncludePaths: includes,
		ExcludePaths: s.Store.ExcludedPaths(),
		Options:      opts,
		Stats:        s.Store.Stats(),
	}
}

// Cancel produces the scope of an aborted session. Downstream treats it
// as a no-op: no analysis, no report, no persistence.
func (s *Session) Cancel(opts m.Options) m.ScopeResult {
	return m.ScopeResult{
		Root:      s.Store.Root(),
		Options:   opts,
		Cancelled: true,
		Stats:     s.Store.Stats(),
	}
}

// DefaultScope confirms the default selection without interaction: the
// noise scan seeds the exclusions and everything else stays included.
// This is the path taken when no usable terminal exists or the UI was
// disabled explicitly.
func DefaultScope(session *Session, opts m.Options) m.ScopeResult {
	session.Scanner.Scan(context.Background(), nil)

	return session.Confirm(opts)
}
