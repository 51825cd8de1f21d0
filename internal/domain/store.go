// Package domain implements the selection engine and the code analysis
// workflow for the CodeLens CLI.
package domain

import (
	"sort"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// SelectionStore holds the selection state of one session: the three
// explicit marking sets, the expansion set driving the tree view and the
// dirty flag that triggers rematerialization.
//
// The marking sets stay pairwise disjoint. They change only through the
// Mutator and the Scanner (both in this package), which keeps the
// aggregation rules intact; external callers read but never write them.
type SelectionStore struct {
	root m.Path

	selected map[m.Path]struct{}
	excluded map[m.Path]struct{}
	partial  map[m.Path]struct{}
	expanded map[m.Path]struct{}

	dirty        bool
	scanComplete bool
}

// NewSelectionStore creates an empty store rooted at root.
func NewSelectionStore(root m.Path) *SelectionStore {
	return &SelectionStore{
		root:     root,
		selected: make(map[m.Path]struct{}),
		excluded: make(map[m.Path]struct{}),
		partial:  make(map[m.Path]struct{}),
		expanded: make(map[m.Path]struct{}),
		dirty:    true,
	}
}

// Root returns the session root path.
func (s *SelectionStore) Root() m.Path {
	return s.root
}

// State returns the explicit marking carried by path, or StateNone when
// the path is unmarked. Inherited and default states are the Resolver's
// business, not the store's.
func (s *SelectionStore) State(path m.Path) m.SelectionState {
	if _, ok := s.selected[path]; ok {
		return m.StateSelected
	}

	if _, ok := s.excluded[path]; ok {
		return m.StateExcluded
	}

	if _, ok := s.partial[path]; ok {
		return m.StatePartial
	}

	return m.StateNone
}

// mark moves path into the set for state, removing it from the other two
// first so the sets never overlap.
func (s *SelectionStore) mark(path m.Path, state m.SelectionState) {
	delete(s.selected, path)
	delete(s.excluded, path)
	delete(s.partial, path)

	switch state {
	case m.StateSelected:
		s.selected[path] = struct{}{}
	case m.StateExcluded:
		s.excluded[path] = struct{}{}
	case m.StatePartial:
		s.partial[path] = struct{}{}
	case m.StateNone:
	}
}

// clear removes any explicit marking from path.
func (s *SelectionStore) clear(path m.Path) {
	delete(s.selected, path)
	delete(s.excluded, path)
	delete(s.partial, path)
}

// IsExpanded reports whether the directory at path shows its children in
// the tree view.
func (s *SelectionStore) IsExpanded(path m.Path) bool {
	_, ok := s.expanded[path]

	return ok
}

// Expand adds path to the expansion set and marks the view dirty.
func (s *SelectionStore) Expand(path m.Path) {
	if _, ok := s.expanded[path]; ok {
		return
	}

	s.expanded[path] = struct{}{}
	s.dirty = true
}

// Collapse removes path from the expansion set and marks the view dirty.
func (s *SelectionStore) Collapse(path m.Path) {
	if _, ok := s.expanded[path]; !ok {
		return
	}

	delete(s.expanded, path)
	s.dirty = true
}

// Dirty reports whether the visible item list needs rebuilding.
func (s *SelectionStore) Dirty() bool {
	return s.dirty
}

// MarkDirty flags the visible item list as stale.
func (s *SelectionStore) MarkDirty() {
	s.dirty = true
}

// clearDirty is called by the Materializer once it has rebuilt the list.
func (s *SelectionStore) clearDirty() {
	s.dirty = false
}

// ScanComplete reports whether the noise scan finished for this session.
func (s *SelectionStore) ScanComplete() bool {
	return s.scanComplete
}

// SetScanComplete records the outcome of the noise scan. A cancelled scan
// stores false so its partial results are visible but marked incomplete.
func (s *SelectionStore) SetScanComplete(done bool) {
	s.scanComplete = done
}

// SelectedPaths returns the explicitly selected paths in sorted order.
func (s *SelectionStore) SelectedPaths() []m.Path {
	return sortedPaths(s.selected)
}

// ExcludedPaths returns the explicitly excluded paths in sorted order.
func (s *SelectionStore) ExcludedPaths() []m.Path {
	return sortedPaths(s.excluded)
}

// PartiallySelectedPaths returns the partially selected directories in
// sorted order.
func (s *SelectionStore) PartiallySelectedPaths() []m.Path {
	return sortedPaths(s.partial)
}

// ExpandedDirs returns the expanded directories in sorted order.
func (s *SelectionStore) ExpandedDirs() []m.Path {
	return sortedPaths(s.expanded)
}

// Stats returns the live cardinalities of the three explicit sets.
func (s *SelectionStore) Stats() m.ScopeStats {
	return m.ScopeStats{
		Selected:          len(s.selected),
		Excluded:          len(s.excluded),
		PartiallySelected: len(s.partial),
	}
}

// Restore seeds the store from a persisted snapshot. Membership conflicts
// in a hand-edited or corrupt file resolve in favor of the earlier set,
// checked in excluded, selected, partial order, so disjointness holds no
// matter what the file says.
func (s *SelectionStore) Restore(state m.PersistedState) {
	for _, p := range state.ExcludedItems {
		s.excluded[m.Path(p)] = struct{}{}
	}

	for _, p := range state.SelectedItems {
		path := m.Path(p)
		if s.State(path) == m.StateNone {
			s.selected[path] = struct{}{}
		}
	}

	for _, p := range state.PartiallySelected {
		path := m.Path(p)
		if s.State(path) == m.StateNone {
			s.partial[path] = struct{}{}
		}
	}

	for _, p := range state.ExpandedDirs {
		s.expanded[m.Path(p)] = struct{}{}
	}

	s.dirty = true
}

// Snapshot captures the store and options as a persistable document.
func (s *SelectionStore) Snapshot(opts m.Options) m.PersistedState {
	return m.PersistedState{
		ExpandedDirs:      pathStrings(s.ExpandedDirs()),
		ExcludedItems:     pathStrings(s.ExcludedPaths()),
		SelectedItems:     pathStrings(s.SelectedPaths()),
		PartiallySelected: pathStrings(s.PartiallySelectedPaths()),
		Options:           opts,
	}
}

func sortedPaths(set map[m.Path]struct{}) []m.Path {
	paths := make([]m.Path, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}

func pathStrings(paths []m.Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, string(p))
	}

	return out
}
