package domain

import (
	"path/filepath"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// Resolver answers point queries about the effective state of any path
// under the session root, whether or not it ever appeared in the tree
// view. Queries are pure reads over the store: a path's own marking wins,
// then the nearest explicitly marked ancestor, then the noise-name
// default, and finally the default of inclusion.
type Resolver struct {
	store *SelectionStore
	fs    adapter.SourceFSAdapter
}

// NewResolver creates a Resolver over store. The filesystem adapter is
// consulted only to distinguish files from directories; kinds are never
// stored.
func NewResolver(store *SelectionStore, fs adapter.SourceFSAdapter) *Resolver {
	return &Resolver{store: store, fs: fs}
}

// IsExcluded reports whether path resolves to excluded.
func (r *Resolver) IsExcluded(path m.Path) bool {
	switch r.store.State(path) {
	case m.StateExcluded:
		return true
	case m.StateSelected, m.StatePartial:
		return false
	case m.StateNone:
	}

	switch r.nearestAncestorState(path) {
	case m.StateExcluded:
		return true
	case m.StateSelected, m.StatePartial:
		return false
	case m.StateNone:
	}

	if IsNoiseName(baseName(path)) || IsNoiseName(baseName(parentPath(path))) {
		return true
	}

	return false
}

// IsSelected reports whether path resolves to included. Unmarked paths
// default to included unless an exclusion or a mixed directory state
// applies to them.
func (r *Resolver) IsSelected(path m.Path) bool {
	if r.store.State(path) == m.StateSelected {
		return true
	}

	return !r.IsExcluded(path) && !r.IsPartiallySelected(path)
}

// IsPartiallySelected reports whether path is a directory in a mixed
// state: explicitly marked partial, or under a partial ancestor without
// carrying its own exclusion. Files are never partial.
func (r *Resolver) IsPartiallySelected(path m.Path) bool {
	switch r.store.State(path) {
	case m.StatePartial:
		return true
	case m.StateSelected, m.StateExcluded:
		return false
	case m.StateNone:
	}

	if r.nearestAncestorState(path) != m.StatePartial {
		return false
	}

	// Only directories inherit the mixed state. Kind is a live query.
	info, err := r.fs.FileInfo(path)

	return err == nil && info.IsDir()
}

// nearestAncestorState walks from path's parent up to and including the
// session root and returns the first explicit marking found. Paths above
// the root are never marked, so the walk stops there.
func (r *Resolver) nearestAncestorState(path m.Path) m.SelectionState {
	root := string(r.store.Root())
	if string(path) == root {
		return m.StateNone
	}

	cur := filepath.Dir(string(path))

	for {
		if st := r.store.State(m.Path(cur)); st != m.StateNone {
			return st
		}

		if cur == root {
			return m.StateNone
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return m.StateNone
		}

		cur = parent
	}
}

func baseName(path m.Path) string {
	return filepath.Base(string(path))
}

func parentPath(path m.Path) m.Path {
	return m.Path(filepath.Dir(string(path)))
}
