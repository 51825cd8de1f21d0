package domain

import (
	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// Materializer rebuilds the visible item list of the tree view from the
// expansion set. Children load only when their directory expands, so a
// huge tree costs what the user actually opens.
type Materializer struct {
	store *SelectionStore
	fs    adapter.SourceFSAdapter

	items []m.VisibleItem
}

// NewMaterializer creates a Materializer over store.
func NewMaterializer(store *SelectionStore, fs adapter.SourceFSAdapter) *Materializer {
	return &Materializer{store: store, fs: fs}
}

// VisibleItems returns the depth-first ordered list of visible rows,
// rebuilding it first when the store changed since the last call.
func (mt *Materializer) VisibleItems() []m.VisibleItem {
	if mt.store.Dirty() || mt.items == nil {
		mt.rebuild()
	}

	return mt.items
}

// rebuild walks the expanded directories with an explicit stack. Children
// push in reverse list order so they pop in display order: directories
// first, names case-insensitively sorted, hidden entries skipped.
// Unreadable directories contribute no children.
func (mt *Materializer) rebuild() {
	type frame struct {
		path  m.Path
		depth int
		isDir bool
	}

	mt.items = mt.items[:0]

	stack := []frame{{path: mt.store.Root(), depth: 0, isDir: true}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		mt.items = append(mt.items, m.VisibleItem{Path: f.path, Depth: f.depth})

		if !f.isDir || !mt.store.IsExpanded(f.path) {
			continue
		}

		entries, err := mt.fs.ListDir(f.path)
		if err != nil {
			continue
		}

		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if isHiddenName(e.Name) {
				continue
			}

			stack = append(stack, frame{path: e.Path, depth: f.depth + 1, isDir: e.IsDir})
		}
	}

	mt.store.clearDirty()
}
