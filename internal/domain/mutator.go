package domain

import (
	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// Mutator is the only writer of the selection sets during a session. A
// toggle updates the target path, propagates downward through its subtree
// and then reconciles ancestors upward, so directory markings always agree
// with what their children say.
type Mutator struct {
	store *SelectionStore
	fs    adapter.SourceFSAdapter
}

// NewMutator creates a Mutator bound to store.
func NewMutator(store *SelectionStore, fs adapter.SourceFSAdapter) *Mutator {
	return &Mutator{store: store, fs: fs}
}

// Toggle flips the selection of path. For directories, fullySelect picks
// between selecting the whole subtree and the mixed transition that only
// reveals children for fine-grained choices. Files move between selected,
// excluded and the default state; they are never partial.
func (mu *Mutator) Toggle(path m.Path, fullySelect bool) {
	info, err := mu.fs.FileInfo(path)
	isDir := err == nil && info.IsDir()

	if isDir {
		mu.toggleDir(path, fullySelect)
	} else {
		mu.toggleFile(path, fullySelect)
	}

	mu.reconcileAncestors(path)
	mu.store.MarkDirty()
}

func (mu *Mutator) toggleDir(path m.Path, fullySelect bool) {
	switch state := mu.store.State(path); {
	case state == m.StateExcluded && !fullySelect:
		// Reveal the children without marking them; each keeps its own
		// explicit state or default.
		mu.store.mark(path, m.StatePartial)
		mu.store.Expand(path)
	case fullySelect && state != m.StateSelected:
		mu.propagate(path, m.StateSelected)
	default:
		mu.propagate(path, m.StateExcluded)
	}
}

func (mu *Mutator) toggleFile(path m.Path, fullySelect bool) {
	switch mu.store.State(path) {
	case m.StateSelected:
		// Back to default. When the parent is a noise directory the noise
		// policy takes over again.
		mu.store.clear(path)
	case m.StateExcluded:
		mu.store.mark(path, m.StateSelected)
	default:
		if fullySelect {
			mu.store.mark(path, m.StateSelected)
		} else {
			mu.store.mark(path, m.StateExcluded)
		}
	}
}

// propagate marks root and every visible descendant with target using an
// explicit work list. Unreadable directories keep their subtree unmarked;
// those paths resolve through ancestor inheritance instead. Hidden entries
// stay unmarked for the same reason.
func (mu *Mutator) propagate(root m.Path, target m.SelectionState) {
	mu.store.mark(root, target)

	stack := []m.Path{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := mu.fs.ListDir(dir)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if isHiddenName(e.Name) {
				continue
			}

			mu.store.mark(e.Path, target)

			if e.IsDir {
				stack = append(stack, e.Path)
			}
		}
	}
}

// reconcileAncestors recomputes the aggregate marking of each ancestor of
// path from its immediate children and stops as soon as a directory's
// stored marking already matches the recomputed one, since nothing changed
// that could ripple further. Running it twice in a row is a no-op.
func (mu *Mutator) reconcileAncestors(path m.Path) {
	root := mu.store.Root()
	if path == root {
		return
	}

	cur := parentPath(path)

	for {
		tally, ok := mu.childTally(cur)
		if !ok {
			return
		}

		if tally == mu.store.State(cur) {
			return
		}

		if tally == m.StateNone {
			mu.store.clear(cur)
		} else {
			mu.store.mark(cur, tally)
		}

		if cur == root {
			return
		}

		parent := parentPath(cur)
		if parent == cur {
			return
		}

		cur = parent
	}
}

// childTally derives the aggregate marking for dir from the explicit
// markings of its visible children. Unmarked noise-named children count as
// excluded; other unmarked children keep the tally open, so a mix of
// exclusions and defaults leaves dir unmarked rather than excluded.
func (mu *Mutator) childTally(dir m.Path) (m.SelectionState, bool) {
	entries, err := mu.fs.ListDir(dir)
	if err != nil {
		return m.StateNone, false
	}

	var total, selected, excluded, partial int

	for _, e := range entries {
		if isHiddenName(e.Name) {
			continue
		}

		total++

		switch mu.store.State(e.Path) {
		case m.StateSelected:
			selected++
		case m.StateExcluded:
			excluded++
		case m.StatePartial:
			partial++
		case m.StateNone:
			if IsNoiseName(e.Name) {
				excluded++
			}
		}
	}

	switch {
	case total == 0:
		return m.StateNone, true
	case selected == total:
		return m.StateSelected, true
	case excluded == total:
		return m.StateExcluded, true
	case selected > 0 || partial > 0:
		return m.StatePartial, true
	default:
		return m.StateNone, true
	}
}
