package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

func TestSelectionStore_MarkKeepsSetsDisjoint(t *testing.T) {
	store := NewSelectionStore("/root")
	path := m.Path("/root/src")

	store.mark(path, m.StateSelected)
	assert.Equal(t, m.StateSelected, store.State(path))

	store.mark(path, m.StateExcluded)
	assert.Equal(t, m.StateExcluded, store.State(path))
	assert.Empty(t, store.SelectedPaths())

	store.mark(path, m.StatePartial)
	assert.Equal(t, m.StatePartial, store.State(path))
	assert.Empty(t, store.ExcludedPaths())

	store.clear(path)
	assert.Equal(t, m.StateNone, store.State(path))
	assert.Empty(t, store.PartiallySelectedPaths())
}

func TestSelectionStore_ExpandCollapse(t *testing.T) {
	store := NewSelectionStore("/root")
	dir := m.Path("/root/src")

	assert.False(t, store.IsExpanded(dir))

	store.Expand(dir)
	assert.True(t, store.IsExpanded(dir))

	// Expanding twice stays a single membership.
	store.Expand(dir)
	assert.Len(t, store.ExpandedDirs(), 1)

	store.Collapse(dir)
	assert.False(t, store.IsExpanded(dir))

	store.Collapse(dir)
	assert.Empty(t, store.ExpandedDirs())
}

func TestSelectionStore_DirtyFlag(t *testing.T) {
	store := NewSelectionStore("/root")

	// A fresh store needs a first materialization.
	assert.True(t, store.Dirty())

	store.clearDirty()
	assert.False(t, store.Dirty())

	store.Expand("/root/src")
	assert.True(t, store.Dirty())

	store.clearDirty()

	// Collapsing something that is not expanded changes nothing.
	store.Collapse("/root/other")
	assert.False(t, store.Dirty())

	store.MarkDirty()
	assert.True(t, store.Dirty())
}

func TestSelectionStore_Stats(t *testing.T) {
	store := NewSelectionStore("/root")

	store.mark("/root/a", m.StateSelected)
	store.mark("/root/b", m.StateSelected)
	store.mark("/root/c", m.StateExcluded)
	store.mark("/root/d", m.StatePartial)

	stats := store.Stats()

	assert.Equal(t, 2, stats.Selected)
	assert.Equal(t, 1, stats.Excluded)
	assert.Equal(t, 1, stats.PartiallySelected)
}

func TestSelectionStore_RestoreResolvesConflicts(t *testing.T) {
	store := NewSelectionStore("/root")

	// A hand-edited file may list the same path in several sets. The
	// earlier set wins, in excluded, selected, partial order.
	store.Restore(m.PersistedState{
		ExcludedItems:     []string{"/root/both", "/root/only-excluded"},
		SelectedItems:     []string{"/root/both", "/root/only-selected", "/root/sel-and-part"},
		PartiallySelected: []string{"/root/both", "/root/sel-and-part", "/root/only-partial"},
		ExpandedDirs:      []string{"/root"},
	})

	assert.Equal(t, m.StateExcluded, store.State("/root/both"))
	assert.Equal(t, m.StateExcluded, store.State("/root/only-excluded"))
	assert.Equal(t, m.StateSelected, store.State("/root/only-selected"))
	assert.Equal(t, m.StateSelected, store.State("/root/sel-and-part"))
	assert.Equal(t, m.StatePartial, store.State("/root/only-partial"))
	assert.True(t, store.IsExpanded("/root"))
	assert.True(t, store.Dirty())
}

func TestSelectionStore_SnapshotRoundTrip(t *testing.T) {
	store := NewSelectionStore("/root")

	store.mark("/root/b", m.StateSelected)
	store.mark("/root/a", m.StateSelected)
	store.mark("/root/c", m.StateExcluded)
	store.mark("/root/d", m.StatePartial)
	store.Expand("/root")

	opts := m.Options{Format: m.FormatJSON, ExportFull: true}
	snapshot := store.Snapshot(opts)

	assert.Equal(t, []string{"/root/a", "/root/b"}, snapshot.SelectedItems)
	assert.Equal(t, []string{"/root/c"}, snapshot.ExcludedItems)
	assert.Equal(t, []string{"/root/d"}, snapshot.PartiallySelected)
	assert.Equal(t, []string{"/root"}, snapshot.ExpandedDirs)
	assert.Equal(t, opts, snapshot.Options)

	restored := NewSelectionStore("/root")
	restored.Restore(snapshot)

	require.Equal(t, store.SelectedPaths(), restored.SelectedPaths())
	require.Equal(t, store.ExcludedPaths(), restored.ExcludedPaths())
	require.Equal(t, store.PartiallySelectedPaths(), restored.PartiallySelectedPaths())
	require.Equal(t, store.ExpandedDirs(), restored.ExpandedDirs())
}

func TestSelectionStore_ScanComplete(t *testing.T) {
	store := NewSelectionStore("/root")

	assert.False(t, store.ScanComplete())

	store.SetScanComplete(true)
	assert.True(t, store.ScanComplete())

	store.SetScanComplete(false)
	assert.False(t, store.ScanComplete())
}
