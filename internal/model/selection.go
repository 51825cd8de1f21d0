// Package model defines the data structures shared by the selection
// engine, the analyzer and the persistence layer.
package model

// Path represents a file system path.
type Path string

// SelectionState is the explicit marking carried by a path in the
// selection store. Paths without a marking resolve through defaults.
type SelectionState string

const (
	// StateSelected marks a path, and by inheritance its subtree, as included.
	StateSelected SelectionState = "selected"

	// StateExcluded marks a path, and by inheritance its subtree, as excluded.
	StateExcluded SelectionState = "excluded"

	// StatePartial marks a directory whose children carry mixed or
	// independent markings. Files are never partial.
	StatePartial SelectionState = "partial"

	// StateNone means the path carries no explicit marking.
	StateNone SelectionState = "none"
)

// VisibleItem is one row of the materialized tree view. Depth counts
// path segments below the session root and drives indentation only.
type VisibleItem struct {
	Path  Path
	Depth int
}

// ScopeStats mirrors the cardinalities of the explicit selection sets
// at confirmation time.
type ScopeStats struct {
	Selected          int
	Excluded          int
	PartiallySelected int
}

// ScopeResult is the outcome of a selection session, handed to the
// analyzer to bound what it reads.
type ScopeResult struct {
	Root Path

	// IncludePaths holds the explicitly selected and partially selected
	// paths. Empty means everything under Root except the exclusions.
	IncludePaths []Path

	// ExcludePaths holds the explicitly excluded paths.
	ExcludePaths []Path

	Options   Options
	Cancelled bool
	Stats     ScopeStats
}

// PersistedState is the JSON document stored in the state side file
// between sessions. Key names are part of the on-disk format.
type PersistedState struct {
	ExpandedDirs      []string `json:"expanded_dirs"`
	ExcludedItems     []string `json:"excluded_items"`
	SelectedItems     []string `json:"selected_items"`
	PartiallySelected []string `json:"partially_selected_items"`
	Options           Options  `json:"options"`
}
