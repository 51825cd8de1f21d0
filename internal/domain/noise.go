package domain

import "strings"

// noiseNames lists directory basenames that are excluded by default:
// VCS metadata, dependency trees, build output and tool caches. An explicit
// marking on the directory or one of its ancestors overrides the default.
var noiseNames = map[string]struct{}{
	".git":          {},
	".svn":          {},
	".hg":           {},
	"node_modules":  {},
	"vendor":        {},
	"__pycache__":   {},
	".venv":         {},
	"venv":          {},
	"env":           {},
	".idea":         {},
	".vscode":       {},
	"dist":          {},
	"build":         {},
	"target":        {},
	".pytest_cache": {},
	".mypy_cache":   {},
	".tox":          {},
	"bin":           {},
	"obj":           {},
	".codelens":     {},
}

// IsNoiseName reports whether name belongs to the default-excluded catalog.
// Matching is by exact basename, not by path.
func IsNoiseName(name string) bool {
	_, ok := noiseNames[name]

	return ok
}

// isHiddenName reports whether name is a dotfile. Hidden entries never
// appear in the tree view and never receive explicit markings; ancestor
// inheritance covers them during resolution.
func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}
