// Package adapter contains UI, filesystem and persistence adapters for the
// CodeLens CLI.
package adapter

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when scanning user projects. It intentionally hides direct
// `os` access so the selection and analysis logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// ListDir returns the immediate children of dir, directories first,
	// sorted case-insensitively by name within each group.
	ListDir(dir m.Path) ([]DirEntry, error)

	// Walk traverses every file and directory under root depth-first.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence
	// or distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path

	// NormalizeRoot expands a leading ~ and resolves root to an absolute
	// path suitable as a session root.
	NormalizeRoot(root string) (m.Path, error)
}

// DirEntry is one immediate child returned by ListDir.
type DirEntry struct {
	Path  m.Path
	Name  string
	IsDir bool
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the concrete implementation backed by the local
// filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ListDir reads the immediate children of dir and orders them the way the
// tree view presents them: directories first, then files, each group sorted
// case-insensitively by name.
func (a *LocalSourceFSAdapter) ListDir(dir m.Path) ([]DirEntry, error) {
	osEntries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	entries := make([]DirEntry, 0, len(osEntries))

	for _, e := range osEntries {
		entries = append(entries, DirEntry{
			Path:  m.Path(filepath.Join(string(dir), e.Name())),
			Name:  e.Name(),
			IsDir: e.IsDir(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}

		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}

// Walk iterates over every file and directory under root.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// NormalizeRoot expands a leading ~ and resolves root to an absolute path.
// An empty root means the current directory.
func (a *LocalSourceFSAdapter) NormalizeRoot(root string) (m.Path, error) {
	if strings.HasPrefix(root, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		suffix := strings.TrimPrefix(root, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		root = filepath.Join(home, suffix)
	}

	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}
