package domain

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// ignoreFileName is the tool's own ignore file, read from the session
// root with .gitignore pattern syntax.
const ignoreFileName = ".codelensignore"

// IgnoreMatcher filters analyzer and export candidates through the
// repository's gitignore rules, the .codelensignore file and any extra
// command-line patterns. It narrows what the analyzer reads; the
// interactive selection happens before it and is independent of it.
type IgnoreMatcher struct {
	root    m.Path
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads the ignore patterns that apply under root. Every
// source is optional: a missing repository, a missing ignore file or no
// extra patterns simply contribute nothing. Later patterns win, so a
// command-line negation can re-include what an ignore file dropped.
func NewIgnoreMatcher(fs adapter.SourceFSAdapter, root m.Path, extra []string) *IgnoreMatcher {
	var patterns []gitignore.Pattern

	patterns = append(patterns, repositoryPatterns(fs, root)...)
	patterns = append(patterns, filePatterns(fs, m.Path(filepath.Join(string(root), ignoreFileName)))...)

	for _, p := range extra {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}

	return &IgnoreMatcher{root: root, matcher: gitignore.NewMatcher(patterns)}
}

// Match reports whether the path is ignored. path must live under the
// matcher's root; paths outside it never match.
func (im *IgnoreMatcher) Match(path m.Path, isDir bool) bool {
	rel, err := filepath.Rel(string(im.root), string(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}

	return im.matcher.Match(strings.Split(rel, string(filepath.Separator)), isDir)
}

// repositoryPatterns collects gitignore rules when root sits inside a git
// worktree: the globally configured excludes plus the worktree's root
// .gitignore file.
func repositoryPatterns(fs adapter.SourceFSAdapter, root m.Path) []gitignore.Pattern {
	repo, err := git.PlainOpenWithOptions(string(root), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil
	}

	patterns := append([]gitignore.Pattern{}, wt.Excludes...)
	patterns = append(patterns, filePatterns(fs, m.Path(filepath.Join(wt.Filesystem.Root(), ".gitignore")))...)

	return patterns
}

// filePatterns parses one ignore file into patterns, skipping blank lines
// and comments. A missing file yields nothing.
func filePatterns(fs adapter.SourceFSAdapter, path m.Path) []gitignore.Pattern {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []gitignore.Pattern

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	return patterns
}
