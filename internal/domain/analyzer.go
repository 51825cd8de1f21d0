package domain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// Analyzer runs the per-file extraction over a confirmed scope and
// aggregates project-wide metrics.
type Analyzer interface {
	// Analyze reads every analyzable file in scope and returns the
	// aggregate result. threads bounds the parallel file workers.
	Analyze(ctx context.Context, scope m.ScopeResult, threads int) (m.AnalysisResult, error)

	// CollectContent concatenates every readable text file in scope for
	// the full-content export, each prefixed with a path banner.
	CollectContent(ctx context.Context, scope m.ScopeResult) (string, error)
}

type analyzer struct {
	fs      adapter.SourceFSAdapter
	chunker *Chunker
}

// NewAnalyzer creates an Analyzer reading through fs. The chunker supplies
// token counts for the report metrics.
func NewAnalyzer(fs adapter.SourceFSAdapter, chunker *Chunker) Analyzer {
	return &analyzer{fs: fs, chunker: chunker}
}

func (a *analyzer) Analyze(ctx context.Context, scope m.ScopeResult, threads int) (m.AnalysisResult, error) {
	result := m.AnalysisResult{
		Root:  scope.Root,
		Files: make(map[m.Path]m.FileAnalysis),
	}

	if scope.Cancelled {
		return result, nil
	}

	candidates, err := a.collectFiles(scope, true)
	if err != nil {
		return result, err
	}

	if threads <= 0 {
		threads = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	var mu sync.Mutex

	for _, path := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := a.fs.ReadFile(path)
			if err != nil {
				return nil //nolint:nilerr // Unreadable files are skipped, not fatal.
			}

			if isBinaryContent(data) {
				return nil
			}

			fa := analyzeFile(path, string(data))
			fa.Tokens = a.chunker.CountTokens(string(data))

			mu.Lock()
			result.Files[path] = fa
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Summary = summarize(result.Files)
	result.Insights = buildInsights(result.Summary)

	return result, nil
}

func (a *analyzer) CollectContent(ctx context.Context, scope m.ScopeResult) (string, error) {
	if scope.Cancelled {
		return "", nil
	}

	files, err := a.collectFiles(scope, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		data, err := a.fs.ReadFile(path)
		if err != nil || isBinaryContent(data) {
			continue
		}

		rel, err := a.fs.RelPath(scope.Root, path)
		if err != nil {
			rel = path
		}

		fmt.Fprintf(&b, "\n=== %s ===\n", rel)
		b.Write(data)

		if !bytes.HasSuffix(data, []byte("\n")) {
			b.WriteByte('\n')
		}
	}

	return b.String(), nil
}

// collectFiles walks the scope and returns the files the analyzer may
// read, sorted for deterministic output. The selection lists bound the
// traversal; ignore patterns then narrow the result further. Explicitly
// included directories are descended into even when a default rule would
// prune them, since the user's choice overrides defaults.
func (a *analyzer) collectFiles(scope m.ScopeResult, analyzableOnly bool) ([]m.Path, error) {
	ignore := NewIgnoreMatcher(a.fs, scope.Root, scope.Options.ExcludePatterns)

	var files []m.Path

	err := a.fs.Walk(scope.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Unreadable entries are skipped.
		}

		p := m.Path(path)

		if info.IsDir() {
			if path == string(scope.Root) || equalsAny(p, scope.IncludePaths) {
				return nil
			}

			if underAny(p, scope.ExcludePaths) || ignore.Match(p, true) || IsNoiseName(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if analyzableOnly {
			if _, ok := languagesByExt[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
		}

		if !included(p, scope.IncludePaths) || underAny(p, scope.ExcludePaths) || ignore.Match(p, false) {
			return nil
		}

		files = append(files, p)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// included reports whether path falls inside the include list. An empty
// list means everything under the root is a candidate.
func included(path m.Path, includes []m.Path) bool {
	if len(includes) == 0 {
		return true
	}

	return underAny(path, includes)
}

// underAny reports whether path equals one of the bases or lives below one.
func underAny(path m.Path, bases []m.Path) bool {
	for _, base := range bases {
		if path == base || strings.HasPrefix(string(path), string(base)+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func equalsAny(path m.Path, paths []m.Path) bool {
	for _, p := range paths {
		if path == p {
			return true
		}
	}

	return false
}

// isBinaryContent applies the NUL-byte heuristic to the first 8 KiB.
func isBinaryContent(data []byte) bool {
	probe := data
	if len(probe) > 8192 {
		probe = probe[:8192]
	}

	return bytes.IndexByte(probe, 0) >= 0
}

func summarize(files map[m.Path]m.FileAnalysis) m.AnalysisSummary {
	s := m.AnalysisSummary{
		TotalFiles:      len(files),
		FilesByLanguage: make(map[string]int),
	}

	imports := make(map[string]struct{})

	for _, path := range sortedAnalysisPaths(files) {
		fa := files[path]

		s.TotalLines += fa.Lines
		s.FilesByLanguage[fa.Language]++
		s.FunctionCount += len(fa.Functions)
		s.ClassCount += len(fa.Classes)
		s.TokenEstimate += fa.Tokens

		for _, fn := range fa.Functions {
			if fn.Documented {
				s.DocumentedFunctions++
			}
		}

		for _, cl := range fa.Classes {
			if cl.Documented {
				s.DocumentedClasses++
			}
		}

		for _, imp := range fa.Imports {
			imports[imp] = struct{}{}
		}

		for _, todo := range fa.Todos {
			s.Todos = append(s.Todos, m.FileTodo{Path: path, Todo: todo})
		}

		if isEntryPoint(path, fa) {
			s.EntryPoints = append(s.EntryPoints, path)
		}

		if isCoreFile(fa) {
			s.CoreFiles = append(s.CoreFiles, path)
		}
	}

	for imp := range imports {
		s.UniqueImports = append(s.UniqueImports, imp)
	}

	sort.Strings(s.UniqueImports)

	return s
}

func buildInsights(s m.AnalysisSummary) []string {
	if s.TotalFiles == 0 {
		return []string{"No analyzable source files were found in the selected scope."}
	}

	insights := []string{
		fmt.Sprintf("%d source files with %d lines of code", s.TotalFiles, s.TotalLines),
	}

	if coverage := s.DocCoverage(); s.FunctionCount+s.ClassCount > 0 && coverage < 30 {
		insights = append(insights, fmt.Sprintf("Low documentation coverage (%.1f%%)", coverage))
	}

	if n := len(s.Todos); n > 0 {
		high := 0

		for _, t := range s.Todos {
			if t.Priority == "high" {
				high++
			}
		}

		if high > 0 {
			insights = append(insights, fmt.Sprintf("%d TODOs pending (%d high priority)", n, high))
		} else {
			insights = append(insights, fmt.Sprintf("%d TODOs pending", n))
		}
	}

	if len(s.EntryPoints) > 0 {
		insights = append(insights, fmt.Sprintf("%d entry point candidates identified", len(s.EntryPoints)))
	}

	return insights
}

func sortedAnalysisPaths(files map[m.Path]m.FileAnalysis) []m.Path {
	paths := make([]m.Path, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}
