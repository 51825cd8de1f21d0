package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

const (
	textReportName = "analysis.txt"
	jsonReportName = "analysis.json"

	fullChunkPattern = "full_%d.txt"
)

// ReportStore persists analysis reports and full-content exports.
type ReportStore interface {
	// WriteAnalysis renders result into dir using the format from opts and
	// returns the path of the written report file.
	WriteAnalysis(dir m.Path, result m.AnalysisResult, opts m.Options) (m.Path, error)

	// WriteFullContent writes token-bounded content chunks into dir as
	// full_1.txt, full_2.txt and so on, returning the written paths.
	WriteFullContent(dir m.Path, chunks []string) ([]m.Path, error)
}

type reportStore struct{}

// NewReportStore constructs a ReportStore implementation backed by the
// local filesystem.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) WriteAnalysis(dir m.Path, result m.AnalysisResult, opts m.Options) (m.Path, error) {
	if err := os.MkdirAll(string(dir), stateDirPerm); err != nil {
		return "", err
	}

	name := textReportName

	var (
		data []byte
		err  error
	)

	if opts.Format == m.FormatJSON {
		name = jsonReportName

		data, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
	} else {
		data = []byte(formatTextReport(result))
	}

	path := filepath.Join(string(dir), name)
	if err := os.WriteFile(path, data, stateFilePerm); err != nil {
		return "", err
	}

	return m.Path(path), nil
}

func (rs *reportStore) WriteFullContent(dir m.Path, chunks []string) ([]m.Path, error) {
	if err := os.MkdirAll(string(dir), stateDirPerm); err != nil {
		return nil, err
	}

	paths := make([]m.Path, 0, len(chunks))

	for i, chunk := range chunks {
		path := filepath.Join(string(dir), fmt.Sprintf(fullChunkPattern, i+1))
		if err := os.WriteFile(path, []byte(chunk), stateFilePerm); err != nil {
			return paths, err
		}

		paths = append(paths, m.Path(path))
	}

	return paths, nil
}

// formatTextReport renders the LLM-oriented plain-text report. Sections are
// ordered from broad project context down to per-file detail so a model can
// stop reading early and still have the big picture.
func formatTextReport(result m.AnalysisResult) string {
	var b strings.Builder

	s := result.Summary

	b.WriteString("CODEBASE SUMMARY:\n")
	fmt.Fprintf(&b, "This project contains %d files (%s).\n", s.TotalFiles, languageBreakdown(s.FilesByLanguage))
	fmt.Fprintf(&b, "It has %d functions and %d classes with %.1f%% documentation coverage.\n",
		s.FunctionCount, s.ClassCount, s.DocCoverage())

	if len(result.Insights) > 0 {
		b.WriteString("\nKEY INSIGHTS:\n")

		for _, insight := range result.Insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	b.WriteString("\nCODE METRICS:\n")
	fmt.Fprintf(&b, "Files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Total lines: %d\n", s.TotalLines)
	fmt.Fprintf(&b, "Functions: %d (documented: %d)\n", s.FunctionCount, s.DocumentedFunctions)
	fmt.Fprintf(&b, "Classes: %d (documented: %d)\n", s.ClassCount, s.DocumentedClasses)
	fmt.Fprintf(&b, "Token estimate: %d\n", s.TokenEstimate)

	if len(s.Todos) > 0 {
		b.WriteString("\nTODOS:\n")

		for _, todo := range s.Todos {
			fmt.Fprintf(&b, "[%s] %s:%d: %s\n", strings.ToUpper(todo.Priority), todo.Path, todo.Line, todo.Text)
		}
	}

	if len(s.EntryPoints) > 0 {
		b.WriteString("\nENTRY POINTS:\n")

		for _, p := range s.EntryPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	if len(s.CoreFiles) > 0 {
		b.WriteString("\nCORE FILES:\n")

		for _, p := range s.CoreFiles {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString("\nPROJECT STRUCTURE AND CODE INSIGHTS:\n")

	for _, path := range sortedFilePaths(result.Files) {
		writeFileSection(&b, result.Files[path])
	}

	return b.String()
}

func languageBreakdown(byLanguage map[string]int) string {
	if len(byLanguage) == 0 {
		return "none"
	}

	languages := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		languages = append(languages, lang)
	}

	sort.Strings(languages)

	parts := make([]string, 0, len(languages))
	for _, lang := range languages {
		parts = append(parts, fmt.Sprintf("%s: %d", lang, byLanguage[lang]))
	}

	return strings.Join(parts, ", ")
}

func sortedFilePaths(files map[m.Path]m.FileAnalysis) []m.Path {
	paths := make([]m.Path, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}

func writeFileSection(b *strings.Builder, fa m.FileAnalysis) {
	fmt.Fprintf(b, "\n=== %s ===\n", fa.Path)
	fmt.Fprintf(b, "Language: %s\n", fa.Language)
	fmt.Fprintf(b, "Lines: %d (comments: %d)\n", fa.Lines, fa.CommentLines)

	if len(fa.Imports) > 0 {
		b.WriteString("Imports:\n")

		for _, imp := range fa.Imports {
			fmt.Fprintf(b, "  - %s\n", imp)
		}
	}

	writeEntities(b, "Functions", fa.Functions)
	writeEntities(b, "Classes", fa.Classes)

	if len(fa.Todos) > 0 {
		b.WriteString("TODOs:\n")

		for _, todo := range fa.Todos {
			fmt.Fprintf(b, "  - line %d [%s]: %s\n", todo.Line, todo.Priority, todo.Text)
		}
	}
}

func writeEntities(b *strings.Builder, label string, entities []m.CodeEntity) {
	if len(entities) == 0 {
		return
	}

	fmt.Fprintf(b, "%s:\n", label)

	for _, e := range entities {
		doc := ""
		if e.Documented {
			doc = " [documented]"
		}

		fmt.Fprintf(b, "  - %s (line %d)%s\n", e.Name, e.Line, doc)
	}
}
