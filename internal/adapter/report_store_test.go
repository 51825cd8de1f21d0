package adapter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

func sampleResult(root string) m.AnalysisResult {
	mainPath := m.Path(filepath.Join(root, "main.py"))
	utilPath := m.Path(filepath.Join(root, "util.py"))

	return m.AnalysisResult{
		Root: m.Path(root),
		Summary: m.AnalysisSummary{
			TotalFiles:          2,
			TotalLines:          120,
			FilesByLanguage:     map[string]int{"python": 2},
			FunctionCount:       3,
			DocumentedFunctions: 1,
			ClassCount:          1,
			DocumentedClasses:   1,
			UniqueImports:       []string{"os", "sys"},
			Todos: []m.FileTodo{
				{Path: utilPath, Todo: m.Todo{Line: 10, Text: "rework parser", Priority: "high"}},
			},
			EntryPoints:   []m.Path{mainPath},
			CoreFiles:     []m.Path{utilPath},
			TokenEstimate: 450,
		},
		Insights: []string{"2 source files with 120 lines of code"},
		Files: map[m.Path]m.FileAnalysis{
			mainPath: {
				Path:     mainPath,
				Language: "python",
				Lines:    40,
				Imports:  []string{"os"},
				Functions: []m.CodeEntity{
					{Name: "main", Line: 3, Documented: true},
				},
			},
			utilPath: {
				Path:     utilPath,
				Language: "python",
				Lines:    80,
				Imports:  []string{"sys"},
				Classes: []m.CodeEntity{
					{Name: "Parser", Line: 5, Documented: true},
				},
				Todos: []m.Todo{{Line: 10, Text: "rework parser", Priority: "high"}},
			},
		},
	}
}

func TestReportStore_WriteAnalysisText(t *testing.T) {
	store := NewReportStore()
	root := t.TempDir()
	dir := m.Path(filepath.Join(root, ".codelens"))

	path, err := store.WriteAnalysis(dir, sampleResult(root), m.Options{Format: m.FormatText})
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(string(dir), "analysis.txt")), path)

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "CODEBASE SUMMARY:")
	assert.Contains(t, content, "This project contains 2 files (python: 2).")
	assert.Contains(t, content, "KEY INSIGHTS:")
	assert.Contains(t, content, "CODE METRICS:")
	assert.Contains(t, content, "TODOS:")
	assert.Contains(t, content, "[HIGH] "+filepath.Join(root, "util.py")+":10: rework parser")
	assert.Contains(t, content, "ENTRY POINTS:")
	assert.Contains(t, content, "CORE FILES:")
	assert.Contains(t, content, "PROJECT STRUCTURE AND CODE INSIGHTS:")
	assert.Contains(t, content, "=== "+filepath.Join(root, "main.py")+" ===")
}

func TestReportStore_WriteAnalysisJSON(t *testing.T) {
	store := NewReportStore()
	root := t.TempDir()
	dir := m.Path(filepath.Join(root, ".codelens"))

	path, err := store.WriteAnalysis(dir, sampleResult(root), m.Options{Format: m.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(string(dir), "analysis.json")), path)

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)

	var decoded m.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, m.Path(root), decoded.Root)
	assert.Len(t, decoded.Files, 2)
	assert.Equal(t, 450, decoded.Summary.TokenEstimate)
}

func TestReportStore_WriteAnalysisCreatesDir(t *testing.T) {
	store := NewReportStore()
	root := t.TempDir()
	dir := m.Path(filepath.Join(root, "deep", "nested", "out"))

	_, err := store.WriteAnalysis(dir, sampleResult(root), m.Options{Format: m.FormatText})
	require.NoError(t, err)

	info, err := os.Stat(string(dir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReportStore_WriteFullContent(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), ".codelens"))

	paths, err := store.WriteFullContent(dir, []string{"first chunk", "second chunk"})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.Equal(t, m.Path(filepath.Join(string(dir), "full_1.txt")), paths[0])
	assert.Equal(t, m.Path(filepath.Join(string(dir), "full_2.txt")), paths[1])

	first, err := os.ReadFile(string(paths[0]))
	require.NoError(t, err)
	assert.Equal(t, "first chunk", string(first))

	second, err := os.ReadFile(string(paths[1]))
	require.NoError(t, err)
	assert.Equal(t, "second chunk", string(second))
}

func TestReportStore_WriteFullContentEmpty(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), ".codelens"))

	paths, err := store.WriteFullContent(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
