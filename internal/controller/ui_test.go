package controller

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	"github.com/SikamikanikoBG/codelens/internal/domain"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

func sampleAnalysisResult() m.AnalysisResult {
	return m.AnalysisResult{
		Root: "/proj",
		Summary: m.AnalysisSummary{
			TotalFiles:          2,
			TotalLines:          120,
			FilesByLanguage:     map[string]int{"python": 2},
			FunctionCount:       3,
			ClassCount:          1,
			DocumentedFunctions: 2,
			TokenEstimate:       4000,
			Todos: []m.FileTodo{
				{Path: "/proj/main.py", Todo: m.Todo{Line: 10, Text: "rework parser", Priority: "high"}},
			},
		},
		Insights: []string{"2 source files with 120 lines of code"},
	}
}

func TestSummaryView(t *testing.T) {
	view := summaryView(sampleAnalysisResult(), "/proj/.codelens/analysis.txt")

	assert.Contains(t, view, "Analyzed /proj")
	assert.Contains(t, view, "python")
	assert.Contains(t, view, "Total")
	assert.Contains(t, view, "Lines: 120  Functions: 3  Classes: 1  Doc coverage: 50.0%")
	assert.Contains(t, view, "TODOs: 1  Token estimate: 4000")
	assert.Contains(t, view, "Insights:")
	assert.Contains(t, view, "• 2 source files with 120 lines of code")
	assert.Contains(t, view, "Report written to /proj/.codelens/analysis.txt")
}

func TestStateView(t *testing.T) {
	t.Run("missing state", func(t *testing.T) {
		view := stateView("/proj", m.PersistedState{}, false)

		assert.Equal(t, "No saved selection for /proj\n", view)
	})

	t.Run("saved state", func(t *testing.T) {
		state := m.PersistedState{
			SelectedItems:     []string{"/proj/src"},
			ExcludedItems:     []string{"/proj/node_modules", "/proj/dist"},
			PartiallySelected: []string{"/proj"},
			ExpandedDirs:      []string{"/proj", "/proj/src"},
			Options:           m.Options{Format: m.FormatJSON, ExportFull: true, Provider: m.ProviderNone},
		}

		view := stateView("/proj", state, true)

		assert.Contains(t, view, "Saved selection for /proj")
		assert.Contains(t, view, "Selected:")
		assert.Contains(t, view, "  + /proj/src")
		assert.Contains(t, view, "Excluded:")
		assert.Contains(t, view, "  - /proj/node_modules")
		assert.Contains(t, view, "Partially selected:")
		assert.Contains(t, view, "  ~ /proj")
		assert.Contains(t, view, "Options: format=json full=true")
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		view := stateView("/proj", m.PersistedState{Options: m.DefaultOptions()}, true)

		assert.NotContains(t, view, "Selected:")
		assert.NotContains(t, view, "Excluded:")
		assert.Contains(t, view, "Options: format=txt full=false")
	})
}

func TestSimpleUI_SelectScope(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.py"), "pass\n")
	writeTestFile(t, filepath.Join(root, "node_modules", "dep.js"), "x\n")

	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)
	session := domain.NewSession(adapter.NewLocalSourceFSAdapter(), m.Path(root), nil)

	scope, err := ui.SelectScope(session, m.DefaultOptions())
	require.NoError(t, err)

	assert.False(t, scope.Cancelled)
	assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "node_modules"))}, scope.ExcludePaths)
	assert.Empty(t, buf.String())
}

func TestSimpleUI_SelectScopeDebug(t *testing.T) {
	root := t.TempDir()

	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)
	session := domain.NewSession(adapter.NewLocalSourceFSAdapter(), m.Path(root), nil)

	opts := m.DefaultOptions()
	opts.Debug = true

	_, err := ui.SelectScope(session, opts)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Scanning "+root)
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := NewSimpleUI(cmd).DisplaySummary(sampleAnalysisResult(), "/proj/.codelens/analysis.txt")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Analyzed /proj")
	assert.Contains(t, buf.String(), "Report written to /proj/.codelens/analysis.txt")
}

func TestSimpleUI_DisplayState(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := NewSimpleUI(cmd).DisplayState("/proj", m.PersistedState{}, false)
	require.NoError(t, err)

	assert.Equal(t, "No saved selection for /proj\n", buf.String())
}

func TestTreeUI_DisplaySummary(t *testing.T) {
	var buf bytes.Buffer

	err := NewTreeUI(&buf).DisplaySummary(sampleAnalysisResult(), "/proj/.codelens/analysis.txt")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Analyzed /proj")
}

func TestTreeUI_DisplayState(t *testing.T) {
	var buf bytes.Buffer

	err := NewTreeUI(&buf).DisplayState("/proj", m.PersistedState{SelectedItems: []string{"/proj/src"}, Options: m.DefaultOptions()}, true)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Saved selection for /proj")
	assert.Contains(t, buf.String(), "  + /proj/src")
}
