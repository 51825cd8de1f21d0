package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// stubUI drives workflow tests without a terminal. The mocks package
// cannot be used here because the domain's own tests would import it back
// into the package under test.
type stubUI struct {
	selectScopeFn func(session *Session, opts m.Options) (m.ScopeResult, error)

	summaryCalls   int
	lastResult     m.AnalysisResult
	lastReportPath m.Path

	stateCalls    int
	lastStateRoot m.Path
	lastState     m.PersistedState
	lastFound     bool
}

func (u *stubUI) SelectScope(session *Session, opts m.Options) (m.ScopeResult, error) {
	return u.selectScopeFn(session, opts)
}

func (u *stubUI) DisplaySummary(result m.AnalysisResult, reportPath m.Path) error {
	u.summaryCalls++
	u.lastResult = result
	u.lastReportPath = reportPath

	return nil
}

func (u *stubUI) DisplayState(root m.Path, state m.PersistedState, found bool) error {
	u.stateCalls++
	u.lastStateRoot = root
	u.lastState = state
	u.lastFound = found

	return nil
}

func confirmingUI() *stubUI {
	return &stubUI{
		selectScopeFn: func(session *Session, opts m.Options) (m.ScopeResult, error) {
			return DefaultScope(session, opts), nil
		},
	}
}

func newTestWorkflow(ui UI) Workflow {
	fs := adapter.NewLocalSourceFSAdapter()
	chunker := newByteChunker()

	return NewWorkflow(fs, adapter.NewStateStore(), adapter.NewReportStore(), NewAnalyzer(fs, chunker), chunker, ui)
}

func TestWorkflow_RunWritesReportAndState(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "def main():\n    pass\n")
	writeFixture(t, filepath.Join(root, "node_modules", "dep.js"), "module.exports = 1\n")

	ui := confirmingUI()
	wf := newTestWorkflow(ui)

	err := wf.Run(RunArgs{Path: root, Threads: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, ui.summaryCalls)
	assert.Equal(t, 1, ui.lastResult.Summary.TotalFiles)

	assert.Equal(t, m.Path(filepath.Join(root, ".codelens", "analysis.txt")), ui.lastReportPath)
	_, err = os.Stat(string(ui.lastReportPath))
	require.NoError(t, err)

	state, found := adapter.NewStateStore().Load(m.Path(root))
	require.True(t, found)
	assert.Contains(t, state.ExcludedItems, filepath.Join(root, "node_modules"))
}

func TestWorkflow_RunCancelledSessionChangesNothing(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "pass\n")

	ui := &stubUI{
		selectScopeFn: func(session *Session, opts m.Options) (m.ScopeResult, error) {
			return session.Cancel(opts), nil
		},
	}

	err := newTestWorkflow(ui).Run(RunArgs{Path: root, Threads: 2})
	require.NoError(t, err)

	assert.Zero(t, ui.summaryCalls)

	_, err = os.Stat(filepath.Join(root, ".codelens"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorkflow_RunNoUISkipsSelection(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "pass\n")

	ui := &stubUI{
		selectScopeFn: func(*Session, m.Options) (m.ScopeResult, error) {
			t.Fatal("SelectScope called with --no-ui")

			return m.ScopeResult{}, nil
		},
	}

	err := newTestWorkflow(ui).Run(RunArgs{Path: root, Threads: 2, NoUI: true})
	require.NoError(t, err)

	assert.Equal(t, 1, ui.summaryCalls)
}

func TestWorkflow_RunFallsBackWhenUIFails(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "pass\n")

	ui := &stubUI{
		selectScopeFn: func(*Session, m.Options) (m.ScopeResult, error) {
			return m.ScopeResult{}, errors.New("no tty")
		},
	}

	err := newTestWorkflow(ui).Run(RunArgs{Path: root, Threads: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, ui.summaryCalls)
	assert.Equal(t, 1, ui.lastResult.Summary.TotalFiles)
}

func TestWorkflow_RunFullExport(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "def main():\n    pass\n")

	err := newTestWorkflow(confirmingUI()).Run(RunArgs{Path: root, Threads: 2, Full: true})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, ".codelens", "full_1.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== main.py ===")
}

func TestWorkflow_RunPersistedFormatWins(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "pass\n")

	prior := m.PersistedState{Options: m.Options{Format: m.FormatJSON, Provider: m.ProviderNone}}
	require.NoError(t, adapter.NewStateStore().Save(m.Path(root), prior))

	ui := confirmingUI()
	wf := newTestWorkflow(ui)

	// No --format flag: the persisted choice applies.
	require.NoError(t, wf.Run(RunArgs{Path: root, Threads: 2}))
	assert.Equal(t, "analysis.json", filepath.Base(string(ui.lastReportPath)))

	// The flag overrides and the override persists.
	require.NoError(t, wf.Run(RunArgs{Path: root, Threads: 2, Format: m.FormatText}))
	assert.Equal(t, "analysis.txt", filepath.Base(string(ui.lastReportPath)))

	state, found := adapter.NewStateStore().Load(m.Path(root))
	require.True(t, found)
	assert.Equal(t, m.FormatText, state.Options.Format)
}

func TestWorkflow_RunExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "main.py"), "pass\n")
	writeFixture(t, filepath.Join(root, "gen.py"), "pass\n")

	ui := confirmingUI()

	err := newTestWorkflow(ui).Run(RunArgs{Path: root, Threads: 2, Excludes: []string{"gen.py"}})
	require.NoError(t, err)

	assert.Equal(t, 1, ui.lastResult.Summary.TotalFiles)

	state, found := adapter.NewStateStore().Load(m.Path(root))
	require.True(t, found)
	assert.Equal(t, []string{"gen.py"}, state.Options.ExcludePatterns)
}

func TestWorkflow_RunOutputDirResolution(t *testing.T) {
	t.Run("relative output nests under the root", func(t *testing.T) {
		root := t.TempDir()
		writeFixture(t, filepath.Join(root, "main.py"), "pass\n")

		ui := confirmingUI()

		err := newTestWorkflow(ui).Run(RunArgs{Path: root, Output: "reports", Threads: 2})
		require.NoError(t, err)

		assert.Equal(t, m.Path(filepath.Join(root, "reports", "analysis.txt")), ui.lastReportPath)
	})

	t.Run("absolute output is used as is", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "out")
		writeFixture(t, filepath.Join(root, "main.py"), "pass\n")

		ui := confirmingUI()

		err := newTestWorkflow(ui).Run(RunArgs{Path: root, Output: out, Threads: 2})
		require.NoError(t, err)

		assert.Equal(t, m.Path(filepath.Join(out, "analysis.txt")), ui.lastReportPath)
	})
}

func TestWorkflow_RunRejectsBadRoot(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		err := newTestWorkflow(confirmingUI()).Run(RunArgs{Path: filepath.Join(t.TempDir(), "nope")})
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "main.py")
		writeFixture(t, file, "pass\n")

		err := newTestWorkflow(confirmingUI()).Run(RunArgs{Path: file})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestWorkflow_List(t *testing.T) {
	t.Run("no saved state", func(t *testing.T) {
		root := t.TempDir()
		ui := confirmingUI()

		err := newTestWorkflow(ui).List(ListArgs{Path: root})
		require.NoError(t, err)

		assert.Equal(t, 1, ui.stateCalls)
		assert.Equal(t, m.Path(root), ui.lastStateRoot)
		assert.False(t, ui.lastFound)
	})

	t.Run("saved state", func(t *testing.T) {
		root := t.TempDir()
		saved := m.PersistedState{
			SelectedItems: []string{filepath.Join(root, "src")},
			Options:       m.DefaultOptions(),
		}
		require.NoError(t, adapter.NewStateStore().Save(m.Path(root), saved))

		ui := confirmingUI()

		err := newTestWorkflow(ui).List(ListArgs{Path: root})
		require.NoError(t, err)

		assert.True(t, ui.lastFound)
		assert.Equal(t, saved.SelectedItems, ui.lastState.SelectedItems)
	})
}
