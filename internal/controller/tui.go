package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/SikamikanikoBG/codelens/internal/domain"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// TreeUI implements domain.UI using Bubble Tea for interactive scope
// selection.
type TreeUI struct {
	output io.Writer
}

// NewTreeUI creates a new TreeUI.
func NewTreeUI(output io.Writer) *TreeUI {
	return &TreeUI{output: output}
}

// SelectScope runs the scan screen and the selection tree, then freezes
// the session into a scope. Quitting either screen cancels the session.
func (t *TreeUI) SelectScope(session *domain.Session, opts m.Options) (m.ScopeResult, error) {
	model := newSelectModel(session)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return m.ScopeResult{}, err
	}

	outcome, ok := final.(selectModel)
	if !ok {
		return m.ScopeResult{}, fmt.Errorf("unexpected final model %T", final)
	}

	// A quit during the scan phase leaves the scan goroutine running.
	outcome.scanCancel()

	if outcome.confirmed {
		return session.Confirm(opts), nil
	}

	return session.Cancel(opts), nil
}

// DisplaySummary renders the post-analysis summary.
func (t *TreeUI) DisplaySummary(result m.AnalysisResult, reportPath m.Path) error {
	_, err := fmt.Fprint(t.output, summaryView(result, reportPath))

	return err
}

// DisplayState renders a saved selection state.
func (t *TreeUI) DisplayState(root m.Path, state m.PersistedState, found bool) error {
	_, err := fmt.Fprint(t.output, stateView(root, state, found))

	return err
}
