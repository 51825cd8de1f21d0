package controller

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SikamikanikoBG/codelens/internal/domain"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// SimpleUI implements domain.UI using cobra Command's writer, without
// any interaction.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// SelectScope confirms the default scope: the noise scan seeds the
// exclusions and everything else stays included.
func (s *SimpleUI) SelectScope(session *domain.Session, opts m.Options) (m.ScopeResult, error) {
	if opts.Debug {
		s.printf("Scanning %s\n", session.Store.Root())
	}

	return domain.DefaultScope(session, opts), nil
}

// DisplaySummary prints the post-analysis summary.
func (s *SimpleUI) DisplaySummary(result m.AnalysisResult, reportPath m.Path) error {
	s.printf("%s", summaryView(result, reportPath))

	return nil
}

// DisplayState prints a saved selection state.
func (s *SimpleUI) DisplayState(root m.Path, state m.PersistedState, found bool) error {
	s.printf("%s", stateView(root, state, found))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
