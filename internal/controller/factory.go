package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SikamikanikoBG/codelens/internal/domain"
)

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TreeUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) domain.UI {
	if useTTY {
		return NewTreeUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns true if the output is an interactive terminal.
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
