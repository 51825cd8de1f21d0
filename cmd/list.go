package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SikamikanikoBG/codelens/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Show the saved selection for a project",
		Long:  "Show the selection state persisted for a project directory without running an analysis.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			return workflow.List(domain.ListArgs{Path: path})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
