// Package cmd provides the root command and CLI setup for codelens.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SikamikanikoBG/codelens/internal/adapter"
	"github.com/SikamikanikoBG/codelens/internal/controller"
	"github.com/SikamikanikoBG/codelens/internal/domain"
	m "github.com/SikamikanikoBG/codelens/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var stateStore adapter.StateStore
var reportStore adapter.ReportStore
var chunker *domain.Chunker
var analyzer domain.Analyzer
var ui domain.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	stateStore = adapter.NewStateStore()
	reportStore = adapter.NewReportStore()
	chunker = domain.NewChunker()
	analyzer = domain.NewAnalyzer(fsAdapter, chunker)
	workflow = domain.NewWorkflow(
		fsAdapter,
		stateStore,
		reportStore,
		analyzer,
		chunker,
		ui,
	)
}

var outputFlag string
var formatFlag string
var fullFlag bool
var debugFlag bool
var excludeFlags []string
var parallelFlag int
var noUIFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codelens [path]",
		Short: "Scoped code analysis for AI assistants",
		Long: `CodeLens analyzes a project directory and produces a compact report
suited for AI assistants: structure, code metrics, TODOs and insights.

An interactive tree lets you scope the analysis by selecting and
excluding files and directories. The selection is persisted per project
and restored on the next run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			runArgs := domain.RunArgs{
				Path:     path,
				Output:   outputFlag,
				Full:     fullFlag,
				Debug:    debugFlag,
				Excludes: excludeFlags,
				Threads:  parallelFlag,
				NoUI:     noUIFlag,
			}

			// Only a flag the user actually set may override the
			// persisted format.
			if cmd.Flags().Changed("format") {
				format := m.OutputFormat(formatFlag)
				if !format.Valid() {
					return fmt.Errorf("invalid format %q", formatFlag)
				}

				runArgs.Format = format
			}

			return workflow.Run(runArgs)
		},
	}
	cmd.Flags().StringVarP(&outputFlag, "output", "o", ".codelens", "report output directory (relative paths nest under the analyzed root)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "txt", "report format: txt or json")
	cmd.Flags().BoolVar(&fullFlag, "full", false, "export the full text of every selected file in token-bounded chunks")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "enable diagnostic output")
	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude paths matching gitignore-style pattern (can be repeated)")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 4, "number of parallel analysis workers")
	cmd.Flags().BoolVar(&noUIFlag, "no-ui", false, "skip the interactive tree and include everything")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
