// Package controller provides the terminal front ends for scope selection
// and result display: an interactive Bubble Tea tree for terminals and a
// plain-text fallback for pipes and scripted runs.
package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// summaryView renders the post-analysis summary shared by both UIs.
func summaryView(result m.AnalysisResult, reportPath m.Path) string {
	var b bytes.Buffer

	summary := result.Summary

	fmt.Fprintf(&b, "\nAnalyzed %s\n\n", result.Root)

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Language", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	languages := make([]string, 0, len(summary.FilesByLanguage))
	for language := range summary.FilesByLanguage {
		languages = append(languages, language)
	}

	sort.Strings(languages)

	for _, language := range languages {
		table.Append([]string{language, fmt.Sprintf("%d", summary.FilesByLanguage[language])})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.TotalFiles)})
	table.Render()

	fmt.Fprintf(&b, "\nLines: %d  Functions: %d  Classes: %d  Doc coverage: %.1f%%\n",
		summary.TotalLines, summary.FunctionCount, summary.ClassCount, summary.DocCoverage())
	fmt.Fprintf(&b, "TODOs: %d  Token estimate: %d\n", len(summary.Todos), summary.TokenEstimate)

	if len(result.Insights) > 0 {
		b.WriteString("\nInsights:\n")

		for _, insight := range result.Insights {
			fmt.Fprintf(&b, "  • %s\n", insight)
		}
	}

	fmt.Fprintf(&b, "\nReport written to %s\n", reportPath)

	return b.String()
}

// stateView renders a persisted selection state, or a short notice when
// none exists for the root.
func stateView(root m.Path, state m.PersistedState, found bool) string {
	var b bytes.Buffer

	if !found {
		fmt.Fprintf(&b, "No saved selection for %s\n", root)

		return b.String()
	}

	fmt.Fprintf(&b, "\nSaved selection for %s\n\n", root)

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"State", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
	table.Append([]string{"Selected", fmt.Sprintf("%d", len(state.SelectedItems))})
	table.Append([]string{"Excluded", fmt.Sprintf("%d", len(state.ExcludedItems))})
	table.Append([]string{"Partial", fmt.Sprintf("%d", len(state.PartiallySelected))})
	table.Append([]string{"Expanded", fmt.Sprintf("%d", len(state.ExpandedDirs))})
	table.Render()

	writePathSection(&b, "Selected", "+", state.SelectedItems)
	writePathSection(&b, "Excluded", "-", state.ExcludedItems)
	writePathSection(&b, "Partially selected", "~", state.PartiallySelected)

	fmt.Fprintf(&b, "\nOptions: format=%s full=%v\n", state.Options.Format, state.Options.ExportFull)

	return b.String()
}

func writePathSection(b *bytes.Buffer, title, marker string, paths []string) {
	if len(paths) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s:\n", title)

	for _, path := range paths {
		fmt.Fprintf(b, "  %s %s\n", marker, path)
	}
}
