package model

// CodeEntity is a named function or class found in a source file.
type CodeEntity struct {
	Name       string `json:"name"`
	Line       int    `json:"line"`
	Documented bool   `json:"documented"`
}

// Todo is a TODO or FIXME marker found in a comment.
type Todo struct {
	Line     int    `json:"line"`
	Text     string `json:"text"`
	Priority string `json:"priority"` // high, medium or low
}

// FileAnalysis holds the extraction results for a single source file.
type FileAnalysis struct {
	Path         Path         `json:"path"`
	Language     string       `json:"language"`
	Lines        int          `json:"lines"`
	CommentLines int          `json:"comment_lines"`
	Imports      []string     `json:"imports,omitempty"`
	Functions    []CodeEntity `json:"functions,omitempty"`
	Classes      []CodeEntity `json:"classes,omitempty"`
	Todos        []Todo       `json:"todos,omitempty"`
	Tokens       int          `json:"tokens"`
}

// FileTodo pairs a todo with the file it came from for the aggregate view.
type FileTodo struct {
	Path Path `json:"path"`
	Todo
}

// AnalysisSummary aggregates project-wide metrics over all analyzed files.
type AnalysisSummary struct {
	TotalFiles          int            `json:"total_files"`
	TotalLines          int            `json:"total_lines"`
	FilesByLanguage     map[string]int `json:"files_by_language"`
	FunctionCount       int            `json:"function_count"`
	DocumentedFunctions int            `json:"documented_functions"`
	ClassCount          int            `json:"class_count"`
	DocumentedClasses   int            `json:"documented_classes"`
	UniqueImports       []string       `json:"unique_imports,omitempty"`
	Todos               []FileTodo     `json:"todos,omitempty"`
	EntryPoints         []Path         `json:"entry_points,omitempty"`
	CoreFiles           []Path         `json:"core_files,omitempty"`
	TokenEstimate       int            `json:"token_estimate"`
}

// DocCoverage returns the share of functions and classes carrying
// documentation, in percent. Zero entities yield zero coverage.
func (s AnalysisSummary) DocCoverage() float64 {
	total := s.FunctionCount + s.ClassCount
	if total == 0 {
		return 0
	}
	documented := s.DocumentedFunctions + s.DocumentedClasses
	return float64(documented) / float64(total) * 100
}

// AnalysisResult is the analyzer's full output for one scope.
type AnalysisResult struct {
	Root     Path                  `json:"root"`
	Summary  AnalysisSummary       `json:"summary"`
	Insights []string              `json:"insights,omitempty"`
	Files    map[Path]FileAnalysis `json:"files"`
}
