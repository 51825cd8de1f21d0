package domain

import (
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

// languageSpec drives the line-oriented extraction for one language. The
// first capture group of every expression is the extracted name.
type languageSpec struct {
	name        string
	lineComment string
	importRE    []*regexp.Regexp
	functionRE  []*regexp.Regexp
	classRE     []*regexp.Regexp

	// docBelow marks languages that document declarations with a string
	// literal on the following line, python docstrings being the case.
	docBelow bool
}

func scriptSpec(name string) *languageSpec {
	return &languageSpec{
		name:        name,
		lineComment: "//",
		importRE: []*regexp.Regexp{
			regexp.MustCompile(`^import\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`^import\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`),
		},
		functionRE: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`),
			regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\(`),
		},
		classRE: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`),
		},
	}
}

var (
	pythonSpec = &languageSpec{
		name:        "python",
		lineComment: "#",
		importRE: []*regexp.Regexp{
			regexp.MustCompile(`^import\s+([\w.]+)`),
			regexp.MustCompile(`^from\s+([\w.]+)\s+import\b`),
		},
		functionRE: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`),
		},
		classRE: []*regexp.Regexp{
			regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)\s*[(:]`),
		},
		docBelow: true,
	}

	javascriptSpec = scriptSpec("javascript")
	typescriptSpec = scriptSpec("typescript")

	goSpec = &languageSpec{
		name:        "go",
		lineComment: "//",
		importRE: []*regexp.Regexp{
			regexp.MustCompile(`^import\s+(?:\w+\s+)?"([^"]+)"`),
			// Members of a gofmt'd import block.
			regexp.MustCompile(`^\t(?:\w+\s+)?"([^"]+)"$`),
		},
		functionRE: []*regexp.Regexp{
			regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?([A-Za-z_]\w*)\s*\(`),
		},
		classRE: []*regexp.Regexp{
			regexp.MustCompile(`^type\s+([A-Za-z_]\w*)\s+(?:struct|interface)\b`),
		},
	}

	sqlSpec = &languageSpec{
		name:        "sql",
		lineComment: "--",
		functionRE: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*CREATE\s+(?:OR\s+ALTER\s+)?(?:PROC|PROCEDURE|FUNCTION)\s+([^\s(]+)`),
		},
		classRE: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*CREATE\s+(?:OR\s+ALTER\s+)?(?:TABLE|VIEW|TRIGGER)\s+([^\s(]+)`),
		},
	}
)

// languagesByExt maps file extensions to their extraction spec and
// therefore defines which files the analyzer considers source code.
var languagesByExt = map[string]*languageSpec{
	".py":  pythonSpec,
	".js":  javascriptSpec,
	".jsx": javascriptSpec,
	".ts":  typescriptSpec,
	".tsx": typescriptSpec,
	".go":  goSpec,
	".sql": sqlSpec,
}

var todoRE = regexp.MustCompile(`(?i)\b(TODO|FIXME)\b[:\s]*(.*)`)

// analyzeFile runs the line-oriented extraction for one file. Files with
// an unknown extension yield a minimal entry with line counts only; the
// full-content export feeds those through here too.
func analyzeFile(path m.Path, content string) m.FileAnalysis {
	spec := languagesByExt[strings.ToLower(filepath.Ext(string(path)))]

	lines := strings.Split(content, "\n")

	fa := m.FileAnalysis{
		Path:     path,
		Language: "text",
		Lines:    len(lines),
	}

	if spec == nil {
		return fa
	}

	fa.Language = spec.name

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		isComment := strings.HasPrefix(trimmed, spec.lineComment)
		if isComment {
			fa.CommentLines++
		}

		// Trailing comments carry TODOs too, so the search is not limited
		// to full comment lines.
		if idx := strings.Index(line, spec.lineComment); idx >= 0 {
			if todo, ok := parseTodo(line[idx:], i+1); ok {
				fa.Todos = append(fa.Todos, todo)
			}
		}

		if isComment {
			continue
		}

		for _, re := range spec.importRE {
			if match := re.FindStringSubmatch(line); match != nil {
				fa.Imports = append(fa.Imports, match[1])

				break
			}
		}

		for _, re := range spec.functionRE {
			if match := re.FindStringSubmatch(line); match != nil {
				fa.Functions = append(fa.Functions, m.CodeEntity{
					Name:       match[1],
					Line:       i + 1,
					Documented: isDocumented(spec, lines, i),
				})

				break
			}
		}

		for _, re := range spec.classRE {
			if match := re.FindStringSubmatch(line); match != nil {
				fa.Classes = append(fa.Classes, m.CodeEntity{
					Name:       match[1],
					Line:       i + 1,
					Documented: isDocumented(spec, lines, i),
				})

				break
			}
		}
	}

	fa.Imports = dedupeStrings(fa.Imports)

	return fa
}

func parseTodo(comment string, line int) (m.Todo, bool) {
	match := todoRE.FindStringSubmatch(comment)
	if match == nil {
		return m.Todo{}, false
	}

	text := strings.TrimSpace(match[2])
	if text == "" {
		text = strings.ToUpper(match[1])
	}

	return m.Todo{
		Line:     line,
		Text:     text,
		Priority: todoPriority(match[0]),
	}, true
}

func todoPriority(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "urgent"), strings.Contains(lower, "critical"),
		strings.Contains(lower, "asap"), strings.Contains(lower, "fixme"):
		return "high"
	case strings.Contains(lower, "important"), strings.Contains(lower, "soon"):
		return "medium"
	default:
		return "low"
	}
}

// isDocumented checks for documentation adjacent to the declaration at
// declIdx: a docstring on the next non-blank line for docBelow languages,
// otherwise a comment directly above.
func isDocumented(spec *languageSpec, lines []string, declIdx int) bool {
	if spec.docBelow {
		for i := declIdx + 1; i < len(lines); i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" {
				continue
			}

			return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''")
		}

		return false
	}

	if declIdx == 0 {
		return false
	}

	prev := strings.TrimSpace(lines[declIdx-1])

	return strings.HasPrefix(prev, spec.lineComment) ||
		strings.HasPrefix(prev, "*") ||
		strings.HasPrefix(prev, "/*") ||
		strings.HasPrefix(prev, "*/")
}

// entryPointNames are basenames conventionally used to start a program.
var entryPointNames = map[string]struct{}{
	"main.py":   {},
	"app.py":    {},
	"cli.py":    {},
	"manage.py": {},
	"server.py": {},
	"index.js":  {},
	"server.js": {},
	"app.js":    {},
	"main.go":   {},
}

func isEntryPoint(path m.Path, fa m.FileAnalysis) bool {
	if _, ok := entryPointNames[strings.ToLower(baseName(path))]; ok {
		return true
	}

	for _, fn := range fa.Functions {
		switch strings.ToLower(fn.Name) {
		case "main", "run", "start":
			return true
		}
	}

	return false
}

// isCoreFile flags files dense enough in definitions to deserve a place
// in the report's shortlist.
func isCoreFile(fa m.FileAnalysis) bool {
	return len(fa.Functions) > 5 || len(fa.Classes) > 2
}

func dedupeStrings(values []string) []string {
	if len(values) < 2 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := values[:0]

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}

		out = append(out, v)
	}

	return out
}
