package unused

import (
	"path/filepath"
	"sort"

	"github.com/halvard/deadwood/pkg/semantic"
)

// SourceLocation pinpoints a reported declaration.
type SourceLocation struct {
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	URI    string `json:"uri"`
}

// Issue is one unused declaration finding.
type Issue struct {
	Name        string         `json:"name"`
	Kind        string         `json:"kind"`
	Location    SourceLocation `json:"location"`
	Fingerprint string         `json:"fingerprint"`
}

// FileReport groups a file's findings. Reports are only emitted for files
// with at least one issue.
type FileReport struct {
	Path    string  `json:"path"`
	RelPath string  `json:"rel_path"`
	Issues  []Issue `json:"issues"`
}

// Summary aggregates run-level counts.
type Summary struct {
	FilesAnalyzed   int            `json:"files_analyzed"`
	FilesWithIssues int            `json:"files_with_issues"`
	TotalIssues     int            `json:"total_issues"`
	ByKind          map[string]int `json:"by_kind"`
}

// Analysis is the full result of one run. An empty Reports slice is the
// valid outcome of a clean codebase, not an error.
type Analysis struct {
	Reports []FileReport `json:"reports"`
	Summary Summary      `json:"summary"`
}

// newIssue shapes a declaration into a reportable issue. Declarations
// without usable span metadata are skipped by the caller.
func newIssue(d semantic.Declaration, relPath string) Issue {
	return Issue{
		Name: d.Name,
		Kind: d.Kind.String(),
		Location: SourceLocation{
			Offset: d.Location.Offset,
			Line:   d.Location.Line,
			Column: d.Location.Column,
			URI:    d.File,
		},
		Fingerprint: Fingerprint(d.Name, d.Kind, relPath, d.Location.Line),
	}
}

// buildAnalysis sorts reports by path and issues by offset so repeated
// runs over an unchanged file set produce identical output.
func buildAnalysis(reports []FileReport, filesAnalyzed int) *Analysis {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	summary := Summary{
		FilesAnalyzed:   filesAnalyzed,
		FilesWithIssues: len(reports),
		ByKind:          make(map[string]int),
	}
	for i := range reports {
		issues := reports[i].Issues
		sort.Slice(issues, func(a, b int) bool {
			return issues[a].Location.Offset < issues[b].Location.Offset
		})
		summary.TotalIssues += len(issues)
		for _, issue := range issues {
			summary.ByKind[issue.Kind]++
		}
	}

	return &Analysis{Reports: reports, Summary: summary}
}

// relativize returns path relative to root, falling back to the path
// itself when it cannot be made relative.
func relativize(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
