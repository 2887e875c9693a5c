// Package unused detects declarations that nothing in the analyzed
// program references. Per file it collects the candidate declaration set
// and the set of observed references; the per-file results are folded
// into one program-wide usage index and export set, and each file's
// candidates are then reconciled against both.
package unused

import (
	"context"

	"github.com/halvard/deadwood/internal/fileproc"
	"github.com/halvard/deadwood/pkg/semantic"
)

// Analyzer reconciles per-file declaration sets against a program-wide
// usage index. Files are processed independently and in parallel; the
// only synchronization point is the final merge.
type Analyzer struct {
	resolver  semantic.Resolver
	secondary semantic.Resolver
	eligible  func(path string) bool
	root      string
	ignore    map[string]struct{}
	workers   int
	progress  fileproc.ProgressFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSecondaryResolver sets the resolver for files outside the primary
// resolution session, with an optional predicate gating which of those
// files are analyzed at all. A nil predicate admits every file.
func WithSecondaryResolver(r semantic.Resolver, eligible func(path string) bool) Option {
	return func(a *Analyzer) {
		a.secondary = r
		a.eligible = eligible
	}
}

// WithRoot sets the directory reports are made relative to.
func WithRoot(root string) Option {
	return func(a *Analyzer) {
		a.root = root
	}
}

// WithIgnore suppresses issues whose fingerprint is in the list.
func WithIgnore(fingerprints []string) Option {
	return func(a *Analyzer) {
		for _, fp := range fingerprints {
			a.ignore[fp] = struct{}{}
		}
	}
}

// WithWorkers sets the worker count; <= 0 means the fileproc default.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithProgress sets a callback invoked once per processed file.
func WithProgress(fn fileproc.ProgressFunc) Option {
	return func(a *Analyzer) {
		a.progress = fn
	}
}

// New creates an analyzer over the given primary resolver.
func New(resolver semantic.Resolver, opts ...Option) *Analyzer {
	a := &Analyzer{
		resolver: resolver,
		ignore:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline over the primary file set plus any
// secondary-path files. A file whose resolution fails contributes empty
// sets and never aborts the run; findings are under-reported rather than
// the run crashing.
func (a *Analyzer) Analyze(ctx context.Context, files, secondary []string) (*Analysis, error) {
	results := a.collect(ctx, files, a.resolver)

	if a.secondary != nil {
		admitted := secondary[:0:0]
		for _, path := range secondary {
			if a.eligible == nil || a.eligible(path) {
				admitted = append(admitted, path)
			}
		}
		results = append(results, a.collect(ctx, admitted, a.secondary)...)
	}

	// Fold the per-file partial indices. Union is order-independent, so
	// the arbitrary completion order of the workers above cannot change
	// the outcome.
	usage := NewUsageIndex()
	exports := NewExportSet()
	for _, res := range results {
		usage.Merge(res.usage)
		exports.Merge(res.exports)
	}

	reports := make([]FileReport, 0, len(results))
	for _, res := range results {
		if report, ok := a.determine(res, usage, exports); ok {
			reports = append(reports, report)
		}
	}

	return buildAnalysis(reports, len(results)), nil
}

// collect resolves and collects each file as one unit of work.
func (a *Analyzer) collect(ctx context.Context, files []string, resolver semantic.Resolver) []fileResult {
	results, _ := fileproc.MapN(ctx, files, a.workers, func(path string) (fileResult, error) {
		unit, err := resolver.Resolve(path)
		if err != nil {
			return emptyResult(path), nil
		}
		return collectFile(unit), nil
	}, a.progress)
	return results
}

// determine subtracts the program-wide usage index and export set from
// one file's candidate declarations. Export filtering happens here, after
// the whole program's usage is known, so a symbol exported anywhere
// suppresses findings for its declaration regardless of file order.
func (a *Analyzer) determine(res fileResult, usage *UsageIndex, exports *ExportSet) (FileReport, bool) {
	relPath := relativize(a.root, res.path)

	var issues []Issue
	for _, d := range res.decls {
		if isUsed(d, usage) {
			continue
		}
		if exports.Contains(d.ID) {
			continue
		}
		if !d.Location.Valid() {
			// No trustworthy span to report; skip rather than emit a
			// finding with corrupt location data.
			continue
		}
		issue := newIssue(d, relPath)
		if _, ignored := a.ignore[issue.Fingerprint]; ignored {
			continue
		}
		issues = append(issues, issue)
	}

	if len(issues) == 0 {
		return FileReport{}, false
	}
	return FileReport{Path: res.path, RelPath: relPath, Issues: issues}, true
}
