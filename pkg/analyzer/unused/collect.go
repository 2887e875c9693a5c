package unused

import (
	"github.com/halvard/deadwood/pkg/semantic"
)

// fileResult is the immutable per-file output of one collection pass:
// the file's candidate declaration set plus its partial usage index and
// export set. Results from different files carry no shared state and can
// be merged in any order.
type fileResult struct {
	path    string
	decls   []semantic.Declaration
	usage   *UsageIndex
	exports *ExportSet
}

// collectFile runs the declaration, usage, and export collectors over one
// resolved unit in a single traversal. Pure function of the unit.
func collectFile(unit *semantic.Unit) fileResult {
	res := fileResult{
		path:    unit.Path,
		usage:   NewUsageIndex(),
		exports: NewExportSet(),
	}

	unit.Visit(func(ev semantic.Event) {
		switch ev.Kind {
		case semantic.DeclarationSeen:
			if eligible(ev.Decl) {
				res.decls = append(res.decls, ev.Decl)
			}
		case semantic.ReferenceSeen:
			if ev.ViaExtension {
				res.usage.AddExtensionUse(ev.Target)
			} else {
				res.usage.AddReference(ev.Target)
			}
		case semantic.ExportSeen:
			res.exports.Add(ev.Target)
		}
	})

	return res
}

// emptyResult is the fail-open result for a file whose resolved
// representation is unavailable: nothing to judge, nothing observed.
func emptyResult(path string) fileResult {
	return fileResult{
		path:    path,
		usage:   NewUsageIndex(),
		exports: NewExportSet(),
	}
}

// eligible reports whether a declaration is structurally capable of being
// unused. Entry points exist to be started, not referenced; overrides
// must exist to satisfy an inherited contract regardless of local use.
func eligible(d semantic.Declaration) bool {
	if d.EntryPoint || d.Override {
		return false
	}
	switch d.Kind {
	case semantic.KindFunction, semantic.KindVariable, semantic.KindClass,
		semantic.KindMethod, semantic.KindGetter, semantic.KindSetter,
		semantic.KindField, semantic.KindType, semantic.KindEnum,
		semantic.KindExtension, semantic.KindExtensionMember:
		return true
	default:
		// Kinds outside the closed set are not judged.
		return false
	}
}
