package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halvard/deadwood/pkg/parser"
)

// collectDeclarations dispatches pass-1 declaration extraction by language.
func collectDeclarations(result *parser.ParseResult) []declInfo {
	switch result.Language {
	case parser.LangGo:
		return collectGoDecls(result)
	case parser.LangTypeScript, parser.LangTSX, parser.LangJavaScript:
		return collectTSDecls(result)
	default:
		return nil
	}
}

// collectReferences dispatches pass-2 reference/export extraction by
// language. skip holds the byte offsets of declaring name tokens in this
// file; occurrences there are definitions, not uses.
func collectReferences(result *parser.ParseResult, skip map[uint32]struct{}, sink refSink) {
	switch result.Language {
	case parser.LangGo:
		collectGoRefs(result, skip, sink)
	case parser.LangTypeScript, parser.LangTSX, parser.LangJavaScript:
		collectTSRefs(result, skip, sink)
	}
}

// nodeLocation returns the source location of a node, 1-based for line
// and column as reporters expect.
func nodeLocation(node *sitter.Node) Location {
	return Location{
		Offset: int(node.StartByte()),
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column) + 1,
	}
}
