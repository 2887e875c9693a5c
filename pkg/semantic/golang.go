package semantic

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halvard/deadwood/pkg/parser"
)

// collectGoDecls extracts top-level Go declarations: functions, methods,
// named types, and package-level vars and consts. Struct fields are not
// judged.
func collectGoDecls(result *parser.ParseResult) []declInfo {
	var decls []declInfo
	root := result.Tree.RootNode()
	inTestFile := strings.HasSuffix(result.Path, "_test.go")

	parser.Walk(root, result.Source, func(node *sitter.Node, source []byte) bool {
		switch node.Type() {
		case "function_declaration":
			nameNode := node.ChildByFieldName("name")
			name := parser.GetNodeText(nameNode, source)
			if name == "" {
				return true
			}
			decls = append(decls, declInfo{
				name:      name,
				kind:      KindFunction,
				loc:       nodeLocation(nameNode),
				nameStart: nameNode.StartByte(),
				entry:     isGoEntryPoint(name, inTestFile),
			})
			return true

		case "method_declaration":
			nameNode := node.ChildByFieldName("name")
			name := parser.GetNodeText(nameNode, source)
			if name == "" {
				return true
			}
			decls = append(decls, declInfo{
				name:      name,
				kind:      KindMethod,
				loc:       nodeLocation(nameNode),
				nameStart: nameNode.StartByte(),
				member:    true,
				owner:     goReceiverType(node, source),
			})
			return true

		case "type_spec":
			nameNode := node.ChildByFieldName("name")
			name := parser.GetNodeText(nameNode, source)
			if name == "" {
				return true
			}
			decls = append(decls, declInfo{
				name:      name,
				kind:      KindType,
				loc:       nodeLocation(nameNode),
				nameStart: nameNode.StartByte(),
			})
			return true

		case "var_declaration", "const_declaration":
			// Only package-level vars and consts are candidates.
			if parent := node.Parent(); parent == nil || parent.Type() != "source_file" {
				return false
			}
			decls = append(decls, goValueSpecs(node, source)...)
			return false
		}
		return true
	})

	return decls
}

// goValueSpecs extracts every declared name from a var or const block.
// A single spec may declare several names (var a, b = 1, 2); the declared
// names are the only identifiers sitting directly under the spec, values
// are nested inside an expression list.
func goValueSpecs(node *sitter.Node, source []byte) []declInfo {
	var decls []declInfo
	for i := range int(node.ChildCount()) {
		spec := node.Child(i)
		if spec.Type() != "var_spec" && spec.Type() != "const_spec" {
			continue
		}
		for j := range int(spec.ChildCount()) {
			nameNode := spec.Child(j)
			if nameNode.Type() != "identifier" {
				continue
			}
			name := parser.GetNodeText(nameNode, source)
			if name == "" || name == "_" {
				continue
			}
			decls = append(decls, declInfo{
				name:      name,
				kind:      KindVariable,
				loc:       nodeLocation(nameNode),
				nameStart: nameNode.StartByte(),
			})
		}
	}
	return decls
}

// goReceiverType returns the method's receiver type with any pointer
// prefix stripped.
func goReceiverType(node *sitter.Node, source []byte) string {
	receiver := node.ChildByFieldName("receiver")
	if receiver == nil {
		return ""
	}
	for i := range int(receiver.ChildCount()) {
		child := receiver.Child(i)
		if child.Type() != "parameter_declaration" {
			continue
		}
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			text := parser.GetNodeText(typeNode, source)
			return strings.TrimPrefix(text, "*")
		}
	}
	return ""
}

// isGoEntryPoint reports whether a function is started by the runtime or
// the test harness rather than called from program code.
func isGoEntryPoint(name string, inTestFile bool) bool {
	if name == "main" || name == "init" {
		return true
	}
	if !inTestFile {
		return false
	}
	for _, prefix := range []string{"Test", "Benchmark", "Example", "Fuzz"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// collectGoRefs emits every Go occurrence that constitutes a reference:
// identifier reads, calls, type uses, selector accesses. Import paths are
// strings and contribute nothing; Go has no re-export directive.
func collectGoRefs(result *parser.ParseResult, skip map[uint32]struct{}, sink refSink) {
	root := result.Tree.RootNode()

	parser.Walk(root, result.Source, func(node *sitter.Node, source []byte) bool {
		switch node.Type() {
		case "import_declaration":
			return false
		case "identifier", "type_identifier":
			if _, defining := skip[node.StartByte()]; defining {
				return true
			}
			sink.topLevelRef(parser.GetNodeText(node, source))
		case "field_identifier":
			if _, defining := skip[node.StartByte()]; defining {
				return true
			}
			// A selector x.Sel is either a member access or a reference to
			// another package's top-level symbol. Both namespaces apply.
			name := parser.GetNodeText(node, source)
			sink.memberRef(name)
			sink.topLevelRef(name)
		}
		return true
	})
}
