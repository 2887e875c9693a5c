package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halvard/deadwood/pkg/parser"
)

// collectTSDecls extracts top-level TypeScript/JavaScript declarations and
// class members: functions, classes, methods, accessors, fields,
// variables, interfaces, type aliases, and enums.
func collectTSDecls(result *parser.ParseResult) []declInfo {
	var decls []declInfo
	root := result.Tree.RootNode()

	parser.Walk(root, result.Source, func(node *sitter.Node, source []byte) bool {
		switch node.Type() {
		case "function_declaration", "generator_function_declaration":
			if !tsTopLevel(node) {
				return true
			}
			if d, ok := tsNamedDecl(node, source, KindFunction); ok {
				decls = append(decls, d)
			}
			return true

		case "class_declaration":
			if !tsTopLevel(node) {
				return true
			}
			decls = append(decls, collectTSClass(node, source)...)
			return false

		case "interface_declaration":
			if !tsTopLevel(node) {
				return true
			}
			if d, ok := tsNamedDecl(node, source, KindType); ok {
				decls = append(decls, d)
			}
			return false

		case "type_alias_declaration":
			if !tsTopLevel(node) {
				return true
			}
			if d, ok := tsNamedDecl(node, source, KindType); ok {
				decls = append(decls, d)
			}
			return false

		case "enum_declaration":
			if !tsTopLevel(node) {
				return true
			}
			if d, ok := tsNamedDecl(node, source, KindEnum); ok {
				decls = append(decls, d)
			}
			return false

		case "lexical_declaration", "variable_declaration":
			if !tsTopLevel(node) {
				return false
			}
			for i := range int(node.ChildCount()) {
				declarator := node.Child(i)
				if declarator.Type() != "variable_declarator" {
					continue
				}
				if d, ok := tsNamedDecl(declarator, source, KindVariable); ok {
					decls = append(decls, d)
				}
			}
			return false
		}
		return true
	})

	return decls
}

// collectTSClass extracts a class declaration and its judged members.
func collectTSClass(node *sitter.Node, source []byte) []declInfo {
	var decls []declInfo

	classDecl, ok := tsNamedDecl(node, source, KindClass)
	if !ok {
		return nil
	}
	decls = append(decls, classDecl)

	inherits := false
	for i := range int(node.ChildCount()) {
		if node.Child(i).Type() == "class_heritage" {
			inherits = true
			break
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return decls
	}

	for i := range int(body.ChildCount()) {
		member := body.Child(i)
		switch member.Type() {
		case "method_definition":
			kind := KindMethod
			if tsHasMarker(member, "get") {
				kind = KindGetter
			} else if tsHasMarker(member, "set") {
				kind = KindSetter
			}
			if d, ok := tsNamedDecl(member, source, kind); ok {
				d.member = true
				d.owner = classDecl.name
				d.inherits = inherits
				decls = append(decls, d)
			}

		case "public_field_definition":
			if d, ok := tsNamedDecl(member, source, KindField); ok {
				d.member = true
				d.owner = classDecl.name
				d.inherits = inherits
				d.hasGetter = true
				decls = append(decls, d)
			}
		}
	}
	return decls
}

// tsNamedDecl builds a declInfo from a node's name field.
func tsNamedDecl(node *sitter.Node, source []byte, kind Kind) (declInfo, bool) {
	nameNode := node.ChildByFieldName("name")
	name := parser.GetNodeText(nameNode, source)
	if name == "" {
		return declInfo{}, false
	}
	return declInfo{
		name:      name,
		kind:      kind,
		loc:       nodeLocation(nameNode),
		nameStart: nameNode.StartByte(),
	}, true
}

// tsHasMarker reports whether a node has an anonymous child token of the
// given type (the "get"/"set" accessor markers).
func tsHasMarker(node *sitter.Node, marker string) bool {
	for i := range int(node.ChildCount()) {
		if node.Child(i).Type() == marker {
			return true
		}
	}
	return false
}

// tsTopLevel reports whether a declaration sits at program level, either
// directly or wrapped in an export statement.
func tsTopLevel(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	if parent.Type() == "program" {
		return true
	}
	if parent.Type() == "export_statement" {
		if grand := parent.Parent(); grand != nil && grand.Type() == "program" {
			return true
		}
	}
	return false
}

// collectTSRefs emits every TypeScript/JavaScript occurrence that
// constitutes a reference: identifier reads, calls, constructor
// invocations, type annotations, property accesses. Export clauses feed
// the export set instead of the usage index, and import specifiers count
// as neither: importing a symbol without touching it is not a use.
func collectTSRefs(result *parser.ParseResult, skip map[uint32]struct{}, sink refSink) {
	root := result.Tree.RootNode()

	parser.Walk(root, result.Source, func(node *sitter.Node, source []byte) bool {
		switch node.Type() {
		case "import_statement":
			return false

		case "export_clause":
			// Covers both `export { a }` and `export { a } from './m'`:
			// either form places the names on the program's external
			// surface.
			for i := range int(node.ChildCount()) {
				spec := node.Child(i)
				if spec.Type() != "export_specifier" {
					continue
				}
				if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
					sink.exportRef(parser.GetNodeText(nameNode, source))
				}
			}
			return false

		case "identifier", "type_identifier":
			if _, defining := skip[node.StartByte()]; defining {
				return true
			}
			sink.topLevelRef(parser.GetNodeText(node, source))

		case "property_identifier":
			if _, defining := skip[node.StartByte()]; defining {
				return true
			}
			sink.memberRef(parser.GetNodeText(node, source))
		}
		return true
	})
}
