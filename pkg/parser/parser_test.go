package parser

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"app.ts", LangTypeScript},
		{"view.tsx", LangTSX},
		{"view.jsx", LangTSX},
		{"script.js", LangJavaScript},
		{"mod.mjs", LangJavaScript},
		{"legacy.cjs", LangJavaScript},
		{"UPPER.GO", LangGo},
		{"README.md", LangUnknown},
		{"Makefile", LangUnknown},
	}

	for _, tc := range cases {
		if got := DetectLanguage(tc.path); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	source := "package sample\n\nfunc Hello() {}\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New()
	defer p.Close()

	result, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if result.Language != LangGo {
		t.Errorf("Language = %s", result.Language)
	}
	if result.Tree.RootNode().Type() != "source_file" {
		t.Errorf("root node = %s", result.Tree.RootNode().Type())
	}
	if string(result.Source) != source {
		t.Error("source not retained")
	}
}

func TestParseFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New()
	defer p.Close()

	if _, err := p.ParseFile(path); err == nil {
		t.Error("parsing an unsupported extension succeeded")
	}
	if _, err := p.ParseFile(filepath.Join(dir, "missing.go")); err == nil {
		t.Error("parsing a missing file succeeded")
	}
}

func TestWalkPruning(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("package sample\n\nimport \"fmt\"\n\nfunc f() { fmt.Println() }\n")
	result, err := p.Parse(source, LangGo, "sample.go")
	if err != nil {
		t.Fatal(err)
	}

	var sawImportPath, sawCall bool
	Walk(result.Tree.RootNode(), source, func(node *sitter.Node, src []byte) bool {
		switch node.Type() {
		case "import_declaration":
			return false
		case "interpreted_string_literal":
			sawImportPath = true
		case "call_expression":
			sawCall = true
		}
		return true
	})

	if sawImportPath {
		t.Error("pruned subtree was visited")
	}
	if !sawCall {
		t.Error("sibling subtree was not visited")
	}
}

func TestGetNodeText(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("package sample\n")
	result, err := p.Parse(source, LangGo, "sample.go")
	if err != nil {
		t.Fatal(err)
	}

	root := result.Tree.RootNode()
	if got := GetNodeText(root, source); got != string(source) {
		t.Errorf("GetNodeText(root) = %q", got)
	}
	if got := GetNodeText(nil, source); got != "" {
		t.Errorf("GetNodeText(nil) = %q", got)
	}
	// Text extraction against the wrong (shorter) buffer must not panic.
	if got := GetNodeText(root, []byte("x")); got != "" {
		t.Errorf("GetNodeText with truncated source = %q", got)
	}
}
