package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/halvard/deadwood/pkg/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	sort.Strings(out)
	return out
}

func TestScanDirFindsResolvableFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":        "package main\n",
		"web/app.ts":     "export {}\n",
		"web/view.tsx":   "export {}\n",
		"web/legacy.js":  "\n",
		"README.md":      "# readme\n",
		"assets/img.svg": "<svg/>\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := New(cfg).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}

	got := relAll(t, root, files)
	want := []string{"main.go", "web/app.ts", "web/legacy.js", "web/view.tsx"}
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("files = %v, want %v", got, want)
		}
	}
}

func TestScanDirHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                  "package main\n",
		"app.min.js":               "\n",
		"types.d.ts":               "\n",
		"node_modules/dep/idx.js":  "\n",
		"vendor/lib/lib.go":        "package lib\n",
		"internal/util/util.go":    "package util\n",
		"dist/bundle.js":           "\n",
		"build/out.js":             "\n",
		"internal/testdata/gen.go": "package gen\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	cfg.Exclude.Dirs = append(cfg.Exclude.Dirs, "testdata")

	files, err := New(cfg).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}

	got := relAll(t, root, files)
	want := []string{"internal/util/util.go", "main.go"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestScanDirGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "generated/\n*.tmp.ts\n",
		"main.go":          "package main\n",
		"generated/api.go": "package api\n",
		"draft.tmp.ts":     "\n",
	})
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := New(config.DefaultConfig()).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}

	got := relAll(t, root, files)
	if len(got) != 1 || got[0] != "main.go" {
		t.Errorf("files = %v, want [main.go]", got)
	}
}

func TestScanPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"single.go":  "package single\n",
		"notes.txt":  "notes\n",
		"sub/a.ts":   "export {}\n",
		"sub/b.scss": "\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	s := New(cfg)

	files, err := s.ScanPaths([]string{
		filepath.Join(root, "single.go"),
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "sub"),
	})
	if err != nil {
		t.Fatalf("ScanPaths: %v", err)
	}

	got := relAll(t, root, files)
	want := []string{"single.go", "sub/a.ts"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("files = %v, want %v", got, want)
	}

	if _, err := s.ScanPaths([]string{filepath.Join(root, "missing")}); err == nil {
		t.Error("scanning a missing path succeeded")
	}
}
