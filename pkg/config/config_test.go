package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Check.FailOnIssues)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.Contains(t, cfg.Exclude.Dirs, "node_modules")
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "deadwood.toml", `[check]
workers = 4
fail_on_issues = false
ignore = ["abc123def4567890"]

[exclude]
patterns = ["*.gen.go"]
dirs = ["testdata"]
gitignore = false

[output]
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Check.Workers)
	assert.False(t, cfg.Check.FailOnIssues)
	assert.Equal(t, []string{"abc123def4567890"}, cfg.Check.Ignore)
	assert.Equal(t, []string{"*.gen.go"}, cfg.Exclude.Patterns)
	assert.Equal(t, []string{"testdata"}, cfg.Exclude.Dirs)
	assert.False(t, cfg.Exclude.Gitignore)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "deadwood.yaml", `check:
  workers: 2
output:
  format: markdown
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Check.Workers)
	assert.Equal(t, "markdown", cfg.Output.Format)

	// Sections absent from the file keep their defaults.
	assert.NotEmpty(t, cfg.Exclude.Dirs)
	assert.True(t, cfg.Check.FailOnIssues)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "deadwood.json", `{"check": {"workers": 8}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Check.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		path string
		want bool
	}{
		{"src/app.ts", false},
		{"node_modules/lib/index.js", true},
		{"src/vendor/dep/dep.go", true},
		{"app.min.js", true},
		{"dist/bundle.js", true},
		{"types.d.ts", true},
		{"vendored.go", false},
	}

	for _, tc := range cases {
		path := filepath.FromSlash(tc.path)
		assert.Equal(t, tc.want, cfg.ShouldExclude(path), "path %s", tc.path)
	}
}
