package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/exprcalc/config"
	"github.com/takoeight0821/exprcalc/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "expr > ", cfg.Prompt)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	assert.True(t, filepath.IsAbs(cfg.HistoryFile))
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
prompt = "calc> "
history_file = "/tmp/calc_history"
no_color = true
max_depth = 64
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "calc> ", cfg.Prompt)
	assert.Equal(t, "/tmp/calc_history", cfg.HistoryFile)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.False(t, cfg.Verbose)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		label    string
		content  string
		contains string
	}{
		{"unknown key", `colour = true`, "unknown keys: colour"},
		{"bad depth", `max_depth = 0`, "max_depth must be at least 1"},
		{"empty prompt", `prompt = ""`, "prompt must not be empty"},
		{"relative history", `history_file = "history"`, "history_file must be an absolute path"},
		{"syntax", `prompt = `, "failed to read config"},
		{"wrong type", `max_depth = "deep"`, "failed to read config"},
	}

	for _, tc := range testcases {
		_, err := config.Load(writeConfig(t, tc.content))
		if assert.Error(t, err, tc.label) {
			assert.Contains(t, err.Error(), tc.contains, tc.label)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocateExplicitPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/etc/exprcalc.toml", config.Locate("/etc/exprcalc.toml"))
}
