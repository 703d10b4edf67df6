package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kkm-horikawa/sqlpretty/pkg/formatter"
	"github.com/kkm-horikawa/sqlpretty/pkg/guard"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, guard.DefaultMaxLength, cfg.MaxLength)
	require.Equal(t, guard.DefaultMaxTokens, cfg.MaxTokens)
	require.Equal(t, formatter.DefaultCacheCapacity, cfg.CacheCapacity)
	require.True(t, cfg.HTML)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
maxLength: 1000
maxTokens: 200
previewLength: 64
simplify: true
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.MaxLength)
	require.Equal(t, 200, cfg.MaxTokens)
	require.Equal(t, 64, cfg.PreviewLength)
	require.True(t, cfg.Simplify)
	// Unspecified fields keep defaults.
	require.Equal(t, formatter.DefaultCacheCapacity, cfg.CacheCapacity)
}

func TestLoadFromJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"maxLength": 2500, "html": false}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 2500, cfg.MaxLength)
	require.False(t, cfg.HTML)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNewFormatterFromConfig(t *testing.T) {
	cfg := Default()
	cfg.MaxLength = 20

	f := cfg.NewFormatter()
	res := f.Format(context.Background(), "SELECT 1", cfg.Options())
	require.Equal(t, formatter.Formatted, res.Kind)

	res = f.Format(context.Background(), "SELECT 1 FROM somewhere_long", cfg.Options())
	require.Equal(t, formatter.Degraded, res.Kind)
}
