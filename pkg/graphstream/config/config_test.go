package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNilMap(t *testing.T) {
	cfg := New(nil)
	assert.NotNil(t, cfg.Raw())
	assert.Equal(t, "fallback", cfg.String("missing", "fallback"))
}

func TestString(t *testing.T) {
	cfg := New(map[string]any{"sep": "/", "depth": 3})

	assert.Equal(t, "/", cfg.String("sep", "|"))
	assert.Equal(t, "|", cfg.String("missing", "|"))
	assert.Equal(t, "|", cfg.String("depth", "|"), "wrong type falls back to default")
}

func TestBool(t *testing.T) {
	cfg := New(map[string]any{"non_blocking": true, "label": "yes"})

	assert.True(t, cfg.Bool("non_blocking", false))
	assert.False(t, cfg.Bool("missing", false))
	assert.False(t, cfg.Bool("label", false), "strings are not coerced to bool")
}

func TestInt(t *testing.T) {
	cfg := New(map[string]any{
		"plain":      7,
		"wide":       int64(8),
		"whole":      float64(9),
		"fractional": 9.5,
	})

	assert.Equal(t, 7, cfg.Int("plain", 0))
	assert.Equal(t, 8, cfg.Int("wide", 0))
	assert.Equal(t, 9, cfg.Int("whole", 0))
	assert.Equal(t, 1, cfg.Int("fractional", 1), "fractional floats fall back to default")
	assert.Equal(t, 1, cfg.Int("missing", 1))
}

func TestStringSlice(t *testing.T) {
	cfg := New(map[string]any{
		"typed": []string{"a", "b"},
		"mixed": []any{"a", "b"},
		"bad":   []any{"a", 2},
	})

	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("typed", nil))
	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("mixed", nil))
	assert.Nil(t, cfg.StringSlice("bad", nil), "non-string element falls back to default")
	assert.Equal(t, []string{"x"}, cfg.StringSlice("missing", []string{"x"}))
}

func TestHas(t *testing.T) {
	cfg := New(map[string]any{"key": nil})
	assert.True(t, cfg.Has("key"))
	assert.False(t, cfg.Has("other"))
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
namespace_separator: "/"
max_depth: 8
buffer_size: 128
non_blocking: true
`))
	require.NoError(t, err)

	assert.Equal(t, "/", cfg.String(KeyNamespaceSeparator, "|"))
	assert.Equal(t, 8, cfg.Int(KeyMaxDepth, 5))
	assert.Equal(t, 128, cfg.Int(KeyBufferSize, 256))
	assert.True(t, cfg.Bool(KeyNonBlocking, false))
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := FromYAML([]byte("{invalid"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"max_depth": 6}`))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Int(KeyMaxDepth, 5))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "stream.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("max_depth: 7"), 0o644))

	cfg, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Int(KeyMaxDepth, 5))

	_, err = FromFile(filepath.Join(dir, "stream.toml"))
	assert.Error(t, err, "unsupported extension")

	_, err = FromFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestHandlerOptions(t *testing.T) {
	cfg := New(map[string]any{
		KeyNamespaceSeparator: "/",
		KeyMaxDepth:           8,
	})
	assert.Len(t, cfg.HandlerOptions(), 2)

	assert.Empty(t, New(nil).HandlerOptions(), "no options without recognized keys")
}
