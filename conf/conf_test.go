package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, `
enabled: true
directory: `+dir+`
compression: lz4
compression-level: 5
codec: json
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, dir, s.Directory)
	assert.Equal(t, "lz4", s.Compression)
	assert.Equal(t, 5, s.CompressionLevel)

	cache := s.Cache()
	require.True(t, cache.Enabled())
	assert.Equal(t, 5, cache.CompressionLevel())
	assert.Equal(t, "lz4", cache.Compression().Name())
	assert.Equal(t, "json", cache.Codec().Name())
}

func TestLoadDefaults(t *testing.T) {
	path := writeSettings(t, `enabled: false`)

	s, err := Load(path)
	require.NoError(t, err)

	cache := s.Cache()
	assert.False(t, cache.Enabled())
	assert.Equal(t, "zstd", cache.Compression().Name())
	assert.Equal(t, "go-json", cache.Codec().Name())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeSettings(t, "enabled: [not a bool")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  string
	}{
		{"empty is valid", Settings{}, ""},
		{"unknown compression", Settings{Compression: "gzip"}, "unknown compression"},
		{"unknown codec", Settings{Codec: "gob"}, "unknown codec"},
		{"negative level", Settings{CompressionLevel: -1}, "must not be negative"},
		{"zstd level too high", Settings{Compression: "zstd", CompressionLevel: 23}, "exceeds maximum"},
		{"lz4 level too high", Settings{Compression: "lz4", CompressionLevel: 10}, "exceeds maximum"},
		{"lz4 level in range", Settings{Compression: "lz4", CompressionLevel: 9}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
