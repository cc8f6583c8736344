// Package conf loads cache settings from YAML files.
//
// This is the configuration plumbing an embedding compiler points its own
// CLI or config file at; the cache core never reads files itself. A settings
// file looks like:
//
//	enabled: true
//	directory: /var/cache/mycompiler
//	compression: zstd
//	compression-level: 3
//	codec: go-json
//
// Every field is optional. An absent directory falls back to the platform
// cache directory, and absent compression/codec names select the defaults.
package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/modcache"
	"github.com/hupe1980/modcache/codec"
	"github.com/hupe1980/modcache/compress"
)

// maxLevel caps the compression level per algorithm.
var maxLevel = map[string]int{
	"zstd": 22,
	"lz4":  9,
	"none": 0,
}

// Settings is the YAML shape of a cache settings file.
type Settings struct {
	Enabled          bool   `yaml:"enabled"`
	Directory        string `yaml:"directory"`
	Compression      string `yaml:"compression"`
	CompressionLevel int    `yaml:"compression-level"`
	Codec            string `yaml:"codec"`
}

// Load reads and validates a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names and ranges. Directory existence is deliberately not
// checked here; cache construction creates it and degrades on failure.
func (s *Settings) Validate() error {
	compression := s.Compression
	if compression == "" {
		compression = compress.Default.Name()
	}
	if _, ok := compress.ByName(compression); !ok {
		return fmt.Errorf("unknown compression algorithm %q", s.Compression)
	}
	if s.CompressionLevel < 0 {
		return fmt.Errorf("compression level must not be negative, got %d", s.CompressionLevel)
	}
	if limit := maxLevel[compression]; s.CompressionLevel > limit {
		return fmt.Errorf("compression level %d exceeds maximum %d for %s", s.CompressionLevel, limit, compression)
	}
	if s.Codec != "" {
		if _, ok := codec.ByName(s.Codec); !ok {
			return fmt.Errorf("unknown codec %q", s.Codec)
		}
	}
	return nil
}

// Cache builds the cache described by the settings. Call Validate (or Load,
// which validates) first; unknown names here fall back to defaults rather
// than failing, matching the cache's degrade-don't-fail posture.
func (s *Settings) Cache(optFns ...modcache.Option) *modcache.Cache {
	opts := []modcache.Option{
		modcache.WithCompressionLevel(s.CompressionLevel),
	}
	if s.Directory != "" {
		opts = append(opts, modcache.WithDirectory(s.Directory))
	}
	if c, ok := compress.ByName(s.Compression); ok {
		opts = append(opts, modcache.WithCompression(c))
	}
	if c, ok := codec.ByName(s.Codec); ok {
		opts = append(opts, modcache.WithCodec(c))
	}
	opts = append(opts, optFns...)
	return modcache.New(s.Enabled, opts...)
}
