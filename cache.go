package modcache

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hupe1980/modcache/codec"
	"github.com/hupe1980/modcache/compress"
)

// Cache holds the resolved cache configuration. It is immutable after New
// and safe for concurrent use from any number of compiling goroutines.
//
// A Cache is constructed once at process start and passed into every Entry;
// there is no hidden global state. Applications that want a process-wide
// instance can opt in via SetDefault/Default.
type Cache struct {
	enabled          bool
	dir              string // canonical absolute path; "" when disabled
	compressionLevel int
	compressor       compress.Compressor
	codec            codec.Codec
	logger           *Logger
	metrics          MetricsCollector
}

// New resolves a cache configuration. It never fails: the cache must never
// be the reason a compilation fails, so every resolution problem (no usable
// default directory, directory creation or canonicalization failure)
// degrades to a disabled cache with a logged warning.
//
// With enabled=false the options still apply, but no directory is resolved
// and every Entry built from the cache is inert.
func New(enabled bool, optFns ...Option) *Cache {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Cache{
		compressionLevel: opts.compressionLevel,
		compressor:       opts.compressor,
		codec:            opts.codec,
		logger:           opts.logger,
		metrics:          opts.metrics,
	}
	if !enabled {
		c.logger.LogInit(false, "", 0)
		return c
	}

	dir := opts.dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			c.logger.warnThrottled("cache directory not specified and no user cache directory; disabling cache",
				"error", err,
			)
			return c
		}
		dir = filepath.Join(base, "modcache")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.logger.warnThrottled("failed to create cache directory; disabling cache",
			"dir", dir,
			"error", err,
		)
		return c
	}

	abs, err := filepath.Abs(dir)
	if err == nil {
		abs, err = filepath.EvalSymlinks(abs)
	}
	if err != nil {
		c.logger.warnThrottled("failed to canonicalize cache directory; disabling cache",
			"dir", dir,
			"error", err,
		)
		return c
	}

	c.enabled = true
	c.dir = abs
	c.logger.LogInit(true, abs, c.compressionLevel)
	return c
}

// Disabled returns a cache that is off: every Entry it builds is inert.
// This is the documented default policy for applications that never resolve
// a cache configuration of their own.
func Disabled() *Cache {
	return New(false, WithLogger(NoopLogger()))
}

// Enabled reports whether the cache resolved to a usable directory.
func (c *Cache) Enabled() bool { return c.enabled }

// Directory returns the canonical cache root.
//
// Calling Directory on a disabled cache is a programming error and panics;
// check Enabled first.
func (c *Cache) Directory() string {
	if !c.enabled {
		panic("modcache: Directory called on disabled cache")
	}
	return c.dir
}

// CompressionLevel returns the configured compression level.
//
// Calling CompressionLevel on a disabled cache is a programming error and
// panics; check Enabled first.
func (c *Cache) CompressionLevel() int {
	if !c.enabled {
		panic("modcache: CompressionLevel called on disabled cache")
	}
	return c.compressionLevel
}

// Compression returns the compressor used for new entries.
func (c *Cache) Compression() compress.Compressor { return c.compressor }

// Codec returns the codec used for new entries.
func (c *Cache) Codec() codec.Codec { return c.codec }

// The process-wide default registry. The pointer freezes exactly once: by
// the first SetDefault, or implicitly to Disabled() by the first Default
// read. Both paths are CAS-based so concurrent first uses can never observe
// two different frozen values.
var (
	defaultCache     atomic.Pointer[Cache]
	defaultInstalled atomic.Bool
)

// SetDefault installs c as the process-wide default cache. It must be called
// at most once, and before any Default read; violating either rule is a
// programming error and panics.
func SetDefault(c *Cache) {
	if c == nil {
		panic("modcache: SetDefault called with nil cache")
	}
	if !defaultInstalled.CompareAndSwap(false, true) {
		panic("modcache: SetDefault called more than once")
	}
	if !defaultCache.CompareAndSwap(nil, c) {
		panic("modcache: SetDefault called after Default already froze a disabled cache")
	}
}

// Default returns the process-wide default cache. If SetDefault was never
// called, the first read freezes a disabled cache: not everyone knows about
// the cache system (tests in particular), so the default is cache absent.
func Default() *Cache {
	if c := defaultCache.Load(); c != nil {
		return c
	}
	defaultCache.CompareAndSwap(nil, Disabled())
	return defaultCache.Load()
}
