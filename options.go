package modcache

import (
	"github.com/hupe1980/modcache/codec"
	"github.com/hupe1980/modcache/compress"
)

type options struct {
	dir              string
	compressionLevel int
	compressor       compress.Compressor
	codec            codec.Codec
	logger           *Logger
	metrics          MetricsCollector
}

// Option configures cache construction.
type Option func(*options)

func defaultOptions() options {
	return options{
		compressionLevel: compress.DefaultLevel,
		compressor:       compress.Default,
		codec:            codec.Default,
		logger:           NewLogger(nil),
		metrics:          NoopMetricsCollector{},
	}
}

// WithDirectory sets the cache root directory. When omitted, the platform's
// user cache directory is used (os.UserCacheDir()/modcache).
func WithDirectory(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithCompressionLevel sets the compression level passed to the compressor.
// Zero means the algorithm's default level.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.compressionLevel = level
	}
}

// WithCompression configures the compressor used for new entries.
//
// If nil is passed, compress.Default is used. Existing entries written with
// other compressors still load; containers are self-describing.
func WithCompression(c compress.Compressor) Option {
	return func(o *options) {
		if c == nil {
			c = compress.Default
		}
		o.compressor = c
	}
}

// WithCodec configures the codec used for new entries.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures the logger.
//
// If nil is passed, the default stderr text logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NewLogger(nil)
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
