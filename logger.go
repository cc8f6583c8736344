package modcache

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with cache-specific context.
// This provides structured logging with consistent field names.
//
// Warning-level helpers are rate-limited: a persistently failing cache
// directory degrades every compile to a miss, and without a throttle each of
// those misses would emit a warning into the compiler's output.
type Logger struct {
	*slog.Logger
	warnLimit *rate.Limiter // nil disables throttling
}

func defaultWarnLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 4)
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger:    slog.New(handler),
		warnLimit: defaultWarnLimiter(),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger:    slog.New(handler),
		warnLimit: defaultWarnLimiter(),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger:    slog.New(handler),
		warnLimit: defaultWarnLimiter(),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKey adds the cache key field to the logger.
func (l *Logger) WithKey(key Key) *Logger {
	return &Logger{
		Logger:    l.Logger.With("key", key.String()),
		warnLimit: l.warnLimit,
	}
}

// WithPath adds the resolved entry path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("path", path),
		warnLimit: l.warnLimit,
	}
}

// WithTarget adds the target-triple field to the logger.
func (l *Logger) WithTarget(target string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("target", target),
		warnLimit: l.warnLimit,
	}
}

// warnThrottled logs at warning level, subject to the rate limit.
func (l *Logger) warnThrottled(msg string, args ...any) {
	if l.warnLimit != nil && !l.warnLimit.Allow() {
		return
	}
	l.Warn(msg, args...)
}

// LogInit logs the outcome of cache construction.
func (l *Logger) LogInit(enabled bool, dir string, compressionLevel int) {
	if enabled {
		l.Debug("cache initialized",
			"dir", dir,
			"compression_level", compressionLevel,
		)
	} else {
		l.Debug("cache disabled")
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(path string, hit bool, reason MissReason) {
	if hit {
		l.Debug("cache hit", "path", path)
	} else {
		l.Debug("cache miss", "path", path, "reason", reason.String())
	}
}

// LogStore logs a store operation.
func (l *Logger) LogStore(path string, bytes int, err error) {
	if err != nil {
		l.warnThrottled("failed to store cache entry",
			"path", path,
			"error", err,
		)
	} else {
		l.Debug("cache entry stored",
			"path", path,
			"bytes", bytes,
		)
	}
}
