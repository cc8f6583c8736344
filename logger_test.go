package modcache

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.WithKey(Key("sha256:abc")).WithTarget("x86_64-unknown-linux-gnu").Debug("resolved")

	out := buf.String()
	assert.Contains(t, out, "key=sha256:abc")
	assert.Contains(t, out, "target=x86_64-unknown-linux-gnu")
}

// A persistently failing cache directory must not flood the caller's
// stderr: warnings beyond the burst are dropped.
func TestLoggerWarnThrottle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	for i := 0; i < 100; i++ {
		logger.warnThrottled("cache directory unwritable")
	}

	warnings := strings.Count(buf.String(), "cache directory unwritable")
	require.Positive(t, warnings)
	assert.Less(t, warnings, 100)
}

func TestNoopLoggerDiscards(t *testing.T) {
	logger := NoopLogger()
	// Must not panic, and the throttle must stay inert.
	logger.warnThrottled("dropped")
	logger.WithPath("/x").Info("dropped")
}
