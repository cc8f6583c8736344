package modcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	m.RecordLoad(true, 0, 10*time.Millisecond)
	m.RecordLoad(false, MissNotFound, 10*time.Millisecond)
	m.RecordLoad(false, MissCorrupt, 10*time.Millisecond)
	m.RecordStore(true, 512, time.Millisecond)
	m.RecordStore(false, 0, time.Millisecond)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(1), stats.CorruptMisses)
	assert.Equal(t, int64(2), stats.StoreCount)
	assert.Equal(t, int64(1), stats.StoreErrors)
	assert.Equal(t, int64(512), stats.StoreBytes)
	assert.Positive(t, stats.LoadAvgNanos)
}

func TestMissReasonString(t *testing.T) {
	assert.Equal(t, "disabled", MissDisabled.String())
	assert.Equal(t, "not-found", MissNotFound.String())
	assert.Equal(t, "read-error", MissReadError.String())
	assert.Equal(t, "corrupt", MissCorrupt.String())
	assert.Equal(t, "decode-error", MissDecode.String())
	assert.Equal(t, "unknown", MissReason(99).String())
}
