package modcache

import (
	"sync/atomic"
	"time"
)

// MissReason classifies why a load returned nothing.
type MissReason uint8

const (
	// MissDisabled means caching was off for this compile; no I/O happened.
	MissDisabled MissReason = iota
	// MissNotFound means no file existed at the resolved path.
	MissNotFound
	// MissReadError means the file existed but could not be read.
	MissReadError
	// MissCorrupt means the file failed container validation or decompression.
	MissCorrupt
	// MissDecode means the payload could not be deserialized.
	MissDecode
)

func (r MissReason) String() string {
	switch r {
	case MissDisabled:
		return "disabled"
	case MissNotFound:
		return "not-found"
	case MissReadError:
		return "read-error"
	case MissCorrupt:
		return "corrupt"
	case MissDecode:
		return "decode-error"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each load operation. reason is meaningful
	// only when hit is false.
	RecordLoad(hit bool, reason MissReason, duration time.Duration)

	// RecordStore is called after each store operation on an enabled entry.
	// bytes is the container size written; 0 when the store was abandoned.
	RecordStore(ok bool, bytes int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(bool, MissReason, time.Duration) {}
func (NoopMetricsCollector) RecordStore(bool, int, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Hits            atomic.Int64
	Misses          atomic.Int64
	CorruptMisses   atomic.Int64
	LoadTotalNanos  atomic.Int64
	StoreCount      atomic.Int64
	StoreErrors     atomic.Int64
	StoreBytes      atomic.Int64
	StoreTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(hit bool, reason MissReason, duration time.Duration) {
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.Hits.Add(1)
		return
	}
	b.Misses.Add(1)
	if reason == MissCorrupt || reason == MissDecode {
		b.CorruptMisses.Add(1)
	}
}

// RecordStore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStore(ok bool, bytes int, duration time.Duration) {
	b.StoreCount.Add(1)
	b.StoreTotalNanos.Add(duration.Nanoseconds())
	if ok {
		b.StoreBytes.Add(int64(bytes))
	} else {
		b.StoreErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Hits:          b.Hits.Load(),
		Misses:        b.Misses.Load(),
		CorruptMisses: b.CorruptMisses.Load(),
		LoadAvgNanos:  b.getAvgLoadNanos(),
		StoreCount:    b.StoreCount.Load(),
		StoreErrors:   b.StoreErrors.Load(),
		StoreBytes:    b.StoreBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.Hits.Load() + b.Misses.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Hits          int64
	Misses        int64
	CorruptMisses int64
	LoadAvgNanos  int64
	StoreCount    int64
	StoreErrors   int64
	StoreBytes    int64
}
