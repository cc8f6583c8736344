package modcache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/modcache/artifact"
)

// Entry is the per-compilation cache handle. It is created once per
// module-compile attempt, is immutable, and is discarded after the attempt.
//
// The calling protocol is: build the Entry, try Load, and on a miss run the
// real compiler and hand the result to Store. An Entry with no resolved path
// (caching disabled, or the module refused to hash) performs no I/O at all.
type Entry struct {
	path  string // "" means caching is off for this compile
	key   Key    // zero when path is ""
	cache *Cache
}

// Entry resolves the cache location for one compile attempt. Key derivation
// failures (the module's own WriteContent erroring) disable caching for this
// compile rather than surfacing; degraded caching is never a compile error.
func (c *Cache) Entry(mod Module, bodies []FunctionBody, target string, compiler Identity, debugInfo bool) *Entry {
	e := &Entry{cache: c}
	if !c.enabled {
		return e
	}

	key, err := DeriveKey(mod, bodies)
	if err != nil {
		c.logger.warnThrottled("failed to hash module content; skipping cache for this compile",
			"error", err,
		)
		return e
	}

	e.key = key
	e.path = EntryPath(c.dir, key, target, compiler, debugInfo)
	c.logger.WithKey(key).WithTarget(target).Debug("cache entry resolved", "path", e.path)
	return e
}

// Key returns the derived cache key, or the zero Key when caching is off for
// this compile.
func (e *Entry) Key() Key { return e.key }

// Path returns the resolved entry path, or "" when caching is off for this
// compile.
func (e *Entry) Path() string { return e.path }

// Load returns the cached payload, if a valid one exists. It never fails:
// the only outcomes are found and not-found, and not-found is always safe to
// treat as "recompile". Confirmed-corrupt files (bad container, failed
// decompression or deserialization) are removed best-effort so they are not
// revalidated on every subsequent miss.
func (e *Entry) Load() (*artifact.Payload, bool) {
	start := time.Now()
	if e.path == "" {
		e.cache.metrics.RecordLoad(false, MissDisabled, time.Since(start))
		return nil, false
	}
	log := e.cache.logger

	data, err := os.ReadFile(e.path)
	if err != nil {
		reason := MissNotFound
		if !os.IsNotExist(err) {
			reason = MissReadError
			log.Debug("failed to read cache entry", "path", e.path, "error", err)
		}
		log.LogLoad(e.path, false, reason)
		e.cache.metrics.RecordLoad(false, reason, time.Since(start))
		return nil, false
	}

	raw, cdc, err := decodeContainer(data)
	if err != nil {
		log.warnThrottled("discarding corrupt cache entry",
			"path", e.path,
			"error", err,
		)
		e.removeCorrupt()
		log.LogLoad(e.path, false, MissCorrupt)
		e.cache.metrics.RecordLoad(false, MissCorrupt, time.Since(start))
		return nil, false
	}

	var payload artifact.Payload
	if err := cdc.Unmarshal(raw, &payload); err != nil {
		log.warnThrottled("failed to deserialize cache entry",
			"path", e.path,
			"codec", cdc.Name(),
			"error", err,
		)
		e.removeCorrupt()
		log.LogLoad(e.path, false, MissDecode)
		e.cache.metrics.RecordLoad(false, MissDecode, time.Since(start))
		return nil, false
	}

	log.LogLoad(e.path, true, 0)
	e.cache.metrics.RecordLoad(true, 0, time.Since(start))
	return &payload, true
}

// Store writes the payload to the resolved path. It never fails from the
// caller's perspective: serialization, compression and write errors all
// degrade to "nothing cached this time" with a logged warning. Correctness
// of compilation does not depend on the cache being writable.
func (e *Entry) Store(payload *artifact.Payload) {
	if e.path == "" {
		return
	}
	start := time.Now()
	log := e.cache.logger

	raw, err := e.cache.codec.Marshal(payload)
	if err != nil {
		log.warnThrottled("failed to serialize compiled module for caching",
			"path", e.path,
			"error", err,
		)
		e.cache.metrics.RecordStore(false, 0, time.Since(start))
		return
	}

	compressed, err := e.cache.compressor.Compress(raw, e.cache.compressionLevel)
	if err != nil {
		log.warnThrottled("failed to compress compiled module for caching",
			"path", e.path,
			"error", err,
		)
		e.cache.metrics.RecordStore(false, 0, time.Since(start))
		return
	}

	data := encodeContainer(e.cache.compressor.Name(), e.cache.codec.Name(), len(raw), compressed)
	if err := e.cache.writeFileAtomic(e.path, data); err != nil {
		log.LogStore(e.path, 0, err)
		e.cache.metrics.RecordStore(false, 0, time.Since(start))
		return
	}

	log.LogStore(e.path, len(data), nil)
	e.cache.metrics.RecordStore(true, len(data), time.Since(start))
}

func (e *Entry) removeCorrupt() {
	if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
		e.cache.logger.Debug("failed to remove corrupt cache entry",
			"path", e.path,
			"error", err,
		)
	}
}

// writeFileAtomic writes data next to path and renames it into place, so a
// concurrent Load never observes a truncated entry as valid. Syscalls are
// ordered for the common case: the temp file is created first, and only if
// that fails is the parent tree created and the write retried once.
func (c *Cache) writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		// First write for this target/compiler pair: the tree does not
		// exist yet. MkdirAll treats "already exists" as success, so
		// concurrent writers racing on creation all proceed.
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		tmp, err = os.CreateTemp(dir, base+".tmp-*")
		if err != nil {
			return err
		}
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName == "" {
			return
		}
		_ = tmp.Close()
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			c.logger.Debug("failed to remove temp cache file",
				"path", tmpName,
				"error", err,
			)
		}
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0o644)

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomically replace the target. Losing this race to a concurrent writer
	// is harmless: both payloads came from deterministic compilation of
	// identical inputs.
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}
