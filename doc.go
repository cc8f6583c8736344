// Package modcache provides a content-addressed, on-disk cache for compiled
// module artifacts.
//
// Translating a module's intermediate representation into machine code is
// expensive and deterministic: the same module bytes, target, compiler and
// compiler build always produce the same output. modcache stores that output
// keyed by a SHA-256 digest of the module's compile-relevant content, so a
// later compile of the same module loads the result instead of recompiling.
//
// # Quick Start
//
//	cache := modcache.New(true, modcache.WithDirectory("/var/cache/mycompiler"))
//	compiler := modcache.NewIdentity("mycompiler", "1.4.0")
//
//	entry := cache.Entry(mod, bodies, "x86_64-unknown-linux-gnu", compiler, false)
//	if payload, ok := entry.Load(); ok {
//	    return payload // cache hit, skip compilation
//	}
//	payload := compileForReal(mod, bodies)
//	entry.Store(payload)
//
// # Failure Posture
//
// The cache is never the reason a compilation fails. Configuration problems
// degrade to a disabled cache; unreadable, corrupt or stale entries are
// misses; store failures leave nothing cached. Every failure is absorbed
// with at most a warning log line. The only panics are the two documented
// programming errors: installing the process-wide default twice, and reading
// Directory or CompressionLevel on a disabled cache.
//
// # Concurrency
//
// A Cache is immutable and shared freely across goroutines. Concurrent
// processes compiling the same module may both miss and both store; writes
// are temp-file-and-rename, so readers see either the old entry, the new
// entry, or nothing — never a torn file.
//
// # On-Disk Layout
//
//	<root>/<target-triple>/<name>-<version>[-<stamp>]/mod-<base64url(key)>[.d]
//
// Entry files are self-describing containers: a fixed header records the
// compressor, codec, sizes and a checksum, and anything that fails
// validation is treated as a miss and removed.
package modcache
