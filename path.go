package modcache

import "path/filepath"

// EntryPath resolves the on-disk location of a cache entry:
//
//	<dir>/<target-triple>/<name>-<version>[-<stamp>]/mod-<base64url(key)>[.d]
//
// The ".d" suffix is appended only when debug-info generation was requested;
// debug and non-debug builds of the same module are not interchangeable and
// must never alias. EntryPath is pure; it performs no I/O.
func EntryPath(dir string, key Key, target string, compiler Identity, debugInfo bool) string {
	filename := "mod-" + key.Filename()
	if debugInfo {
		filename += ".d"
	}
	return filepath.Join(dir, target, compiler.DirName(), filename)
}
