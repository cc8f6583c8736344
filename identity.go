package modcache

import (
	"fmt"
	"os"
	"sync"
)

// Identity names the compiler that produced a cached payload. It is folded
// into the entry path, so changing compiler version (or, for dev builds, the
// compiler binary itself) invalidates prior entries without touching them.
type Identity struct {
	Name       string // e.g. "ref-compiler"
	Version    string // release version or VCS revision
	BuildStamp string // optional; set for non-release builds
}

// NewIdentity returns a release-build identity.
func NewIdentity(name, version string) Identity {
	return Identity{Name: name, Version: version}
}

// DevIdentity returns an identity stamped with the running executable's
// modification time. Development builds reuse version strings across
// rebuilds; the stamp keeps their stale cache entries from being loaded.
func DevIdentity(name, version string) Identity {
	return Identity{Name: name, Version: version, BuildStamp: SelfBuildStamp()}
}

// DirName renders the identity as a single path segment:
// "<name>-<version>" or "<name>-<version>-<stamp>".
func (id Identity) DirName() string {
	if id.BuildStamp != "" {
		return fmt.Sprintf("%s-%s-%s", id.Name, id.Version, id.BuildStamp)
	}
	return fmt.Sprintf("%s-%s", id.Name, id.Version)
}

var selfBuildStamp = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		return "no-mtime"
	}
	info, err := os.Stat(exe)
	if err != nil {
		return "no-mtime"
	}
	return fmt.Sprintf("%d", info.ModTime().UnixMilli())
})

// SelfBuildStamp returns the running executable's modification time in unix
// milliseconds, or "no-mtime" if it cannot be determined. The value is
// computed once per process.
func SelfBuildStamp() string { return selfBuildStamp() }
