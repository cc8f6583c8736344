// Package build exposes build-time version information.
//
// The variables are set via -ldflags at release time, e.g.:
//
//	go build -ldflags "-X github.com/hupe1980/modcache/internal/build.Version=v1.2.3"
package build

var (
	// Version is the release version, or "dev" for local builds.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
