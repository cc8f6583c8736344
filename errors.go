package modcache

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic indicates the file does not start with a container header.
	ErrBadMagic = errors.New("bad container magic")
	// ErrBadVersion indicates an unsupported container format version.
	ErrBadVersion = errors.New("unsupported container version")
	// ErrTruncated indicates the file is shorter than its header claims.
	ErrTruncated = errors.New("truncated container")
	// ErrUnknownCompressor indicates a compressor name this build does not know.
	ErrUnknownCompressor = errors.New("unknown compressor")
	// ErrUnknownCodec indicates a codec name this build does not know.
	ErrUnknownCodec = errors.New("unknown codec")
	// ErrOversized indicates a header size field beyond what a cache entry
	// may occupy.
	ErrOversized = errors.New("oversized container")
)

// ErrChecksumMismatch indicates the container bytes do not match the
// checksum recorded in the header. The checksum covers the header (with
// the checksum field zeroed) and the compressed payload. Typical for entries caught
// mid-write by a concurrent reader.
type ErrChecksumMismatch struct {
	Want uint64
	Got  uint64
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("checksum mismatch: header %016x, payload %016x", e.Want, e.Got)
}

// ErrSizeMismatch indicates a size recorded in the container header does not
// match the observed bytes.
type ErrSizeMismatch struct {
	Field string // "compressed" or "raw"
	Want  uint64
	Got   uint64
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("%s size mismatch: header %d, observed %d", e.Field, e.Want, e.Got)
}
