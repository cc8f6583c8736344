// Package compress centralizes the byte-stream compressors used for cache
// containers.
//
// Compressor selection is recorded in every container header, so a cache
// directory may hold entries written with different algorithms side by side.
// Reading selects the compressor by its stable name.
package compress

// DefaultLevel is the sentinel meaning "use the algorithm's default level".
const DefaultLevel = 0

// Compressor compresses and decompresses byte slices.
// Implementations must be safe for concurrent use.
type Compressor interface {
	// Compress returns the compressed form of data at the given level.
	// Level 0 selects the algorithm's default.
	Compress(data []byte, level int) ([]byte, error)

	// Decompress reverses Compress. rawSize is the expected size of the
	// decompressed output, taken from the container header; implementations
	// may use it for allocation and must not return more bytes than it.
	Decompress(data []byte, rawSize int) ([]byte, error)

	Name() string
}

// ByName returns a built-in compressor by its stable name.
//
// This is used by the self-describing container format, which stores the
// compressor name in its header.
func ByName(name string) (Compressor, bool) {
	switch name {
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	case "none":
		return None{}, true
	default:
		return nil, false
	}
}

// Default is the compressor used when none is configured.
var Default Compressor = Zstd{}
