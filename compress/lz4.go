package compress

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4 compresses with LZ4 block compression. Faster than zstd at lower
// ratios; useful when the cache sits on fast local storage.
type LZ4 struct{}

// Block framing: LZ4 block compression can fail to shrink incompressible
// input (CompressBlock returns n == 0). A one-byte marker distinguishes a
// compressed block from raw passthrough bytes.
const (
	lz4BlockRaw        = 0
	lz4BlockCompressed = 1
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// Compress implements Compressor. Levels 1-9 select the high-compression
// match finder; 0 selects the default fast path.
func (LZ4) Compress(data []byte, level int) ([]byte, error) {
	buf := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	var (
		n   int
		err error
	)
	if level <= DefaultLevel {
		var c lz4.Compressor
		n, err = c.CompressBlock(data, buf[1:])
	} else {
		if level > len(lz4Levels) {
			level = len(lz4Levels)
		}
		c := lz4.CompressorHC{Level: lz4Levels[level-1]}
		n, err = c.CompressBlock(data, buf[1:])
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(data) {
		// Incompressible; store raw.
		out := make([]byte, 1+len(data))
		out[0] = lz4BlockRaw
		copy(out[1:], data)
		return out, nil
	}
	buf[0] = lz4BlockCompressed
	return buf[:1+n], nil
}

// Decompress implements Compressor.
func (LZ4) Decompress(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("lz4 decompress: empty block")
	}
	switch data[0] {
	case lz4BlockRaw:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])
		return out, nil
	case lz4BlockCompressed:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data[1:], out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("lz4 decompress: unknown block marker 0x%02x", data[0])
	}
}

// Name implements Compressor.
func (LZ4) Name() string { return "lz4" }
