package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses with zstandard. It is the default: good ratios on
// serialized machine code at low CPU cost.
type Zstd struct{}

// Encoder/decoder pools, indexed by encoder level. Encoders are bound to a
// level at construction time, so each mapped level gets its own pool.
var (
	zstdEncoderPools [zstd.SpeedBestCompression + 1]sync.Pool
	zstdDecoderPool  sync.Pool
)

func getZstdEncoder(level zstd.EncoderLevel) *zstd.Encoder {
	if v := zstdEncoderPools[level].Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	return enc
}

func putZstdEncoder(level zstd.EncoderLevel, enc *zstd.Encoder) {
	zstdEncoderPools[level].Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Compress implements Compressor. Levels follow the zstd convention
// (1 fastest, 22 best); 0 selects the default.
func (Zstd) Compress(data []byte, level int) ([]byte, error) {
	el := zstd.SpeedDefault
	if level != DefaultLevel {
		el = zstd.EncoderLevelFromZstd(level)
	}
	enc := getZstdEncoder(el)
	defer putZstdEncoder(el, enc)
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress implements Compressor.
func (Zstd) Decompress(data []byte, rawSize int) ([]byte, error) {
	dec := getZstdDecoder()
	defer putZstdDecoder(dec)
	out, err := dec.DecodeAll(data, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

// Name implements Compressor.
func (Zstd) Name() string { return "zstd" }
