package modcache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/modcache/codec"
	"github.com/hupe1980/modcache/compress"
)

const (
	// containerMagic identifies cache entry files (ASCII: "MCH0").
	containerMagic = 0x4D434830
	// containerVersion is the current container format version.
	containerVersion = 1

	containerHeaderSize = 64
	// containerChecksumOffset is the byte offset of the Checksum field.
	containerChecksumOffset = 48

	compressorNameLen = 8
	codecNameLen      = 16

	// maxContainerPayload bounds both size fields. A header can lie about
	// sizes without lying about anything the compressed bytes reveal, and a
	// size field must never turn into a pathological allocation.
	maxContainerPayload = math.MaxInt32
)

// containerHeader is the 64-byte little-endian header at the start of every
// cache entry file. The compressor and codec names make the format
// self-describing: readers select implementations by name and reject
// anything they do not recognize. The checksum covers the entire file with
// the checksum field itself zeroed, so a flipped bit anywhere — header
// fields included — is a deterministic miss.
type containerHeader struct {
	Magic      uint32
	Version    uint32
	Compressor [compressorNameLen]byte // NUL-padded
	Codec      [codecNameLen]byte      // NUL-padded
	RawSize    uint64                  // uncompressed payload length
	CompSize   uint64                  // compressed payload length
	Checksum   uint64                  // xxhash64, see containerChecksum
	Reserved   [8]byte
}

func packName(dst []byte, name string) {
	// Names longer than the field are a bug in a built-in; truncation would
	// silently alias, so refuse loudly.
	if len(name) > len(dst) {
		panic(fmt.Sprintf("modcache: name %q exceeds %d-byte header field", name, len(dst)))
	}
	copy(dst, name)
}

func unpackName(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return string(src)
}

// containerChecksum hashes a whole container file with the checksum field
// treated as zero.
func containerChecksum(data []byte) uint64 {
	var zero [8]byte
	h := xxhash.New()
	_, _ = h.Write(data[:containerChecksumOffset])
	_, _ = h.Write(zero[:])
	_, _ = h.Write(data[containerChecksumOffset+8:])
	return h.Sum64()
}

// encodeContainer frames compressed codec output into a cache entry file.
func encodeContainer(compressorName, codecName string, rawSize int, compressed []byte) []byte {
	hdr := containerHeader{
		Magic:    containerMagic,
		Version:  containerVersion,
		RawSize:  uint64(rawSize),
		CompSize: uint64(len(compressed)),
	}
	packName(hdr.Compressor[:], compressorName)
	packName(hdr.Codec[:], codecName)

	buf := bytes.NewBuffer(make([]byte, 0, containerHeaderSize+len(compressed)))
	_ = binary.Write(buf, binary.LittleEndian, &hdr) // bytes.Buffer writes cannot fail
	buf.Write(compressed)

	// The checksum field is still zero here; patch it in last.
	data := buf.Bytes()
	binary.LittleEndian.PutUint64(data[containerChecksumOffset:], containerChecksum(data))
	return data
}

// decodeContainer validates and unpacks a cache entry file, returning the
// decompressed codec output and the codec that wrote it. Every validation
// failure maps to a cache miss at the caller; no header value reaches an
// allocation or a decompressor before it has been bounded and checksummed.
func decodeContainer(data []byte) ([]byte, codec.Codec, error) {
	if len(data) < containerHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d byte file", ErrTruncated, len(data))
	}

	var hdr containerHeader
	if err := binary.Read(bytes.NewReader(data[:containerHeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, nil, err
	}
	if hdr.Magic != containerMagic {
		return nil, nil, fmt.Errorf("%w: got 0x%08x", ErrBadMagic, hdr.Magic)
	}
	if hdr.Version != containerVersion {
		return nil, nil, fmt.Errorf("%w: got %d", ErrBadVersion, hdr.Version)
	}
	if sum := containerChecksum(data); sum != hdr.Checksum {
		return nil, nil, &ErrChecksumMismatch{Want: hdr.Checksum, Got: sum}
	}

	compName := unpackName(hdr.Compressor[:])
	comp, ok := compress.ByName(compName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCompressor, compName)
	}
	codecName := unpackName(hdr.Codec[:])
	cdc, ok := codec.ByName(codecName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	// Bound the size fields before either is trusted for an allocation.
	// The checksum already rejects accidental corruption; the ceiling
	// rejects a consistently-checksummed file that still claims an
	// impossible size.
	if hdr.RawSize > maxContainerPayload {
		return nil, nil, fmt.Errorf("%w: raw size %d", ErrOversized, hdr.RawSize)
	}
	if hdr.CompSize > maxContainerPayload {
		return nil, nil, fmt.Errorf("%w: compressed size %d", ErrOversized, hdr.CompSize)
	}

	body := data[containerHeaderSize:]
	if uint64(len(body)) != hdr.CompSize {
		return nil, nil, &ErrSizeMismatch{Field: "compressed", Want: hdr.CompSize, Got: uint64(len(body))}
	}

	raw, err := comp.Decompress(body, int(hdr.RawSize))
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(raw)) != hdr.RawSize {
		return nil, nil, &ErrSizeMismatch{Field: "raw", Want: hdr.RawSize, Got: uint64(len(raw))}
	}
	return raw, cdc, nil
}
