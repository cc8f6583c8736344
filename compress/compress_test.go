package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"zstd", "lz4", "none"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("gzip")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	// Repetitive data compresses; mixing in structure catches framing bugs.
	data := bytes.Repeat([]byte("\x00asm\x01\x00\x00\x00 machine code bytes "), 256)

	tests := []struct {
		name   string
		c      Compressor
		levels []int
	}{
		{"zstd", Zstd{}, []int{0, 1, 3, 19}},
		{"lz4", LZ4{}, []int{0, 1, 5, 9}},
		{"none", None{}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, level := range tt.levels {
				compressed, err := tt.c.Compress(data, level)
				require.NoError(t, err)

				out, err := tt.c.Decompress(compressed, len(data))
				require.NoError(t, err)
				assert.Equal(t, data, out, "level %d", level)
			}
		})
	}
}

func TestRoundTripEmpty(t *testing.T) {
	for _, name := range []string{"zstd", "lz4", "none"} {
		c, _ := ByName(name)
		compressed, err := c.Compress(nil, DefaultLevel)
		require.NoError(t, err, name)

		out, err := c.Decompress(compressed, 0)
		require.NoError(t, err, name)
		assert.Empty(t, out, name)
	}
}

func TestLZ4Incompressible(t *testing.T) {
	// Random bytes defeat LZ4's match finder, forcing the raw-block path.
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 4096)
	rng.Read(data)

	compressed, err := LZ4{}.Compress(data, DefaultLevel)
	require.NoError(t, err)
	assert.Equal(t, byte(lz4BlockRaw), compressed[0])

	out, err := LZ4{}.Decompress(compressed, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestLZ4UnknownMarker(t *testing.T) {
	_, err := LZ4{}.Decompress([]byte{0xff, 0x01, 0x02}, 16)
	assert.Error(t, err)
}

func TestZstdRejectsGarbage(t *testing.T) {
	_, err := Zstd{}.Decompress([]byte("definitely not a zstd frame"), 64)
	assert.Error(t, err)
}
