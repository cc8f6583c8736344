package modcache

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/modcache/testutil"
)

var testModule = BytesModule("\x00asm\x01\x00\x00\x00")

func testBodies() []FunctionBody {
	return []FunctionBody{
		{Code: []byte{0x01, 0x0b}, Offset: 40},
		{Code: []byte{0x20, 0x00, 0x0b}, Offset: 48},
	}
}

func TestDeriveKeyDeterminism(t *testing.T) {
	k1, err := DeriveKey(testModule, testBodies())
	require.NoError(t, err)
	k2, err := DeriveKey(testModule, testBodies())
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.False(t, k1.IsZero())
}

// Logically-identical modules must hash identically even when their
// in-memory maps were populated in different orders.
func TestDeriveKeyOrderIndependence(t *testing.T) {
	a := &testutil.SectionModule{Sections: map[string][]byte{}}
	for _, name := range []string{"code", "data", "types"} {
		a.Sections[name] = []byte(name + "-content")
	}
	b := &testutil.SectionModule{Sections: map[string][]byte{}}
	for _, name := range []string{"types", "data", "code"} {
		b.Sections[name] = []byte(name + "-content")
	}

	ka, err := DeriveKey(a, testBodies())
	require.NoError(t, err)
	kb, err := DeriveKey(b, testBodies())
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
}

func TestDeriveKeySensitivity(t *testing.T) {
	base, err := DeriveKey(testModule, testBodies())
	require.NoError(t, err)

	// 1. Changing a body byte changes the key.
	bodies := testBodies()
	bodies[1].Code[0] ^= 0xff
	changed, err := DeriveKey(testModule, bodies)
	require.NoError(t, err)
	assert.NotEqual(t, base, changed)

	// 2. Changing module content changes the key.
	other, err := DeriveKey(BytesModule("\x00asm\x02\x00\x00\x00"), testBodies())
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	// 3. Body offsets are diagnostics metadata, not compile-relevant.
	shifted := testBodies()
	shifted[0].Offset = 9000
	shifted[1].Offset = 9001
	same, err := DeriveKey(testModule, shifted)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	// 4. Body boundaries must not alias: [ab][c] != [a][bc].
	k1, err := DeriveKey(testModule, []FunctionBody{{Code: []byte("ab")}, {Code: []byte("c")}})
	require.NoError(t, err)
	k2, err := DeriveKey(testModule, []FunctionBody{{Code: []byte("a")}, {Code: []byte("bc")}})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

type failingModule struct{}

func (failingModule) WriteContent(io.Writer) error { return errors.New("unreadable section") }

func TestDeriveKeyModuleError(t *testing.T) {
	_, err := DeriveKey(failingModule{}, nil)
	assert.Error(t, err)
}

func TestKeyFilename(t *testing.T) {
	key, err := DeriveKey(testModule, nil)
	require.NoError(t, err)

	filename := key.Filename()
	// 32 digest bytes render to 43 base64 characters, unpadded.
	assert.Len(t, filename, 43)
	assert.NotContains(t, filename, "/")
	assert.NotContains(t, filename, "+")
	assert.NotContains(t, filename, "=")

	assert.True(t, strings.HasPrefix(key.String(), "sha256:"))
	assert.Empty(t, Key("").Filename())
}
