package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	a.FillBytes(bufA)
	b.FillBytes(bufB)
	assert.Equal(t, bufA, bufB)

	a.Reset()
	reset := make([]byte, 64)
	a.FillBytes(reset)
	assert.Equal(t, bufA, reset)
}

func TestRandomPayloadDeterminism(t *testing.T) {
	p1 := RandomPayload(NewRNG(42), 3)
	p2 := RandomPayload(NewRNG(42), 3)
	require.Equal(t, p1, p2)
	assert.Len(t, p1.Functions, 3)
}

func TestSectionModuleOrderIndependence(t *testing.T) {
	a := &SectionModule{Sections: map[string][]byte{}}
	for _, name := range []string{"code", "data", "types"} {
		a.Sections[name] = []byte(name)
	}
	b := &SectionModule{Sections: map[string][]byte{}}
	for _, name := range []string{"types", "code", "data"} {
		b.Sections[name] = []byte(name)
	}

	var bufA, bufB bytes.Buffer
	require.NoError(t, a.WriteContent(&bufA))
	require.NoError(t, b.WriteContent(&bufB))
	assert.Equal(t, bufA.Bytes(), bufB.Bytes())
}
