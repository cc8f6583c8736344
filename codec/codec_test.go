package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("gob")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	type payload struct {
		Body   []byte            `json:"body"`
		Ranges map[uint32][]int  `json:"ranges"`
		Names  map[string]string `json:"names"`
	}

	in := payload{
		Body:   []byte{0x48, 0x89, 0xe5, 0xc3},
		Ranges: map[uint32][]int{7: {1, 2}, 3: {9}},
		Names:  map[string]string{"b": "2", "a": "1"},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		data, err := c.Marshal(in)
		require.NoError(t, err, c.Name())

		var out payload
		require.NoError(t, c.Unmarshal(data, &out), c.Name())
		assert.Equal(t, in, out, c.Name())
	}
}

// Both codecs must render identical bytes: containers record only the codec
// name, and logically-equal payloads must not differ by encoder choice.
func TestStableEncoding(t *testing.T) {
	in := map[uint32][]uint32{10: {1}, 2: {2}, 30: {3}}

	a, err := (JSON{}).Marshal(in)
	require.NoError(t, err)
	b, err := (GoJSON{}).Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "go-json", Default.Name())
}
