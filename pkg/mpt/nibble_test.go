package mpt

import (
	"testing"

	"github.com/statelayer/statetrie/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNibbles(t *testing.T) {
	assert.Equal(t, []byte{}, toNibbles([]byte{}))
	assert.Equal(t, []byte{0x0A, 0x0C}, toNibbles([]byte{0xAC}))
	assert.Equal(t, []byte{0x0F, 0x01, 0x00, 0x02}, toNibbles([]byte{0xF1, 0x02}))
}

func TestFromNibblesRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7, 32, MaxKeyLength} {
		key := random.Bytes(n)
		assert.Equal(t, key, fromNibbles(toNibbles(key)))
	}
}

func TestFromNibblesOddLength(t *testing.T) {
	require.Panics(t, func() { fromNibbles([]byte{0x01, 0x02, 0x03}) })
}

func TestConcat(t *testing.T) {
	s1 := []byte{0x01, 0x02}
	s2 := []byte{0x03}
	r := concat(s1, s2)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, r)

	// the result aliases neither of the inputs
	r[0] = 0x0F
	assert.Equal(t, []byte{0x01, 0x02}, s1)
}

func TestSplitPath(t *testing.T) {
	i, rest := splitPath([]byte{0x0A, 0x01, 0x02})
	assert.EqualValues(t, 0x0A, i)
	assert.Equal(t, []byte{0x01, 0x02}, rest)

	i, rest = splitPath([]byte{0x03})
	assert.EqualValues(t, 0x03, i)
	assert.Len(t, rest, 0)
}
