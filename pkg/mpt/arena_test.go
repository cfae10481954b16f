package mpt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAppend(t *testing.T) {
	a := NewArena()
	require.EqualValues(t, 1, a.Size())

	l := NewLeafNode([]byte{0x01}, []byte("value"))
	expected := a.Size()
	p := a.Append(l)
	assert.Equal(t, expected, p)
	assert.Equal(t, Node(l), a.At(p))
	require.EqualValues(t, 2, a.Size())
}

func TestArenaEmptySentinel(t *testing.T) {
	a := NewArena()
	assert.Equal(t, EmptyT, a.At(EmptyPointer).Type())

	require.Panics(t, func() { a.Append(EmptyNode{}) })
	require.Panics(t, func() { a.Append(nil) })
}

func TestArenaInvalidPointer(t *testing.T) {
	a := NewArena()
	require.Panics(t, func() { a.At(42) })
}
