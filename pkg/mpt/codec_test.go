package mpt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNode(t *testing.T) {
	a := NewArena()
	lp := a.Append(NewLeafNode([]byte{0x01, 0x02}, []byte("value")))
	b := NewBranchNode()
	b.Children[5] = lp
	b.Children[7] = a.Append(NewLeafNode([]byte{0x03}, []byte("other")))
	bp := a.Append(b)
	ep := a.Append(NewExtensionNode([]byte{0x0A}, bp))

	t.Run("leaf", func(t *testing.T) {
		n, err := decodeNode(a.EncodedNode(lp))
		require.NoError(t, err)
		assert.Equal(t, LeafT, n.typ)
		assert.Equal(t, []byte{0x01, 0x02}, n.path)
		assert.Equal(t, []byte("value"), n.value)
	})
	t.Run("branch", func(t *testing.T) {
		n, err := decodeNode(a.EncodedNode(bp))
		require.NoError(t, err)
		assert.Equal(t, BranchT, n.typ)
		assert.Equal(t, a.Hash(lp), n.children[5])
		assert.True(t, n.children[0].Equals(a.Hash(EmptyPointer)))
	})
	t.Run("extension", func(t *testing.T) {
		n, err := decodeNode(a.EncodedNode(ep))
		require.NoError(t, err)
		assert.Equal(t, ExtensionT, n.typ)
		assert.Equal(t, []byte{0x0A}, n.path)
		assert.Equal(t, a.Hash(bp), n.children[0])
	})
	t.Run("invalid type", func(t *testing.T) {
		_, err := decodeNode([]byte{0xFF})
		require.Error(t, err)
	})
	t.Run("truncated", func(t *testing.T) {
		data := a.EncodedNode(bp)
		_, err := decodeNode(data[:len(data)-1])
		require.Error(t, err)
	})
}
