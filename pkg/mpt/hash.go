package mpt

import (
	"fmt"

	"github.com/statelayer/statetrie/pkg/io"
	"github.com/statelayer/statetrie/pkg/util"
	"golang.org/x/crypto/sha3"
)

// Hash returns the Keccak-256 digest of the subtree rooted at p. Digests of
// the empty subtree are zero. Results are memoized in the arena, records are
// immutable so the cache never goes stale.
func (a *Arena) Hash(p Pointer) util.Uint256 {
	if p == EmptyPointer {
		return util.Uint256{}
	}
	if h, ok := a.hashes[p]; ok {
		return h
	}
	h := hashBytes(a.EncodedNode(p))
	a.hashes[p] = h
	return h
}

// EncodedNode returns the canonical binary form of the node record at p with
// children referenced by their subtree digests. It is both the hash preimage
// and the record format of the backing store.
func (a *Arena) EncodedNode(p Pointer) []byte {
	buf := io.NewBufBinWriter()
	a.encodeNode(p, buf.BinWriter)
	if buf.Err != nil {
		panic(buf.Err)
	}
	return buf.Bytes()
}

func (a *Arena) encodeNode(p Pointer, w *io.BinWriter) {
	switch n := a.At(p).(type) {
	case *BranchNode:
		w.WriteB(byte(BranchT))
		for i := range n.Children {
			a.Hash(n.Children[i]).EncodeBinary(w)
		}
	case *ExtensionNode:
		w.WriteB(byte(ExtensionT))
		w.WriteVarBytes(n.path)
		a.Hash(n.next).EncodeBinary(w)
	case *LeafNode:
		w.WriteB(byte(LeafT))
		w.WriteVarBytes(n.path)
		w.WriteVarBytes(n.value)
	default:
		panic(fmt.Sprintf("can't encode node type: %T", n))
	}
}

func hashBytes(b []byte) util.Uint256 {
	var res util.Uint256
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	h.Sum(res[:0])
	return res
}
