package mpt

// toNibbles mangles the path by splitting every byte into 2 nibbles.
func toNibbles(path []byte) []byte {
	result := make([]byte, len(path)*2)
	for i, b := range path {
		result[i*2] = b >> 4
		result[i*2+1] = b & 0x0F
	}
	return result
}

// fromNibbles performs an operation opposite to toNibbles. The path is
// expected to be in mangled format with an even number of nibbles.
func fromNibbles(path []byte) []byte {
	if len(path)%2 != 0 {
		panic("invalid path length")
	}
	result := make([]byte, len(path)/2)
	for i := range result {
		result[i] = path[2*i]<<4 + path[2*i+1]
	}
	return result
}

// concat returns a freshly allocated concatenation of two nibble runs. A new
// slice is always created so that the result never aliases a path that might
// be shared with other nodes.
func concat(s1, s2 []byte) []byte {
	r := make([]byte, len(s1)+len(s2))
	copy(r, s1)
	copy(r[len(s1):], s2)
	return r
}

// copySlice is a helper for copying slice if needed.
func copySlice(a []byte) []byte {
	b := make([]byte, len(a))
	copy(b, a)
	return b
}
