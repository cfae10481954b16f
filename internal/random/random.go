// Package random contains random data generation helpers for tests.
package random

import (
	"math/rand"

	"github.com/statelayer/statetrie/pkg/util"
)

// Int returns a random integer in [min,max).
func Int(min, max int) int {
	return min + rand.Intn(max-min)
}

// Bytes returns a random byte slice of the specified length.
func Bytes(n int) []byte {
	b := make([]byte, n)
	Fill(b)
	return b
}

// Fill fills the buffer with random bytes.
func Fill(buf []byte) {
	// Rand.Read() is documented to never return an error.
	_, _ = rand.Read(buf)
}

// Uint256 returns a random Uint256.
func Uint256() util.Uint256 {
	str := Bytes(util.Uint256Size)
	val, _ := util.Uint256DecodeBytes(str)
	return val
}
