/*
Package bitint provides the power-of-two helpers used to size FFT buffers.

The spectral engine zero-pads every analysis window to the next power of two
before running the radix-2 transform, so these helpers sit on the path of
every spectrum computation and must not allocate.

Usage:

	// Window of 1000 visible samples is padded to 1024 points
	size := bitint.NextPowerOfTwo(1000) // 1024

	// Radix-2 transforms only accept power-of-two lengths
	ok := bitint.IsPowerOfTwo(size)

	// and run one butterfly stage per bit
	stages := bitint.Log2(size) // 10

----------------------------------------------------------------------

NextPowerOfTwo subtracts one before taking the bit length so exact powers of
two are preserved:

	size = 8:    bits.Len(7)   = 3  ->  1 << 3  = 8
	size = 1000: bits.Len(999) = 10 ->  1 << 10 = 1024

Without the subtraction bits.Len(8) = 4 would double an exact power of two.
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of 2 >= size.
//
// Examples:
//
//	Input  Output
//	2      2
//	3      4
//	1000   1024
//	0      1
//	-1     1
func NextPowerOfTwo(size int) int {
	if size <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// IsPowerOfTwo reports whether n is a positive power of 2. A power of two has
// exactly one bit set, so clearing the lowest set bit leaves zero.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 returns log2(n) for a power of two n, or -1 when n is not one.
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}
	return bits.TrailingZeros(uint(n))
}
