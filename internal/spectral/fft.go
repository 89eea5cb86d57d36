// SPDX-License-Identifier: MIT
package spectral

import (
	"fmt"
	"math"
	"math/bits"

	"scope/pkg/bitint"
)

// FFT computes the forward discrete Fourier transform of (re, im) in place
// with an iterative radix-2 Cooley-Tukey. Both slices must have the same
// power-of-two length. It does not allocate.
//
// A length of 2^k runs k butterfly stages. Each stage computes one Cos/Sin
// pair and advances the twiddle factor by complex multiplication for every
// butterfly offset.
func FFT(re, im []float64) error {
	n := len(re)
	if len(im) != n {
		return fmt.Errorf("fft: real and imaginary lengths differ (%d != %d)", n, len(im))
	}
	stages := bitint.Log2(n)
	if stages < 0 {
		return fmt.Errorf("fft size must be a power of 2, got %d", n)
	}

	// Bit-reversal permutation over the low stages bits.
	shift := bits.UintSize - stages
	for i := range n {
		j := int(bits.Reverse(uint(i)) >> shift)
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for s := 1; s <= stages; s++ {
		size := 1 << s
		half := size >> 1
		theta := -math.Pi / float64(half)
		wpr, wpi := math.Cos(theta), math.Sin(theta)

		wr, wi := 1.0, 0.0
		for k := range half {
			for a := k; a < n; a += size {
				b := a + half
				tr := wr*re[b] - wi*im[b]
				ti := wr*im[b] + wi*re[b]
				re[b] = re[a] - tr
				im[b] = im[a] - ti
				re[a] += tr
				im[a] += ti
			}
			wr, wi = wr*wpr-wi*wpi, wr*wpi+wi*wpr
		}
	}
	return nil
}
