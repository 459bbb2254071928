// Package phasein implements the adjusted-binary (phase-in) variable
// width integer code used to transmit AB-LZW symbols: given an alphabet
// of n currently assignable values, most values are written in
// floor(log2 n) bits and the rest in one bit more, saving close to one
// bit per symbol whenever n is not a power of two.
package phasein

import (
	"math/bits"

	"github.com/ablzw/ablzw/bitio"
)

// Width returns (k, t): k is the short codeword width floor(log2 n) and
// t is the number of values that fit in k bits. n must be >= 1.
func Width(n uint32) (k uint, t uint32) {
	k = uint(bits.Len32(n)) - 1
	t = (uint32(1) << (k + 1)) - n
	return k, t
}

// Encode returns the bit pattern and width to transmit v, 0 <= v < n.
//
// bitio packs a code's bits LSB-first: the bits occupying a value's low
// positions are the ones transmitted first. A long (k+1-bit) codeword's
// natural binary form w = v+t therefore can't be used directly — its low
// k bits (transmitted first) are w mod 2^k, not the w>>1 that a peek of
// the first k bits needs to compare against t. Instead the low k bits of
// code carry w>>1 and bit k carries w's low bit, so the first k bits
// transmitted are always w>>1 and the discriminator bit always arrives
// last.
func Encode(v, n uint32) (code uint32, width uint) {
	k, t := Width(n)
	if v < t {
		return v, k
	}
	w := v + t
	hi, lo := w>>1, w&1
	return hi | lo<<k, k + 1
}

// Decode inverts Encode: given the full width-bit codeword actually read
// (k or k+1 bits, per Width) and t, recovers v.
func Decode(code uint32, width, k uint, t uint32) uint32 {
	if width == k {
		return code
	}
	hi, lo := code&(uint32(1)<<k-1), code>>k
	w := hi<<1 | lo
	return w - t
}

// WriteSymbol writes v, 0 <= v < n, to w using the adjusted-binary rule
// for the current alphabet size n.
func WriteSymbol(w *bitio.Writer, v, n uint32) error {
	code, width := Encode(v, n)
	return w.WriteCode(code, width)
}

// ReadSymbol reads one adjusted-binary symbol from r for alphabet size n.
// It peeks k bits to decide whether the codeword is k or k+1 bits wide,
// then consumes exactly that many. ok is false on a truncated stream.
func ReadSymbol(r *bitio.Reader, n uint32) (v uint32, ok bool) {
	k, t := Width(n)

	peek, ok := r.PeekBits(k)
	if !ok {
		return 0, false
	}

	width := k
	if peek >= t {
		width = k + 1
	}

	code, ok := r.ReadCode(width)
	if !ok {
		return 0, false
	}
	return Decode(code, width, k, t), true
}
