// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import "math/big"

// DiffBitsToUint256 converts a compact representation used to encode 256-bit
// difficulty targets ("nBits") into a Uint256.
//
// The format is similar to IEEE754 floating point in that there is a
// sign bit, an exponent, and a mantissa.  The top byte is the exponent; the
// low 24 bits are the mantissa.  The decoded value is
// mantissa * 256^(exponent-3).
//
//	----------------------------------------------------
//	|   Exponent     |    Sign    |    Mantissa         |
//	----------------------------------------------------
//	| 8 bits [31-24] | 1 bit [23] | 23 bits [22-00]      |
//	----------------------------------------------------
//
// The isNegative return value reports whether the sign bit was set on a
// nonzero mantissa, and isOverflow reports whether the decoded value does
// not fit in 256 bits.  Callers that reject targets based on these flags
// (such as CheckProofOfWork) must check them explicitly; DiffBitsToUint256
// itself always returns a best-effort value.
func DiffBitsToUint256(bits uint32) (target Uint256, isNegative bool, isOverflow bool) {
	mantissa := bits & 0x007fffff
	exponent := bits >> 24
	isNegative = bits&0x00800000 != 0 && mantissa != 0

	var n Uint256
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		n = NewUint256FromUint64(uint64(mantissa))
	} else {
		n = NewUint256FromUint64(uint64(mantissa))
		shifted := n.Big()
		shifted.Lsh(shifted, uint(8*(exponent-3)))
		n = Uint256FromBig(shifted)
	}

	isOverflow = mantissa != 0 &&
		(exponent > 34 ||
			(mantissa > 0xff && exponent > 33) ||
			(mantissa > 0xffff && exponent > 32))

	return n, isNegative, isOverflow
}

// Uint256ToDiffBits converts a Uint256 to a compact representation using
// the same encoding described in DiffBitsToUint256.
//
// Re-encoding does not invert decoding exactly: distinct 256-bit values can
// map to the same compact form, and decode(encode(x)) rounds x down to the
// granularity the 23-bit mantissa can represent.  encode(decode(x)) is the
// identity only when x's mantissa already fits without the sign-bit
// adjustment below.
func Uint256ToDiffBits(target Uint256) uint32 {
	v := target.Big()
	bitLen := v.BitLen()
	size := uint32((bitLen + 7) / 8)

	var compact uint32
	if size <= 3 {
		compact = uint32(v.Uint64()) << (8 * (3 - size))
	} else {
		shifted := new(big.Int).Rsh(v, uint(8*(size-3)))
		compact = uint32(shifted.Uint64())
	}

	// If the sign bit (0x00800000) would end up set, shift the mantissa
	// down one more byte and bump the exponent so the value is never
	// misread as negative.
	if compact&0x00800000 != 0 {
		compact >>= 8
		size++
	}

	return compact | size<<24
}
