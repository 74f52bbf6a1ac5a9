// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package standalone provides the fixed-precision 256-bit integer and
// compact-target codec the difficulty engine needs without pulling in the
// full block index or chain state.  It has no dependencies on the rest of
// the engine so it can be reused by policy code that only needs to compare
// targets.
package standalone

import "math/big"

// Uint256 is an immutable 256-bit unsigned integer.  Every method returns a
// new value rather than mutating the receiver, so a Uint256 is safe to share
// across goroutines without synchronization.
//
// The zero value is a valid representation of 0.
type Uint256 struct {
	n big.Int
}

// maxUint256 is the largest value representable in 256 bits: 2^256 - 1.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// NewUint256FromUint64 returns the Uint256 representation of v.
func NewUint256FromUint64(v uint64) Uint256 {
	var n big.Int
	n.SetUint64(v)
	return Uint256{n: n}
}

// HashToUint256 interprets the given 32-byte hash as a big-endian 256-bit
// unsigned integer.
func HashToUint256(hash [32]byte) Uint256 {
	var n big.Int
	n.SetBytes(hash[:])
	return Uint256{n: n}
}

// clamp saturates r to [0, 2^256-1] and wraps it as a Uint256.  r must not be
// aliased by any value the caller intends to keep using, since it is stored
// directly.
func clamp(r *big.Int) Uint256 {
	if r.Sign() < 0 {
		r.SetInt64(0)
	} else if r.Cmp(maxUint256) > 0 {
		r.Set(maxUint256)
	}
	return Uint256{n: *r}
}

// IsZero reports whether n is 0.
func (n Uint256) IsZero() bool {
	return n.n.Sign() == 0
}

// Cmp compares n and o, returning -1, 0, or +1 as n is less than, equal to,
// or greater than o.
func (n Uint256) Cmp(o Uint256) int {
	return n.n.Cmp(&o.n)
}

// Add returns n + o, saturating at 2^256-1.
func (n Uint256) Add(o Uint256) Uint256 {
	r := new(big.Int).Add(&n.n, &o.n)
	return clamp(r)
}

// MulUint64 returns n * m, saturating at 2^256-1.
func (n Uint256) MulUint64(m uint64) Uint256 {
	r := new(big.Int).Mul(&n.n, new(big.Int).SetUint64(m))
	return clamp(r)
}

// DivUint64 returns n / m.  It returns ErrDivideByZero rather than dividing
// by zero, and the spec requires callers to treat truncation to zero as a
// condition to detect before relying on the result, not this method's job to
// reject.
func (n Uint256) DivUint64(m uint64) (Uint256, error) {
	if m == 0 {
		return Uint256{}, ErrDivideByZero
	}
	r := new(big.Int).Div(&n.n, new(big.Int).SetUint64(m))
	return Uint256{n: *r}, nil
}

// MulDivInt64 returns n * mul / div, computed with the multiplication first
// so the intermediate stays exact, saturating at 2^256-1.  div must be
// nonzero; both mul and div are expected to be small, non-negative
// percentage-style factors (e.g. 100+powMaxAdjustDown).
func (n Uint256) MulDivInt64(mul, div int64) (Uint256, error) {
	if div == 0 {
		return Uint256{}, ErrDivideByZero
	}
	r := new(big.Int).Mul(&n.n, big.NewInt(mul))
	r.Div(r, big.NewInt(div))
	return clamp(r), nil
}

// Bytes returns the big-endian byte representation of n, left-padded with
// zeros to 32 bytes.
func (n Uint256) Bytes() [32]byte {
	var out [32]byte
	b := n.n.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// Big returns a copy of n as a math/big.Int for interop with code that
// already speaks big.Int (e.g. chain parameter loaders).
func (n Uint256) Big() *big.Int {
	return new(big.Int).Set(&n.n)
}

// Uint256FromBig returns the Uint256 representation of v, saturating at
// 2^256-1 and flooring negative values at 0.
func Uint256FromBig(v *big.Int) Uint256 {
	return clamp(new(big.Int).Set(v))
}
