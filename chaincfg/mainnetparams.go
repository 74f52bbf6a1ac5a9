// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/classic2/diffengine/blockchain/standalone"
)

// bigOne is 1 represented as a big.Int.  It is defined here to avoid the
// overhead of creating it multiple times.
var bigOne = big.NewInt(1)

// MainNetParams returns the proof-of-work parameters for the main network.
func MainNetParams() *Params {
	// mainPowLimit is the highest proof of work value a mainnet block can
	// have.  It is the value 0xffff << 208, which encodes to the compact
	// value 0x1d00ffff.
	mainPowLimit := new(big.Int).Lsh(big.NewInt(0xffff), 208)

	// mainPowNewLimit is the fixed target used by the grandfathered height
	// exceptions, the pre-activation emergency rule, and the windowed
	// regime's defensive fallbacks.  It is the value 2^220 - 1, a tighter
	// bound than mainPowLimit.
	mainPowNewLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 220), bigOne)

	// mainPowMaxLimit is the weakest target the windowed regime's strongest
	// emergency relaxation rung may produce.  It is the value 2^231 - 1 and
	// intentionally exceeds mainPowLimit since emergency relaxation is
	// allowed to ease past the normal floor.
	mainPowMaxLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 231), bigOne)

	return &Params{
		Name: "mainnet",

		PowLimit:    standalone.Uint256FromBig(mainPowLimit),
		PowNewLimit: standalone.Uint256FromBig(mainPowNewLimit),
		PowMaxLimit: standalone.Uint256FromBig(mainPowMaxLimit),

		PowTargetSpacing:            600, // 10 minutes
		PostBlossomPowTargetSpacing: 60,  // 1 minute
		PowTargetTimespan:           60 * 60 * 24 * 14, // 2 weeks

		PowAveragingWindow: 17,
		PowMaxAdjustUp:     16,
		PowMaxAdjustDown:   32,

		NewPowDiffHeight: 120000,

		PowAllowMinDifficultyBlocks: false,
		PowNoRetargeting:            false,
	}
}
