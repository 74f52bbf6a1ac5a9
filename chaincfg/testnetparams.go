// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/classic2/diffengine/blockchain/standalone"
)

// TestNetParams returns the proof-of-work parameters for the public test
// network.  Unlike mainnet, testnet allows the minimum-difficulty timestamp
// rule so the network doesn't stall when hash rate drops off.
func TestNetParams() *Params {
	testPowLimit := new(big.Int).Lsh(big.NewInt(0xffff), 208)
	testPowNewLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 220), bigOne)
	testPowMaxLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 231), bigOne)

	return &Params{
		Name: "testnet",

		PowLimit:    standalone.Uint256FromBig(testPowLimit),
		PowNewLimit: standalone.Uint256FromBig(testPowNewLimit),
		PowMaxLimit: standalone.Uint256FromBig(testPowMaxLimit),

		PowTargetSpacing:            600,
		PostBlossomPowTargetSpacing: 60,
		PowTargetTimespan:           60 * 60 * 24 * 14,

		PowAveragingWindow: 17,
		PowMaxAdjustUp:     16,
		PowMaxAdjustDown:   32,

		NewPowDiffHeight: 20160,

		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            false,
	}
}
