// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/classic2/diffengine/blockchain/standalone"
)

// SimNetParams returns the proof-of-work parameters for the simulation test
// network, intended for full integration tests between wallets, mining
// pools, block explorers, and other services that build on the chain.
//
// Since this network is only intended for simulation testing, its values are
// subject to change even if it would cause a hard fork.
func SimNetParams() *Params {
	simNetPowLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	return &Params{
		Name: "simnet",

		PowLimit:    standalone.Uint256FromBig(simNetPowLimit),
		PowNewLimit: standalone.Uint256FromBig(simNetPowLimit),
		PowMaxLimit: standalone.Uint256FromBig(simNetPowLimit),

		PowTargetSpacing:            20,
		PostBlossomPowTargetSpacing: 10,
		PowTargetTimespan:           20 * 2016,

		PowAveragingWindow: 17,
		PowMaxAdjustUp:     16,
		PowMaxAdjustDown:   32,

		NewPowDiffHeight: 2000,

		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            false,
	}
}
