// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/classic2/diffengine/blockchain/standalone"
)

// RegNetParams returns the proof-of-work parameters for the regression test
// network.  This should not be confused with the public test network or the
// simulation network; regnet disables retargeting entirely so unit and RPC
// tests get a deterministic, always-minimum difficulty.
//
// Since this network is only intended for unit testing, its values are
// subject to change even if it would cause a hard fork.
func RegNetParams() *Params {
	regNetPowLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	return &Params{
		Name: "regnet",

		PowLimit:    standalone.Uint256FromBig(regNetPowLimit),
		PowNewLimit: standalone.Uint256FromBig(regNetPowLimit),
		PowMaxLimit: standalone.Uint256FromBig(regNetPowLimit),

		PowTargetSpacing:            150,
		PostBlossomPowTargetSpacing: 75,
		PowTargetTimespan:           150 * 2016,

		PowAveragingWindow: 17,
		PowMaxAdjustUp:     16,
		PowMaxAdjustDown:   32,

		NewPowDiffHeight: 0,

		PowAllowMinDifficultyBlocks: false,
		PowNoRetargeting:            true,
	}
}
