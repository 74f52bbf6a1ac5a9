// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/classic2/diffengine/blockchain/standalone"
	"github.com/classic2/diffengine/chaincfg"
)

// PermittedDifficultyTransition reports whether the transition from oldBits
// to newBits is legal for a block at the given height under the retarget
// regime active at that height.
//
// Under the windowed regime the observed new target must lie within the
// per-step adjustment caps applied to the old target.  Under the legacy
// regime, transitions are only allowed at retarget points, where the new
// target must lie within the 4x/quarter clamp applied to the old target;
// between retarget points the bits must not change at all.
//
// Networks that allow minimum-difficulty blocks accept every transition
// since the timestamp rule can legally produce arbitrary difficulty drops.
func PermittedDifficultyTransition(params *chaincfg.Params, height int64, oldBits, newBits uint32) bool {
	if params.PowAllowMinDifficultyBlocks {
		return true
	}

	if height >= params.NewPowDiffHeight {
		observedNewTarget, _, _ := standalone.DiffBitsToUint256(newBits)
		oldTarget, _, _ := standalone.DiffBitsToUint256(oldBits)

		// Maximum allowed difficulty change (weakest target).
		maxTarget, err := oldTarget.MulDivInt64(100+params.PowMaxAdjustDown, 100)
		if err != nil {
			return false
		}
		if maxTarget.Cmp(params.PowLimit) > 0 {
			maxTarget = params.PowLimit
		}

		// Minimum allowed difficulty change (strongest target).  Guard
		// against underflow when the configured cap is 100% or more.
		var minTarget standalone.Uint256
		if params.PowMaxAdjustUp >= 100 {
			minTarget, err = oldTarget.DivUint64(100)
		} else {
			minTarget, err = oldTarget.MulDivInt64(100-params.PowMaxAdjustUp, 100)
		}
		if err != nil {
			return false
		}

		if observedNewTarget.Cmp(maxTarget) > 0 || observedNewTarget.Cmp(minTarget) < 0 {
			return false
		}
		return true
	}

	if height%params.DifficultyAdjustmentInterval() == 0 {
		observedNewTarget, _, _ := standalone.DiffBitsToUint256(newBits)
		oldTarget, _, _ := standalone.DiffBitsToUint256(oldBits)

		// The largest target the legacy retarget could have produced is
		// the old target scaled by the maximum clamped timespan.  The
		// bound is re-encoded through the compact representation so it
		// is compared at the same granularity as the observed bits.
		largestTarget, err := oldTarget.MulDivInt64(params.PowTargetTimespan*4,
			params.PowTargetTimespan)
		if err != nil {
			return false
		}
		if largestTarget.Cmp(params.PowLimit) > 0 {
			largestTarget = params.PowLimit
		}
		maximumNewTarget, _, _ := standalone.DiffBitsToUint256(
			standalone.Uint256ToDiffBits(largestTarget))
		if maximumNewTarget.Cmp(observedNewTarget) < 0 {
			return false
		}

		// Likewise for the smallest target.
		smallestTarget, err := oldTarget.MulDivInt64(params.PowTargetTimespan/4,
			params.PowTargetTimespan)
		if err != nil {
			return false
		}
		if smallestTarget.Cmp(params.PowLimit) > 0 {
			smallestTarget = params.PowLimit
		}
		minimumNewTarget, _, _ := standalone.DiffBitsToUint256(
			standalone.Uint256ToDiffBits(smallestTarget))
		if minimumNewTarget.Cmp(observedNewTarget) > 0 {
			return false
		}
	} else if oldBits != newBits {
		return false
	}

	return true
}
