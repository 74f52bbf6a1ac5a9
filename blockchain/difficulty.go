// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/classic2/diffengine/blockchain/standalone"
	"github.com/classic2/diffengine/chaincfg"
)

// Hard-coded height ranges that must use a fixed target rather than either
// retarget regime's computed value.  These exist because of specific
// historical incidents on the chain and are permanent, consensus-critical
// exceptions: they are never removed, extended, or made configurable per
// network.
//
// The fixedLimit ranges return the network minimum difficulty and the
// fixedNewLimit ranges return the relaxed fixed target.  The third range is
// consulted before the regime switch since it overlaps heights the windowed
// regime would otherwise claim.
const (
	fixedLimitStart = 112266
	fixedLimitEnd   = 112300

	fixedNewLimitStart = 112301
	fixedNewLimitEnd   = 112401

	fixedRestartStart = 122291
	fixedRestartEnd   = 122310
)

// emergencyLadderHeight is the height at which the windowed regime's
// emergency relaxation switches from the single all-or-nothing threshold to
// the graduated ladder.
const emergencyLadderHeight = 126800

// NoHeaderTime is the headerTime value callers pass to NextWorkRequired when
// no candidate block header is available yet (for example when validating a
// stored chain rather than a newly arrived header).  Without a candidate
// timestamp the emergency relaxation rules cannot run and only the windowed
// average itself is consulted.
const NoHeaderTime int64 = 0

// NextWorkRequired returns the required difficulty bits for the block that
// would follow tip.  It evaluates the grandfathered height exceptions,
// selects between the legacy epoch retarget and the windowed averaging
// retarget based on the configured activation height, and applies the
// testnet minimum-difficulty timestamp rule where the network allows it.
//
// headerTime is the timestamp of the candidate block header, or NoHeaderTime
// when no candidate header exists.  tip may be nil to request the target for
// the genesis block.
func NextWorkRequired(tip BlockIndexNode, headerTime int64, params *chaincfg.Params) (uint32, error) {
	if params == nil {
		return 0, nilParamsError("NextWorkRequired")
	}

	powLimitBits := standalone.Uint256ToDiffBits(params.PowLimit)
	powNewLimitBits := standalone.Uint256ToDiffBits(params.PowNewLimit)

	// Genesis block.
	if tip == nil {
		return powLimitBits, nil
	}

	if tip.Height() >= fixedRestartStart && tip.Height() <= fixedRestartEnd {
		return powNewLimitBits, nil
	}

	// Switch between the legacy and windowed retarget algorithms based on
	// height.
	if tip.Height() >= params.NewPowDiffHeight {
		return windowedWorkRequired(tip, headerTime, params), nil
	}

	if tip.Height() >= fixedLimitStart && tip.Height() <= fixedLimitEnd {
		return powLimitBits, nil
	}

	if tip.Height() >= fixedNewLimitStart && tip.Height() <= fixedNewLimitEnd {
		return powNewLimitBits, nil
	}

	// Only change once per difficulty adjustment interval.
	dai := params.DifficultyAdjustmentInterval()
	if (tip.Height()+1)%dai != 0 {
		if params.PowAllowMinDifficultyBlocks {
			// Special difficulty rule for testnet: if the new block's
			// timestamp is more than twice the target spacing after the
			// tip, allow mining of a minimum-difficulty block.
			if headerTime > tip.Time()+params.PowTargetSpacing*2 {
				return powLimitBits, nil
			}

			// Return the last non-special-min-difficulty-rules block.
			return findPrevTestNetDifficulty(tip, dai, powLimitBits), nil
		}
		return tip.Bits(), nil
	}

	// Go back by what should be two weeks worth of blocks.
	firstHeight := tip.Height() - (dai - 1)
	firstNode := tip.Ancestor(firstHeight)
	if firstNode == nil {
		// The index is too shallow to span a full epoch, which cannot
		// happen on a consistent chain since retarget points only occur
		// at exact interval multiples.
		return powLimitBits, nil
	}

	return CalculateLegacy(tip, firstNode.Time(), params), nil
}

// CalculateLegacy computes the legacy epoch retarget given the tip of the
// outgoing epoch and the timestamp of that epoch's first block.  The actual
// timespan is clamped to [PowTargetTimespan/4, PowTargetTimespan*4] before
// being applied.
func CalculateLegacy(tip BlockIndexNode, firstBlockTime int64, params *chaincfg.Params) uint32 {
	if params.PowNoRetargeting {
		return tip.Bits()
	}

	// Limit adjustment step.
	actualTimespan := tip.Time() - firstBlockTime
	if actualTimespan < params.PowTargetTimespan/4 {
		actualTimespan = params.PowTargetTimespan / 4
	}
	if actualTimespan > params.PowTargetTimespan*4 {
		actualTimespan = params.PowTargetTimespan * 4
	}

	// Retarget.
	oldTarget, _, _ := standalone.DiffBitsToUint256(tip.Bits())
	newTarget, err := oldTarget.MulDivInt64(actualTimespan, params.PowTargetTimespan)
	if err != nil {
		newTarget = oldTarget
	}
	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget = params.PowLimit
	}

	newBits := standalone.Uint256ToDiffBits(newTarget)
	log.Debugf("legacy retarget: old bits %08x, actual timespan %ds, new bits %08x",
		tip.Bits(), actualTimespan, newBits)
	return newBits
}

// windowedWorkRequired computes the required difficulty bits under the
// windowed averaging regime, including the emergency relaxation rules that
// apply when a candidate header arrives long after the tip.
func windowedWorkRequired(tip BlockIndexNode, headerTime int64, params *chaincfg.Params) uint32 {
	powLimitBits := standalone.Uint256ToDiffBits(params.PowLimit)
	powNewLimitBits := standalone.Uint256ToDiffBits(params.PowNewLimit)

	// Genesis block.
	if tip == nil {
		return powLimitBits
	}

	// Regtest.
	if params.PowNoRetargeting {
		return tip.Bits()
	}

	// Validate parameters to prevent division by zero.
	if params.PowAveragingWindow <= 0 || params.PostBlossomPowTargetSpacing <= 0 {
		return powNewLimitBits
	}

	// Old emergency rule, in force below the ladder activation height: a
	// single gap of more than six target spacings relaxes straight to the
	// fixed relaxed target.
	if tip.Height() < emergencyLadderHeight && headerTime != NoHeaderTime &&
		headerTime > tip.Time()+params.PostBlossomPowTargetSpacing*6 {
		return powNewLimitBits
	}

	// Graduated emergency ladder, in force at and above the activation
	// height.  Note the final branch returns the tip's own bits rather
	// than falling through to the window retarget; see the package
	// documentation for why this asymmetry is preserved.
	if tip.Height() >= emergencyLadderHeight && headerTime != NoHeaderTime {
		if bits, ok := emergencyLadder(tip, headerTime, params); ok {
			return bits
		}
		return tip.Bits()
	}

	// Find the first block in the averaging window and sum the targets.
	firstNode := tip
	var totalTarget standalone.Uint256
	for i := int64(0); firstNode != nil && i < params.PowAveragingWindow; i++ {
		target, _, _ := standalone.DiffBitsToUint256(firstNode.Bits())
		totalTarget = totalTarget.Add(target)
		firstNode = firstNode.Parent()
	}

	// Check there are enough blocks.
	if firstNode == nil {
		return powNewLimitBits
	}

	avgTarget, err := totalTarget.DivUint64(uint64(params.PowAveragingWindow))
	if err != nil {
		return powNewLimitBits
	}

	return CalculateWindowed(avgTarget, firstNode.Time(), tip.Time(), params)
}

// CalculateWindowed computes the windowed averaging retarget: the actual
// timespan between firstBlockTime and lastBlockTime is dampened toward the
// ideal window timespan by a factor of 4, clamped to
// [MinActualTimespan, MaxActualTimespan], and applied to avgTarget.
//
// The average is divided by the ideal timespan before the multiplication by
// the dampened timespan so the intermediate value stays within 256 bits.
func CalculateWindowed(avgTarget standalone.Uint256, firstBlockTime, lastBlockTime int64, params *chaincfg.Params) uint32 {
	averagingWindowTimespan := params.AveragingWindowTimespan()
	if averagingWindowTimespan <= 0 {
		return standalone.Uint256ToDiffBits(params.PowNewLimit)
	}

	// Calculate the actual timespan with dampening.
	actualTimespan := lastBlockTime - firstBlockTime
	actualTimespan = averagingWindowTimespan + (actualTimespan-averagingWindowTimespan)/4

	// Apply the adjustment limits.
	if actualTimespan < params.MinActualTimespan() {
		actualTimespan = params.MinActualTimespan()
	}
	if actualTimespan > params.MaxActualTimespan() {
		actualTimespan = params.MaxActualTimespan()
	}

	// Retarget using the provided average target.
	newTarget, err := avgTarget.DivUint64(uint64(averagingWindowTimespan))
	if err != nil {
		return standalone.Uint256ToDiffBits(params.PowNewLimit)
	}
	newTarget = newTarget.MulUint64(uint64(actualTimespan))

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget = params.PowLimit
	}

	newBits := standalone.Uint256ToDiffBits(newTarget)
	log.Debugf("windowed retarget: dampened timespan %ds of %ds ideal, new bits %08x",
		actualTimespan, averagingWindowTimespan, newBits)
	return newBits
}

// emergencyLadder evaluates the graduated emergency relaxation rungs and
// reports whether one fired.  A gap of more than eight spacings relaxes to
// the weakest allowed target, more than six spacings scales the current
// target by 100/35, and more than three spacings scales it by 100/50.  The
// scaled target is capped at the compact-rounded weakest allowed target.
func emergencyLadder(tip BlockIndexNode, headerTime int64, params *chaincfg.Params) (uint32, bool) {
	timeDiff := headerTime - tip.Time()
	spacing := params.PostBlossomPowTargetSpacing
	powMaxLimitBits := standalone.Uint256ToDiffBits(params.PowMaxLimit)

	lastTarget, _, _ := standalone.DiffBitsToUint256(tip.Bits())

	switch {
	case timeDiff > spacing*8:
		return powMaxLimitBits, true
	case timeDiff > spacing*6:
		scaled, err := lastTarget.MulDivInt64(100, 35)
		if err != nil {
			return tip.Bits(), true
		}
		lastTarget = scaled
	case timeDiff > spacing*3:
		scaled, err := lastTarget.MulDivInt64(100, 50)
		if err != nil {
			return tip.Bits(), true
		}
		lastTarget = scaled
	default:
		return 0, false
	}

	// Cap at the weakest allowed target, compared at the granularity the
	// compact encoding can represent.
	maxTarget, _, _ := standalone.DiffBitsToUint256(powMaxLimitBits)
	if lastTarget.Cmp(maxTarget) > 0 {
		return powMaxLimitBits, true
	}

	return standalone.Uint256ToDiffBits(lastTarget), true
}

// findPrevTestNetDifficulty returns the difficulty of the previous block
// which did not have the special testnet minimum-difficulty rule applied,
// searching backward from tip.
func findPrevTestNetDifficulty(tip BlockIndexNode, dai int64, powLimitBits uint32) uint32 {
	node := tip
	for node.Parent() != nil && node.Height()%dai != 0 && node.Bits() == powLimitBits {
		node = node.Parent()
	}
	return node.Bits()
}
