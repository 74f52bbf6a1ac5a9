// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/classic2/diffengine/blockchain/standalone"

// Params defines the consensus-critical proof-of-work parameters for a
// single chain.  It is immutable once constructed; callers obtain one of the
// per-network instances via MainNetParams, TestNetParams, RegNetParams, or
// SimNetParams rather than building one by hand.
type Params struct {
	// Name is the human-readable identifier for the network.
	Name string

	// PowLimit is the highest proof of work value (lowest difficulty) a
	// block is allowed to have for this network.
	PowLimit standalone.Uint256

	// PowNewLimit is the minimum allowed target used by the legacy-era
	// grandfathered height exceptions and the pre-activation emergency
	// relaxation rule.
	PowNewLimit standalone.Uint256

	// PowMaxLimit is the target used by the windowed regime's strongest
	// emergency relaxation rung.
	PowMaxLimit standalone.Uint256

	// PowTargetSpacing is the legacy regime's intended number of seconds
	// between blocks.
	PowTargetSpacing int64

	// PostBlossomPowTargetSpacing is the windowed regime's intended number
	// of seconds between blocks.
	PostBlossomPowTargetSpacing int64

	// PowTargetTimespan is the legacy regime's retarget interval, in
	// seconds.
	PowTargetTimespan int64

	// PowAveragingWindow is the number of blocks summed to form the
	// average target in the windowed regime.
	PowAveragingWindow int64

	// PowMaxAdjustUp is the maximum percentage the windowed regime may
	// tighten (increase) difficulty in a single transition.
	PowMaxAdjustUp int64

	// PowMaxAdjustDown is the maximum percentage the windowed regime may
	// relax (decrease) difficulty in a single transition.
	PowMaxAdjustDown int64

	// NewPowDiffHeight is the height at which the windowed regime
	// replaces the legacy regime.
	NewPowDiffHeight int64

	// PowAllowMinDifficultyBlocks enables the testnet minimum-difficulty
	// timestamp rule.
	PowAllowMinDifficultyBlocks bool

	// PowNoRetargeting disables retargeting entirely (regtest).
	PowNoRetargeting bool
}

// DifficultyAdjustmentInterval returns the number of blocks between legacy
// retargets.
func (p *Params) DifficultyAdjustmentInterval() int64 {
	return p.PowTargetTimespan / p.PowTargetSpacing
}

// AveragingWindowTimespan returns the ideal number of seconds the windowed
// regime's averaging window should span.
func (p *Params) AveragingWindowTimespan() int64 {
	return p.PowAveragingWindow * p.PostBlossomPowTargetSpacing
}

// MinActualTimespan returns the lower clamp applied to the windowed regime's
// dampened actual timespan.
func (p *Params) MinActualTimespan() int64 {
	return p.AveragingWindowTimespan() * (100 - p.PowMaxAdjustUp) / 100
}

// MaxActualTimespan returns the upper clamp applied to the windowed regime's
// dampened actual timespan.
func (p *Params) MaxActualTimespan() int64 {
	return p.AveragingWindowTimespan() * (100 + p.PowMaxAdjustDown) / 100
}
