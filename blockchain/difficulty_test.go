// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/classic2/diffengine/blockchain/standalone"
	"github.com/classic2/diffengine/chaincfg"
)

// chainOpt is a per-block override used by mockChain.
type chainOpt struct {
	height int64
	bits   uint32
}

// mockChain creates a linked chain of numBlocks nodes ending at the returned
// tip.  Heights start at startHeight and each block follows its parent by
// spacing seconds starting from startTime.  All blocks use the given bits
// except where an override says otherwise.
func mockChain(numBlocks int, startHeight, startTime, spacing int64, bits uint32, overrides ...chainOpt) *ChainNode {
	var tip *ChainNode
	for i := 0; i < numBlocks; i++ {
		height := startHeight + int64(i)
		blockBits := bits
		for _, o := range overrides {
			if o.height == height {
				blockBits = o.bits
			}
		}
		var parent BlockIndexNode
		if tip != nil {
			parent = tip
		}
		tip = NewChainNode(height, startTime+int64(i)*spacing, blockBits, parent)
	}
	return tip
}

// TestCalculateLegacy ensures the legacy epoch retarget produces the
// expected results, including when the timespan clamps and the proof of
// work limit apply.
func TestCalculateLegacy(t *testing.T) {
	params := chaincfg.MainNetParams()

	tests := []struct {
		name      string
		bits      uint32
		lastTime  int64
		firstTime int64
		want      uint32
	}{{
		name:      "no constraints",
		bits:      0x1d00ffff,
		lastTime:  1262152739,
		firstTime: 1261130161,
		want:      0x1d00d86a,
	}, {
		name:      "clamped to pow limit",
		bits:      0x1d00ffff,
		lastTime:  1233061996,
		firstTime: 1231006505,
		want:      0x1d00ffff,
	}, {
		name:      "actual timespan below lower clamp",
		bits:      0x1c05a3f4,
		lastTime:  1279297671,
		firstTime: 1279008237,
		want:      0x1c0168fd,
	}, {
		name:      "actual timespan above upper clamp",
		bits:      0x1c387f6f,
		lastTime:  1269211443,
		firstTime: 1263163443,
		want:      0x1d00e1fd,
	}}

	for _, test := range tests {
		tip := NewChainNode(2015, test.lastTime, test.bits, nil)
		got := CalculateLegacy(tip, test.firstTime, params)
		if got != test.want {
			t.Errorf("%q: mismatched bits -- got %08x, want %08x", test.name,
				got, test.want)
			continue
		}

		// The result always lies within the quarter/4x clamp intersected
		// with the proof of work limit.
		oldTarget, _, _ := standalone.DiffBitsToUint256(test.bits)
		newTarget, _, _ := standalone.DiffBitsToUint256(got)
		lower, _ := oldTarget.DivUint64(4)
		upper := oldTarget.MulUint64(4)
		if upper.Cmp(params.PowLimit) > 0 {
			upper = params.PowLimit
		}
		if newTarget.Cmp(lower) < 0 || newTarget.Cmp(upper) > 0 {
			t.Errorf("%q: result %08x outside legacy clamp", test.name, got)
		}
	}
}

// TestCalculateLegacyNoRetargeting ensures the legacy retarget returns the
// tip difficulty unchanged when retargeting is disabled.
func TestCalculateLegacyNoRetargeting(t *testing.T) {
	params := chaincfg.RegNetParams()
	tip := NewChainNode(2015, 1262152739, 0x1d00ffff, nil)
	if got := CalculateLegacy(tip, 1261130161, params); got != 0x1d00ffff {
		t.Fatalf("mismatched bits -- got %08x, want 1d00ffff", got)
	}
}

// TestNextWorkRequiredLegacy ensures the dispatcher handles the legacy
// regime: genesis, non-retarget heights, and a full epoch retarget.
func TestNextWorkRequiredLegacy(t *testing.T) {
	params := chaincfg.MainNetParams()
	powLimitBits := standalone.Uint256ToDiffBits(params.PowLimit)

	// Genesis.
	got, err := NextWorkRequired(nil, NoHeaderTime, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != powLimitBits {
		t.Fatalf("genesis: mismatched bits -- got %08x, want %08x", got,
			powLimitBits)
	}

	// Not at a retarget point the difficulty carries forward unchanged.
	tip := mockChain(10, 1000, 1262152739, 600, 0x1c05a3f4)
	got, err = NextWorkRequired(tip, tip.Time()+600, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1c05a3f4 {
		t.Fatalf("non-retarget: mismatched bits -- got %08x, want 1c05a3f4",
			got)
	}

	// A full epoch ending at height 2015 retargets from the epoch's first
	// block time.  The chain is built with uneven spacing so the epoch
	// spans the historical timespan from the known vector.
	epochSpan := int64(1262152739 - 1261130161)
	tip = mockChain(2016, 0, 1261130161, epochSpan/2015, 0x1d00ffff)
	// Force the tip timestamp to the exact vector value since integer
	// spacing cannot land on it.
	tip = NewChainNode(2015, 1262152739, 0x1d00ffff, tip.Parent())
	got, err = NextWorkRequired(tip, tip.Time()+600, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1d00d86a {
		t.Fatalf("epoch retarget: mismatched bits -- got %08x, want 1d00d86a",
			got)
	}
}

// TestNextWorkRequiredNilParams ensures a nil parameter bundle is rejected
// with the expected error.
func TestNextWorkRequiredNilParams(t *testing.T) {
	_, err := NextWorkRequired(nil, NoHeaderTime, nil)
	if err == nil {
		t.Fatal("no error for nil params")
	}
}

// TestNextWorkRequiredFixedHeights ensures the grandfathered height ranges
// return their fixed targets regardless of the surrounding chain state.
func TestNextWorkRequiredFixedHeights(t *testing.T) {
	params := chaincfg.MainNetParams()
	powLimitBits := standalone.Uint256ToDiffBits(params.PowLimit)
	powNewLimitBits := standalone.Uint256ToDiffBits(params.PowNewLimit)

	tests := []struct {
		name   string
		height int64
		want   uint32
	}{{
		name:   "restart range start",
		height: 122291,
		want:   powNewLimitBits,
	}, {
		name:   "restart range end",
		height: 122310,
		want:   powNewLimitBits,
	}, {
		name:   "limit range start",
		height: 112266,
		want:   powLimitBits,
	}, {
		name:   "limit range end",
		height: 112300,
		want:   powLimitBits,
	}, {
		name:   "new limit range start",
		height: 112301,
		want:   powNewLimitBits,
	}, {
		name:   "new limit range end",
		height: 112401,
		want:   powNewLimitBits,
	}}

	for _, test := range tests {
		tip := NewChainNode(test.height, 1400000000, 0x1c05a3f4, nil)
		got, err := NextWorkRequired(tip, 1400000060, params)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: mismatched bits -- got %08x, want %08x", test.name,
				got, test.want)
			continue
		}
	}

	// The height immediately below the first range follows the normal
	// non-retarget rule instead.
	tip := mockChain(5, 112261, 1400000000, 600, 0x1c05a3f4)
	got, err := NextWorkRequired(tip, tip.Time()+600, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1c05a3f4 {
		t.Fatalf("below fixed ranges: mismatched bits -- got %08x, "+
			"want 1c05a3f4", got)
	}
}

// TestNextWorkRequiredMinDifficulty ensures the testnet minimum-difficulty
// timestamp rule and the walk back to the last non-minimum difficulty apply
// on networks that allow them.
func TestNextWorkRequiredMinDifficulty(t *testing.T) {
	params := chaincfg.TestNetParams()
	powLimitBits := standalone.Uint256ToDiffBits(params.PowLimit)

	// Blocks 51 through 100 were mined at the minimum difficulty under
	// the timestamp rule; block 50 was not.
	tip := mockChain(101, 0, 1400000000, 600, powLimitBits,
		chainOpt{height: 50, bits: 0x1c0fffff})

	// A candidate header more than twice the target spacing after the tip
	// is allowed the minimum difficulty.
	got, err := NextWorkRequired(tip, tip.Time()+params.PowTargetSpacing*2+1, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != powLimitBits {
		t.Fatalf("late header: mismatched bits -- got %08x, want %08x", got,
			powLimitBits)
	}

	// A well-timed candidate header gets the difficulty of the last block
	// mined without the minimum-difficulty rule.
	got, err = NextWorkRequired(tip, tip.Time()+1, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1c0fffff {
		t.Fatalf("well-timed header: mismatched bits -- got %08x, "+
			"want 1c0fffff", got)
	}
}

// TestWindowedEmergency ensures both emergency relaxation rules: the single
// threshold below the ladder activation height and the graduated ladder at
// and above it.
func TestWindowedEmergency(t *testing.T) {
	params := *chaincfg.MainNetParams()
	params.NewPowDiffHeight = 100
	powNewLimitBits := standalone.Uint256ToDiffBits(params.PowNewLimit)
	powMaxLimitBits := standalone.Uint256ToDiffBits(params.PowMaxLimit)

	// Below the ladder activation height a gap of more than six spacings
	// relaxes straight to the fixed relaxed target.
	tip := NewChainNode(150, 1000000, 0x1d00ffff, nil)
	got, err := NextWorkRequired(tip, 1000420, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != powNewLimitBits {
		t.Fatalf("pre-ladder emergency: mismatched bits -- got %08x, "+
			"want %08x", got, powNewLimitBits)
	}

	// The graduated ladder at and above the activation height.
	tests := []struct {
		name       string
		bits       uint32
		headerTime int64
		want       uint32
	}{{
		name:       "eight spacings relaxes to the max limit",
		bits:       0x1d00ffff,
		headerTime: 1000481,
		want:       powMaxLimitBits,
	}, {
		name:       "six spacings scales by 100/35",
		bits:       0x1d00ffff,
		headerTime: 1000400,
		want:       0x1d02db6a,
	}, {
		name:       "three spacings scales by 100/50",
		bits:       0x1d00ffff,
		headerTime: 1000200,
		want:       0x1d01fffe,
	}, {
		name:       "well timed header leaves difficulty unchanged",
		bits:       0x1d00ffff,
		headerTime: 1000100,
		want:       0x1d00ffff,
	}, {
		name:       "scaled target capped at the max limit",
		bits:       0x1d7fffff,
		headerTime: 1000400,
		want:       powMaxLimitBits,
	}}

	for _, test := range tests {
		tip := NewChainNode(126800, 1000000, test.bits, nil)
		got, err := NextWorkRequired(tip, test.headerTime, &params)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: mismatched bits -- got %08x, want %08x", test.name,
				got, test.want)
			continue
		}
	}
}

// TestWindowedRetarget ensures the averaging window retarget: the steady
// state, the dampened slow and fast cases, and the short chain fallback.
func TestWindowedRetarget(t *testing.T) {
	params := *chaincfg.MainNetParams()
	params.NewPowDiffHeight = 100
	powNewLimitBits := standalone.Uint256ToDiffBits(params.PowNewLimit)

	// Perfect spacing keeps the difficulty stable.
	tip := mockChain(20, 150, 1000000, 60, 0x1d00ffff)
	got, err := NextWorkRequired(tip, tip.Time()+60, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1d00ffff {
		t.Fatalf("steady state: mismatched bits -- got %08x, want 1d00ffff",
			got)
	}

	// The effective multiplier on the average target stays within the
	// configured adjustment caps.
	oldTarget, _, _ := standalone.DiffBitsToUint256(0x1d00ffff)
	newTarget, _, _ := standalone.DiffBitsToUint256(got)
	lower, _ := oldTarget.MulDivInt64(100-params.PowMaxAdjustUp, 100)
	upper, _ := oldTarget.MulDivInt64(100+params.PowMaxAdjustDown, 100)
	if newTarget.Cmp(lower) < 0 || newTarget.Cmp(upper) > 0 {
		t.Fatalf("steady state: result outside dampening law")
	}

	// Slow blocks relax the difficulty; the dampened timespan for blocks
	// spaced at twice the target is 1275 of the ideal 1020 seconds.
	tip = mockChain(20, 150, 1000000, 120, 0x1c05a3f4)
	got, err = NextWorkRequired(tip, tip.Time()+60, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1c070cf0 {
		t.Fatalf("slow blocks: mismatched bits -- got %08x, want 1c070cf0",
			got)
	}

	// Fast blocks tighten the difficulty; the dampened timespan for
	// blocks spaced at half the target is 893 seconds.
	tip = mockChain(20, 150, 1000000, 30, 0x1c05a3f4)
	got, err = NextWorkRequired(tip, tip.Time()+60, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1c04f02a {
		t.Fatalf("fast blocks: mismatched bits -- got %08x, want 1c04f02a",
			got)
	}

	// A chain shorter than the averaging window falls back to the fixed
	// relaxed target.
	tip = mockChain(10, 150, 1000000, 60, 0x1d00ffff)
	got, err = NextWorkRequired(tip, NoHeaderTime, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != powNewLimitBits {
		t.Fatalf("short chain: mismatched bits -- got %08x, want %08x", got,
			powNewLimitBits)
	}

	// Degenerate window parameters fall back rather than dividing by
	// zero.
	degenerate := params
	degenerate.PowAveragingWindow = 0
	tip = mockChain(20, 150, 1000000, 60, 0x1d00ffff)
	got, err = NextWorkRequired(tip, tip.Time()+60, &degenerate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != powNewLimitBits {
		t.Fatalf("degenerate params: mismatched bits -- got %08x, want %08x",
			got, powNewLimitBits)
	}
}

// TestWindowedRetargetAtLadderHeights ensures the window retarget still runs
// at ladder heights when no candidate header time is supplied, while a well
// timed candidate header freezes the difficulty.
func TestWindowedRetargetAtLadderHeights(t *testing.T) {
	params := *chaincfg.MainNetParams()
	params.NewPowDiffHeight = 100

	tip := mockChain(20, 126800, 1000000, 60, 0x1d00ffff)

	// No header time: the window retarget runs.
	got, err := NextWorkRequired(tip, NoHeaderTime, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x1d00ffff {
		t.Fatalf("no header: mismatched bits -- got %08x, want 1d00ffff", got)
	}

	// A well timed header short circuits to the tip difficulty without
	// consulting the window at all, even though the window would have
	// produced the same answer here.
	got, err = NextWorkRequired(tip, tip.Time()+60, &params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tip.Bits() {
		t.Fatalf("well timed header: mismatched bits -- got %08x, want %08x",
			got, tip.Bits())
	}
}

// TestNoRetargeting ensures networks with retargeting disabled carry the tip
// difficulty forward in the windowed regime.  The legacy regime's equivalent
// is covered by TestCalculateLegacyNoRetargeting.
func TestNoRetargeting(t *testing.T) {
	params := chaincfg.RegNetParams()

	// Windowed regime (regnet activates it at height 0).
	tip := mockChain(20, 150, 1000000, 60, 0x207fffff)
	got, err := NextWorkRequired(tip, tip.Time()+10000, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x207fffff {
		t.Fatalf("windowed: mismatched bits -- got %08x, want 207fffff", got)
	}
}

// TestTransitionConsistency ensures the transitions the engine itself
// computes are accepted by the transition validator.
func TestTransitionConsistency(t *testing.T) {
	params := chaincfg.MainNetParams()

	// Legacy regime, non-retarget height.
	tip := mockChain(10, 1000, 1262152739, 600, 0x1c05a3f4)
	newBits, err := NextWorkRequired(tip, tip.Time()+600, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !PermittedDifficultyTransition(params, tip.Height()+1, tip.Bits(), newBits) {
		t.Fatalf("legacy carry forward rejected: %08x -> %08x", tip.Bits(),
			newBits)
	}

	// Legacy regime, retarget point.
	epochSpan := int64(1262152739 - 1261130161)
	tip = mockChain(2016, 0, 1261130161, epochSpan/2015, 0x1d00ffff)
	tip = NewChainNode(2015, 1262152739, 0x1d00ffff, tip.Parent())
	newBits, err = NextWorkRequired(tip, tip.Time()+600, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !PermittedDifficultyTransition(params, tip.Height()+1, tip.Bits(), newBits) {
		t.Fatalf("legacy retarget rejected: %08x -> %08x", tip.Bits(), newBits)
	}

	// Windowed regime steady state.
	windowed := *params
	windowed.NewPowDiffHeight = 100
	tip = mockChain(20, 150, 1000000, 60, 0x1c05a3f4)
	newBits, err = NextWorkRequired(tip, NoHeaderTime, &windowed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !PermittedDifficultyTransition(&windowed, tip.Height()+1, tip.Bits(), newBits) {
		t.Fatalf("windowed retarget rejected: %08x -> %08x", tip.Bits(),
			newBits)
	}
}
