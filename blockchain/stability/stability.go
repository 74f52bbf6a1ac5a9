// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stability implements non-consensus chain health monitoring: stall
// detection, suspicious reorg timing detection, a crude hash rate estimate,
// and a signal for when the emergency difficulty rules are about to engage.
// The wall clock is passed in explicitly so the signals stay deterministic
// under test.
package stability

import (
	"github.com/jrick/bitset"

	"github.com/classic2/diffengine/blockchain"
	"github.com/classic2/diffengine/blockchain/standalone"
	"github.com/classic2/diffengine/chaincfg"
)

const (
	// reorgWindow is the number of recent blocks examined for suspicious
	// timing patterns.
	reorgWindow = 20

	// reorgMinBlocks is the minimum number of recent blocks required
	// before the reorg detector will report anything.
	reorgMinBlocks = 10

	// DefaultHashRateBlocks is the default number of recent blocks used
	// by the hash rate estimate.
	DefaultHashRateBlocks = 120
)

// targetSpacing returns the intended seconds between blocks for the regime
// active at the tip's height.
func targetSpacing(tip blockchain.BlockIndexNode, params *chaincfg.Params) int64 {
	if tip.Height() >= params.NewPowDiffHeight {
		return params.PostBlossomPowTargetSpacing
	}
	return params.PowTargetSpacing
}

// IsChainStuck reports whether the chain tip is old enough that the network
// appears to have stopped producing blocks.  The threshold is four target
// spacings under the legacy regime and three under the windowed regime,
// which retargets often enough that even three missed spacings is unusual.
func IsChainStuck(tip blockchain.BlockIndexNode, params *chaincfg.Params, now int64) bool {
	if tip == nil {
		return false
	}

	timeDiff := now - tip.Time()
	if tip.Height() < params.NewPowDiffHeight {
		return timeDiff > params.PowTargetSpacing*4
	}
	return timeDiff > params.PostBlossomPowTargetSpacing*3
}

// SuspiciousReorg reports whether the recent blocks show the rapid-fire
// timing pattern typical of a privately mined chain being released.  It
// examines up to reorgWindow recent blocks, requires at least
// reorgMinBlocks of history, and flags when more than 30% of them follow
// their parent by less than a third of the target spacing.
func SuspiciousReorg(tip blockchain.BlockIndexNode, params *chaincfg.Params) bool {
	suspicious, _ := suspiciousReorg(tip, params)
	return suspicious
}

// suspiciousReorg implements SuspiciousReorg and additionally returns a
// bitmask with a bit set for each position in the examined window whose
// block followed its parent too quickly, newest block first.  The mask is
// what the metrics log line reports.
func suspiciousReorg(tip blockchain.BlockIndexNode, params *chaincfg.Params) (bool, bitset.Bytes) {
	if tip == nil || tip.Height() < 100 {
		return false, nil
	}

	// Collect timestamps from the recent blocks.
	blockTimes := make([]int64, 0, reorgWindow)
	node := tip
	for i := 0; i < reorgWindow && node != nil; i++ {
		blockTimes = append(blockTimes, node.Time())
		node = node.Parent()
	}

	if len(blockTimes) < reorgMinBlocks {
		return false, nil
	}

	// Mark which blocks followed their parent too quickly.
	spacing := targetSpacing(tip, params)
	rapid := bitset.NewBytes(len(blockTimes))
	rapidBlocks := 0
	for i := 1; i < len(blockTimes); i++ {
		fast := blockTimes[i-1]-blockTimes[i] < spacing/3
		rapid.SetBool(i-1, fast)
		if fast {
			rapidBlocks++
		}
	}

	return rapidBlocks > len(blockTimes)*3/10, rapid
}

// EstimateHashRate returns a rough estimate of the network hash rate in
// hashes per second derived from the targets and elapsed time of the most
// recent nBlocks blocks.  It returns 0 when there is not enough history or
// the elapsed time is not positive.
func EstimateHashRate(tip blockchain.BlockIndexNode, params *chaincfg.Params, nBlocks int64) float64 {
	if tip == nil || tip.Height() < nBlocks || nBlocks <= 0 {
		return 0
	}

	var totalWork standalone.Uint256
	node := tip
	for i := int64(0); i < nBlocks && node.Parent() != nil; i++ {
		target, _, _ := standalone.DiffBitsToUint256(node.Bits())
		totalWork = totalWork.Add(target)
		node = node.Parent()
	}

	timeDiff := tip.Time() - node.Time()
	if timeDiff <= 0 {
		return 0
	}

	avgWork, err := totalWork.DivUint64(uint64(nBlocks))
	if err != nil {
		return 0
	}

	// The compact encoding collapses the average to a float-like value
	// that is cheap to carry into floating point.  The result is a crude
	// monitoring signal, not an accurate difficulty-derived figure.
	workDouble := float64(standalone.Uint256ToDiffBits(avgWork))
	return workDouble / float64(timeDiff) * float64(nBlocks)
}

// EmergencyNeeded reports whether the gap since the tip is large enough
// that the windowed regime's emergency relaxation would engage on the next
// candidate header.  It always reports false under the legacy regime, which
// has no emergency rule.
func EmergencyNeeded(tip blockchain.BlockIndexNode, params *chaincfg.Params, now int64) bool {
	if tip == nil {
		return false
	}

	if tip.Height() < params.NewPowDiffHeight {
		return false
	}

	return now-tip.Time() > params.PostBlossomPowTargetSpacing*6
}

// Metrics bundles the monitor's signals along with the raw quantities they
// were derived from.
type Metrics struct {
	Height             int64
	TimeSinceLastBlock int64
	TargetSpacing      int64
	HashRate           float64
	Stuck              bool
	PotentialAttack    bool
	EmergencyNeeded    bool

	// RapidBlockMask has a bit set for each block in the reorg detection
	// window that followed its parent too quickly, newest block first.
	// It is nil when there was not enough history to examine.
	RapidBlockMask bitset.Bytes
}

// GatherMetrics evaluates all of the monitor's signals against the given
// tip at the given wall-clock time.
func GatherMetrics(tip blockchain.BlockIndexNode, params *chaincfg.Params, now int64) Metrics {
	suspicious, rapidMask := suspiciousReorg(tip, params)
	return Metrics{
		Height:             tip.Height(),
		TimeSinceLastBlock: now - tip.Time(),
		TargetSpacing:      targetSpacing(tip, params),
		HashRate:           EstimateHashRate(tip, params, DefaultHashRateBlocks),
		Stuck:              IsChainStuck(tip, params, now),
		PotentialAttack:    suspicious,
		EmergencyNeeded:    EmergencyNeeded(tip, params, now),
		RapidBlockMask:     rapidMask,
	}
}

// yesNo formats a boolean the way the metrics log line reports signals.
func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

// LogMetrics evaluates and logs all of the monitor's signals in a single
// line.  It is advisory only and never influences consensus.
func LogMetrics(tip blockchain.BlockIndexNode, params *chaincfg.Params, now int64) {
	if tip == nil {
		return
	}

	m := GatherMetrics(tip, params, now)
	log.Infof("Chain stability metrics: height=%d, timeSinceLastBlock=%ds "+
		"(target=%ds), hashRate=%.2e H/s, stuck=%s, potentialAttack=%s "+
		"(rapidMask=%x), emergencyNeeded=%s", m.Height, m.TimeSinceLastBlock,
		m.TargetSpacing, m.HashRate, yesNo(m.Stuck), yesNo(m.PotentialAttack),
		[]byte(m.RapidBlockMask), yesNo(m.EmergencyNeeded))
}
