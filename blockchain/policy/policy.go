// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy implements the non-consensus fast-block relay throttling
// rules.  Blocks that arrive sooner after their parent than the configured
// minimum spacing are scored and their relay may be delayed or suppressed;
// none of this affects block validity.
package policy

import (
	"github.com/classic2/diffengine/blockchain"
	"github.com/classic2/diffengine/blockheader"
)

// DefaultMinBlockSpacing is the default minimum number of seconds between
// blocks before a block is considered fast.
const DefaultMinBlockSpacing = 120

// Config holds the node operator's relay throttling settings.  The caller
// resolves these from its own option handling and passes them in; the
// package reads no global state.
type Config struct {
	// MinBlockSpacing is the minimum number of seconds between a block
	// and its parent before the block is considered fast.  A value of
	// zero or less disables fast-block detection entirely.
	MinBlockSpacing int64

	// RespectBlockSpacing indicates the local miner should delay its own
	// block templates to honor MinBlockSpacing.  It is advisory and
	// consulted by the mining code, not by this package.
	RespectBlockSpacing bool
}

// DefaultConfig returns the relay throttling settings used when the
// operator has not overridden them.
func DefaultConfig() *Config {
	return &Config{MinBlockSpacing: DefaultMinBlockSpacing}
}

// IsFastBlock reports whether the block came too quickly after its parent.
func IsFastBlock(header *blockheader.BlockHeader, prev blockchain.BlockIndexNode, cfg *Config) bool {
	if prev == nil {
		return false
	}
	if cfg.MinBlockSpacing <= 0 {
		return false
	}

	return header.Timestamp-prev.Time() < cfg.MinBlockSpacing
}

// FastBlockScore returns a discouragement score for the block.  Normal
// blocks score 0, blocks with a non-positive spacing score 1000, and fast
// blocks score up to 100 in proportion to how much faster than the minimum
// spacing they arrived.
func FastBlockScore(header *blockheader.BlockHeader, prev blockchain.BlockIndexNode, cfg *Config) int {
	if !IsFastBlock(header, prev, cfg) {
		return 0
	}

	timeDiff := header.Timestamp - prev.Time()
	if timeDiff <= 0 {
		// Invalid timestamp.
		return 1000
	}

	// Score based on how much faster than minimum.
	score := (cfg.MinBlockSpacing - timeDiff) * 100 / cfg.MinBlockSpacing
	if score > 100 {
		score = 100
	}
	return int(score)
}

// ShouldRelayBlock reports whether the block should be relayed immediately.
// Extremely fast blocks are held back; everything else relays normally.
func ShouldRelayBlock(header *blockheader.BlockHeader, prev blockchain.BlockIndexNode, cfg *Config) bool {
	return FastBlockScore(header, prev, cfg) <= 75
}

// RelayDelay returns the number of seconds to delay relaying the block:
// 30% of its score, so up to 30 seconds for fast blocks and 300 seconds for
// blocks with a non-positive spacing.
func RelayDelay(header *blockheader.BlockHeader, prev blockchain.BlockIndexNode, cfg *Config) int {
	score := FastBlockScore(header, prev, cfg)
	if score == 0 {
		return 0
	}

	return score * 30 / 100
}
