// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/classic2/diffengine/blockchain/standalone"
	"github.com/classic2/diffengine/blockheader"
	"github.com/classic2/diffengine/chaincfg"
	"github.com/classic2/diffengine/chainhash"
)

// CheckProofOfWork reports whether the given block hash satisfies the target
// difficulty represented by bits.  The claimed target must decode without
// the negative or overflow flags, must be nonzero, and must not exceed the
// network proof-of-work limit; the hash, interpreted as a big-endian 256-bit
// unsigned integer, must not exceed the decoded target.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32, params *chaincfg.Params) bool {
	err := standalone.CheckProofOfWork(hash, bits, params.PowLimit)
	if err != nil {
		log.Debugf("proof of work check failed: %v", err)
		return false
	}
	return true
}

// CheckHeaderProofOfWork reports whether the given block header's hash
// satisfies the target difficulty the header itself claims.
func CheckHeaderProofOfWork(header *blockheader.BlockHeader, params *chaincfg.Params) bool {
	hash := header.Hash()
	return CheckProofOfWork(&hash, header.Bits, params)
}
