// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"fmt"

	"github.com/classic2/diffengine/chainhash"
)

// checkProofOfWorkRange ensures the provided target difficulty is in min/max
// range per the provided proof-of-work limit.
func checkProofOfWorkRange(diffBits uint32, powLimit Uint256) (Uint256, error) {
	// The target difficulty must be larger than zero and not overflow and be
	// less than the maximum value that can be represented by a uint256.
	target, isNegative, isOverflow := DiffBitsToUint256(diffBits)
	if isNegative {
		str := fmt.Sprintf("target difficulty bits %08x is a negative value",
			diffBits)
		return Uint256{}, ruleError(ErrUnexpectedDifficulty, str)
	}
	if isOverflow {
		str := fmt.Sprintf("target difficulty bits %08x is higher than the "+
			"max limit %x", diffBits, powLimit.Big())
		return Uint256{}, ruleError(ErrUnexpectedDifficulty, str)
	}
	if target.IsZero() {
		str := "target difficulty is zero"
		return Uint256{}, ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must not exceed the maximum allowed.
	if target.Cmp(powLimit) > 0 {
		str := fmt.Sprintf("target difficulty of %x is higher than max of %x",
			target.Big(), powLimit.Big())
		return Uint256{}, ruleError(ErrUnexpectedDifficulty, str)
	}

	return target, nil
}

// CheckProofOfWorkRange ensures the provided target difficulty represented by
// the given compact bits is in min/max range per the provided proof-of-work
// limit.
func CheckProofOfWorkRange(diffBits uint32, powLimit Uint256) error {
	_, err := checkProofOfWorkRange(diffBits, powLimit)
	return err
}

// CheckProofOfWork ensures the provided hash is less than or equal to the
// target difficulty represented by the given compact bits, and that the
// target is within the valid range determined by the provided proof-of-work
// limit.  The hash is interpreted as a big-endian 256-bit unsigned integer.
func CheckProofOfWork(powHash *chainhash.Hash, diffBits uint32, powLimit Uint256) error {
	target, err := checkProofOfWorkRange(diffBits, powLimit)
	if err != nil {
		return err
	}

	// The block hash must be less than or equal to the claimed target.
	if HashToUint256(*powHash).Cmp(target) > 0 {
		str := fmt.Sprintf("block hash of %x is higher than expected max of %x",
			powHash, target.Big())
		return ruleError(ErrHighHash, str)
	}

	return nil
}
