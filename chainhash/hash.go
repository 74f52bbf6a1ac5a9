// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the fixed-size block/transaction hash type
// shared across the engine's external interfaces.
package chainhash

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in a hash.
const HashSize = 32

// Hash is a 32-byte array used to represent a block hash.  Unlike the
// wire-level hash types found in most full node implementations, the bytes
// here are stored in the same big-endian order they're displayed and
// compared in, matching the "32-byte big-endian hash" wire format this
// engine's callers already pass around (see CheckProofOfWork).
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the hash bytes in
// the big-endian order they are stored in.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// SetBytes sets the bytes which represent the hash.  An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(newHash), HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// NewHash returns a new Hash from a byte slice.  An error is returned if the
// slice is not the correct size.
func NewHash(newHash []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &h, nil
}

// NewHashFromStr creates a Hash from a hash string.  The string should be
// the hexadecimal string of the hash.
func NewHashFromStr(hash string) (*Hash, error) {
	decoded, err := hex.DecodeString(hash)
	if err != nil {
		return nil, err
	}
	return NewHash(decoded)
}
