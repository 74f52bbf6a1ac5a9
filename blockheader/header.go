// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockheader defines the subset of the block header the difficulty
// engine consumes and the hashing used to verify its proof of work.
package blockheader

import (
	"bytes"
	"encoding/binary"

	"github.com/EXCCoin/exccd/crypto/blake256"

	"github.com/classic2/diffengine/chainhash"
)

// blockHeaderLen is the serialized length of a block header: version 4
// bytes, previous block hash 32 bytes, merkle root 32 bytes, timestamp 8
// bytes, bits 4 bytes, and nonce 8 bytes.
const blockHeaderLen = 88

// BlockHeader holds the header fields the difficulty engine consumes.  The
// timestamp is Unix seconds and Bits is the claimed compact difficulty
// target.
type BlockHeader struct {
	// Version of the block.
	Version int32

	// PrevBlock is the hash of the previous block header in the chain.
	PrevBlock chainhash.Hash

	// MerkleRoot is the merkle tree reference to the transactions for the
	// block.
	MerkleRoot chainhash.Hash

	// Timestamp is the time the block was created, in Unix seconds.
	Timestamp int64

	// Bits is the difficulty target for the block in compact form.
	Bits uint32

	// Nonce is used to generate the block hash.
	Nonce uint64
}

// serialize encodes the header into its canonical byte form.
func (h *BlockHeader) serialize() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, blockHeaderLen))
	binary.Write(buf, binary.LittleEndian, h.Version)
	buf.Write(h.PrevBlock[:])
	buf.Write(h.MerkleRoot[:])
	binary.Write(buf, binary.LittleEndian, h.Timestamp)
	binary.Write(buf, binary.LittleEndian, h.Bits)
	binary.Write(buf, binary.LittleEndian, h.Nonce)
	return buf.Bytes()
}

// Hash computes the block hash of the header using BLAKE-256 over its
// serialized form.
func (h *BlockHeader) Hash() chainhash.Hash {
	return chainhash.Hash(blake256.Sum256(h.serialize()))
}
