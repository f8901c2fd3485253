// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

// MaxDifficulty is the largest supported difficulty.  It is the number of hex
// digits in a hash, so a block at this difficulty must hash to zero.
const MaxDifficulty = 2 * chainhash.HashSize

// HashToUint256 converts the provided hash to an unsigned 256-bit integer that
// can be used to perform math comparisons.
func HashToUint256(hash *chainhash.Hash) uint256.Uint256 {
	// Hashes are a stream of bytes that do not have any inherent endianness to
	// them, so they are interpreted as little endian for the purposes of
	// treating them as a uint256.  This matches the byte-reversed order of the
	// hash string.
	return *new(uint256.Uint256).SetBytesLE((*[32]byte)(hash))
}

// CheckProofOfWork returns whether the string form of the provided hash begins
// with difficulty zero hex digits.
//
// Each hex digit covers four bits, so this is the case exactly when the
// hash, treated as a little endian number, has its top 4*difficulty bits
// unset.  Difficulties above MaxDifficulty can never be met.
func CheckProofOfWork(hash *chainhash.Hash, difficulty uint8) bool {
	if difficulty == 0 {
		return true
	}
	if difficulty > MaxDifficulty {
		return false
	}

	n := HashToUint256(hash)
	return n.Rsh(256 - 4*uint32(difficulty)).IsZero()
}
