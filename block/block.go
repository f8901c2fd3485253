// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/wire"
	"github.com/decred/dcrledger/record"
)

const (
	// pver is the protocol version handed to the wire variable length
	// encoding helpers.
	pver = 0

	// nonceSerSize is the size of the serialized nonce.  The nonce is always
	// the final field of the serialized block so the mining loop can update
	// it in place.
	nonceSerSize = 8

	// ctxCheckInterval is the number of hashes computed between checks for
	// cancellation while mining.
	ctxCheckInterval = 65535
)

// Block is an ordered batch of records linked to the block before it by hash.
type Block struct {
	// Timestamp is the time the block was created.
	Timestamp time.Time

	// Records are the records included in the block.  Their order is part
	// of the block hash.
	Records []*record.Record

	// PrevHash is the hash of the previous block in the chain.  It is the
	// zero hash for the genesis block.
	PrevHash chainhash.Hash

	// Nonce is varied by the mining process until the block hash satisfies
	// the difficulty.
	Nonce uint64

	// Hash is the hash of the block as of the last time it was computed.
	Hash chainhash.Hash
}

// New returns a block with a nonce of zero and its hash computed accordingly.
// The block takes ownership of the provided records slice.
func New(timestamp time.Time, records []*record.Record, prevHash chainhash.Hash) *Block {
	b := &Block{
		Timestamp: timestamp,
		Records:   records,
		PrevHash:  prevHash,
	}
	b.Hash = b.ComputeHash()
	return b
}

// Serialize writes the canonical encoding of the block that its hash commits
// to: the previous hash, the timestamp in nanoseconds, the count-prefixed
// records in order, and finally the nonce.
func (b *Block) Serialize(w io.Writer) error {
	if _, err := w.Write(b.PrevHash[:]); err != nil {
		return err
	}

	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(b.Timestamp.UnixNano()))
	if _, err := w.Write(scratch[:]); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, pver, uint64(len(b.Records))); err != nil {
		return err
	}
	for _, rec := range b.Records {
		if err := rec.Serialize(w); err != nil {
			return err
		}
	}

	binary.LittleEndian.PutUint64(scratch[:], b.Nonce)
	_, err := w.Write(scratch[:])
	return err
}

// bytes returns the serialized block.
func (b *Block) bytes() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer never fail.
	_ = b.Serialize(&buf)
	return buf.Bytes()
}

// ComputeHash returns the hash of the block from its current contents.  It
// does not update the Hash field.
func (b *Block) ComputeHash() chainhash.Hash {
	return chainhash.Hash(blake256.Sum256(b.bytes()))
}

// Mine increments the nonce and recomputes the block hash until the hash
// satisfies the provided difficulty, and returns the number of nonces that
// were tried.  A difficulty of zero is met immediately without changing the
// nonce.
//
// This is a CPU bound search.  The context is checked periodically and its
// error is returned when it is done before a solution is found, in which case
// the block is left in an unsolved state.
func (b *Block) Mine(ctx context.Context, difficulty uint8) (uint64, error) {
	if difficulty > MaxDifficulty {
		str := fmt.Sprintf("difficulty %d exceeds the maximum of %d",
			difficulty, MaxDifficulty)
		return 0, makeError(ErrDifficultyRange, str)
	}

	// Serialize the block once so only the nonce bytes need to be updated
	// in the loop below.
	serialized := b.bytes()
	nonceOffset := len(serialized) - nonceSerSize
	b.Hash = chainhash.Hash(blake256.Sum256(serialized))

	var attempts uint64
	for !CheckProofOfWork(&b.Hash, difficulty) {
		if attempts > 0 && attempts%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return attempts, ctx.Err()
			default:
			}
		}

		b.Nonce++
		binary.LittleEndian.PutUint64(serialized[nonceOffset:], b.Nonce)
		b.Hash = chainhash.Hash(blake256.Sum256(serialized))
		attempts++
	}

	return attempts, nil
}

// HasValidRecords returns whether every record in the block is valid.  An
// unsigned record with a real sender counts as invalid.
func (b *Block) HasValidRecords() bool {
	for _, rec := range b.Records {
		valid, err := rec.IsValid()
		if err != nil || !valid {
			return false
		}
	}
	return true
}

// String returns a human-readable summary of the block.
func (b *Block) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Block %s", b.Hash))
	builder.WriteString(fmt.Sprintf("\n\tPrevHash: %s", b.PrevHash))
	builder.WriteString(fmt.Sprintf("\n\tTimestamp: %s",
		b.Timestamp.UTC().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("\n\tNonce: %d", b.Nonce))
	builder.WriteString(fmt.Sprintf("\n\tRecords: %d", len(b.Records)))
	for _, rec := range b.Records {
		builder.WriteString(fmt.Sprintf("\n\t\t%s", rec))
	}
	return builder.String()
}
