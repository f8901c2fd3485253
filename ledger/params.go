// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrledger/block"
)

const (
	// DefaultDifficulty is the default number of leading zero hex digits a
	// mined block hash must have.
	DefaultDifficulty = 2

	// DefaultMiningReward is the default amount paid to the miner of each
	// block.
	DefaultMiningReward = dcrutil.Amount(dcrutil.AtomsPerCoin)
)

// genesisTimestamp is the fixed creation time of the genesis block.
var genesisTimestamp = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)

// Params defines the parameters of a ledger.  They are fixed once the ledger
// is created.
type Params struct {
	// Difficulty is the number of leading zero hex digits the hash of every
	// mined block must have.
	Difficulty uint8

	// MiningReward is the amount paid to the miner of each block.
	MiningReward dcrutil.Amount

	// GenesisTimestamp is the timestamp of the genesis block.  The genesis
	// block is trusted as is by chain validation, so ledgers created with
	// different genesis timestamps define different, incompatible chains.
	// DefaultParams always uses the same fixed timestamp.
	GenesisTimestamp time.Time
}

// DefaultParams returns a new copy of the default ledger parameters.
func DefaultParams() *Params {
	return &Params{
		Difficulty:       DefaultDifficulty,
		MiningReward:     DefaultMiningReward,
		GenesisTimestamp: genesisTimestamp,
	}
}

// GenesisBlock returns the genesis block described by the parameters.  It has
// no records and a zero previous hash, and it is never mined.
func (p *Params) GenesisBlock() *block.Block {
	return block.New(p.GenesisTimestamp, nil, chainhash.Hash{})
}

// validate ensures the parameters are in range.
func (p *Params) validate() error {
	if p.Difficulty > block.MaxDifficulty {
		str := fmt.Sprintf("difficulty %d exceeds the maximum of %d",
			p.Difficulty, block.MaxDifficulty)
		return ruleError(ErrInvalidParams, str)
	}
	if p.MiningReward < 0 {
		str := fmt.Sprintf("mining reward %v is negative", p.MiningReward)
		return ruleError(ErrInvalidParams, str)
	}
	return nil
}
