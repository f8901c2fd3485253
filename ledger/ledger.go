// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrledger/block"
	"github.com/decred/dcrledger/record"
)

// Config is a descriptor containing the ledger configuration.
type Config struct {
	// Params defines the ledger parameters.  The defaults returned by
	// DefaultParams are used when it is nil.
	Params *Params

	// BlockMined is invoked with each newly mined block and its height after
	// it has been appended to the chain.  It is optional.
	BlockMined func(b *block.Block, height int64)

	// Now returns the current time used to timestamp new blocks.  It
	// defaults to time.Now.
	Now func() time.Time
}

// Ledger is a chain of mined blocks rooted at a fixed genesis block together
// with a queue of records waiting to be mined.
//
// It is safe for concurrent access.  Submissions and mining are serialized,
// while balance and validity queries may run alongside mining since they only
// ever observe fully appended blocks.
type Ledger struct {
	params     Params
	blockMined func(*block.Block, int64)
	now        func() time.Time

	// mineMtx serializes mining so each new block builds on the tip that
	// was current when mining started.
	mineMtx sync.Mutex

	// These fields are protected by mtx.  Blocks are only ever appended to
	// the chain, and pending records are only ever appended except when a
	// newly mined block removes the prefix it included.
	mtx     sync.RWMutex
	chain   []*block.Block
	pending []*record.Record
}

// New returns a ledger that contains only the genesis block.  A nil config
// uses the default parameters.
func New(cfg *Config) (*Ledger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	params := cfg.Params
	if params == nil {
		params = DefaultParams()
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Ledger{
		params:     *params,
		blockMined: cfg.BlockMined,
		now:        now,
		chain:      []*block.Block{params.GenesisBlock()},
	}, nil
}

// Params returns a copy of the parameters the ledger was created with.
func (l *Ledger) Params() Params {
	return l.params
}

// snapshot returns the chain as of the time of the call.  Blocks are only
// appended, so the returned slice is never modified by the ledger afterward.
func (l *Ledger) snapshot() []*block.Block {
	l.mtx.RLock()
	chain := l.chain[:len(l.chain):len(l.chain)]
	l.mtx.RUnlock()
	return chain
}

// Height returns the height of the most recent block.  The genesis block is at
// height zero.
func (l *Ledger) Height() int64 {
	l.mtx.RLock()
	height := int64(len(l.chain) - 1)
	l.mtx.RUnlock()
	return height
}

// BestBlock returns the most recent block in the chain.
func (l *Ledger) BestBlock() *block.Block {
	l.mtx.RLock()
	tip := l.chain[len(l.chain)-1]
	l.mtx.RUnlock()
	return tip
}

// Blocks returns the blocks of the chain in order starting with the genesis
// block.  The returned slice is a copy, but the blocks are shared with the
// ledger and must not be modified.
func (l *Ledger) Blocks() []*block.Block {
	chain := l.snapshot()
	blocks := make([]*block.Block, len(chain))
	copy(blocks, chain)
	return blocks
}

// PendingRecords returns a copy of the queue of records that will be included
// in the next mined block, in inclusion order.
func (l *Ledger) PendingRecords() []*record.Record {
	l.mtx.RLock()
	pending := make([]*record.Record, len(l.pending))
	copy(pending, l.pending)
	l.mtx.RUnlock()
	return pending
}

// checkRecord ensures the provided record is complete and correctly signed by
// its sender.
func checkRecord(rec *record.Record) error {
	if rec == nil {
		return ruleError(ErrMissingSender, "record is nil")
	}

	switch {
	case rec.Sender.IsMint():
		str := fmt.Sprintf("mint record to %s may not be submitted",
			rec.Recipient)
		return ruleError(ErrMintSubmission, str)

	case rec.Sender.IsZero():
		str := fmt.Sprintf("record to %s has no sender", rec.Recipient)
		return ruleError(ErrMissingSender, str)

	case rec.Recipient == "":
		str := fmt.Sprintf("record from %s has no recipient", rec.Sender)
		return ruleError(ErrMissingRecipient, str)

	case rec.Amount < 0:
		str := fmt.Sprintf("record from %s moves negative amount %v",
			rec.Sender, rec.Amount)
		return ruleError(ErrNegativeAmount, str)
	}

	valid, err := rec.IsValid()
	if err != nil {
		if errors.Is(err, record.ErrMissingSignature) {
			return RuleError{
				Description: err.Error(),
				Err:         fmt.Errorf("%w: %w", ErrUnsignedRecord, err),
			}
		}
		return err
	}
	if !valid {
		str := fmt.Sprintf("record %v does not carry a valid signature by "+
			"its sender", rec)
		return ruleError(ErrInvalidSignature, str)
	}

	return nil
}

// AddRecord verifies the provided record and queues a copy of it for inclusion
// in the next mined block.  Later changes to the provided record do not affect
// the ledger.
//
// A RuleError is returned when the record has no sender or recipient, is a
// mint record, moves a negative amount, or is not validly signed by its
// sender.  The pending queue is unchanged in that case.
func (l *Ledger) AddRecord(rec *record.Record) error {
	if err := checkRecord(rec); err != nil {
		log.Debugf("Rejected record: %v", err)
		return err
	}

	owned := rec.Copy()
	l.mtx.Lock()
	l.pending = append(l.pending, owned)
	l.mtx.Unlock()

	log.Tracef("Queued record %v", owned)
	return nil
}

// MinePending mines a block containing every pending record on top of the
// current tip and appends it to the chain.  Afterward, the pending queue holds
// a reward record paying the mining reward to rewardAddr, so the reward for a
// block is only included by the block mined after it.
//
// Mining blocks until a solution is found or the context is done, in which
// case the context error is returned and the ledger is left unchanged.
// Records submitted while mining is in progress remain pending after the
// reward.
func (l *Ledger) MinePending(ctx context.Context, rewardAddr record.Address) (*block.Block, error) {
	l.mineMtx.Lock()
	defer l.mineMtx.Unlock()

	l.mtx.RLock()
	tip := l.chain[len(l.chain)-1]
	records := make([]*record.Record, len(l.pending))
	copy(records, l.pending)
	l.mtx.RUnlock()

	start := time.Now()
	blk := block.New(l.now(), records, tip.Hash)
	attempts, err := blk.Mine(ctx, l.params.Difficulty)
	if err != nil {
		log.Debugf("Mining on top of %v stopped after %d attempts: %v",
			tip.Hash, attempts, err)
		return nil, err
	}

	reward := record.NewReward(rewardAddr, l.params.MiningReward)
	l.mtx.Lock()
	l.chain = append(l.chain, blk)
	height := int64(len(l.chain) - 1)
	arrivals := l.pending[len(records):]
	pending := make([]*record.Record, 0, len(arrivals)+1)
	pending = append(pending, reward)
	l.pending = append(pending, arrivals...)
	l.mtx.Unlock()

	log.Infof("Mined block %v (height %d, nonce %d, %d records, %d "+
		"attempts in %v)", blk.Hash, height, blk.Nonce, len(records),
		attempts, time.Since(start).Round(time.Millisecond))

	if l.blockMined != nil {
		l.blockMined(blk, height)
	}
	return blk, nil
}

// Balance returns the balance of the provided address by replaying every
// record in the chain.  Pending records are not included.
func (l *Ledger) Balance(addr record.Address) dcrutil.Amount {
	sender := record.SenderFrom(addr)
	var balance dcrutil.Amount
	for _, blk := range l.snapshot() {
		for _, rec := range blk.Records {
			if rec.Sender == sender {
				balance -= rec.Amount
			}
			if rec.Recipient == addr {
				balance += rec.Amount
			}
		}
	}
	return balance
}

// RecordsFor returns every record in the chain that the provided address sent
// or received, in chain order.
func (l *Ledger) RecordsFor(addr record.Address) []*record.Record {
	sender := record.SenderFrom(addr)
	var records []*record.Record
	for _, blk := range l.snapshot() {
		for _, rec := range blk.Records {
			if rec.Sender == sender || rec.Recipient == addr {
				records = append(records, rec)
			}
		}
	}
	return records
}

// IsChainValid returns whether every block after the genesis block contains
// only valid records, hashes to its stored hash, and links to the hash of the
// block before it.  The genesis block is trusted as is.
func (l *Ledger) IsChainValid() bool {
	chain := l.snapshot()
	for height := 1; height < len(chain); height++ {
		blk, prev := chain[height], chain[height-1]

		if !blk.HasValidRecords() {
			log.Debugf("Block %v at height %d contains invalid records",
				blk.Hash, height)
			return false
		}
		if computed := blk.ComputeHash(); blk.Hash != computed {
			log.Debugf("Block at height %d has hash %v, but its contents "+
				"hash to %v", height, blk.Hash, computed)
			return false
		}
		if blk.PrevHash != prev.Hash {
			log.Debugf("Block %v at height %d links to %v instead of %v",
				blk.Hash, height, blk.PrevHash, prev.Hash)
			return false
		}
	}
	return true
}
