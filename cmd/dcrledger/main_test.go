// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"

	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrledger/ledger"
)

// TestSubmitTransfers ensures randomly submitted transfers never spend more
// than the confirmed balance of their sender and that the resulting chain is
// valid with the total supply equal to the confirmed rewards.
func TestSubmitTransfers(t *testing.T) {
	params := ledger.DefaultParams()
	params.Difficulty = 0
	l, err := ledger.New(&ledger.Config{Params: params})
	if err != nil {
		t.Fatalf("unexpected error creating ledger: %v", err)
	}
	wallets, err := newWallets(4)
	if err != nil {
		t.Fatalf("unexpected error generating wallets: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := l.MinePending(ctx, wallets[0].addr); err != nil {
			t.Fatalf("unexpected error mining funding block: %v", err)
		}
	}

	const numBlocks = 20
	for i := 0; i < numBlocks; i++ {
		submitTransfers(l, wallets, 8)
		if _, err := l.MinePending(ctx, wallets[i%len(wallets)].addr); err != nil {
			t.Fatalf("unexpected error mining block %d: %v", i, err)
		}
		for j, w := range wallets {
			if balance := l.Balance(w.addr); balance < 0 {
				t.Fatalf("wallet %d overdrawn after block %d: %v", j, i,
					balance)
			}
		}
	}

	// Every block but the most recent one has its reward confirmed.
	var total dcrutil.Amount
	for _, w := range wallets {
		total += l.Balance(w.addr)
	}
	confirmedRewards := dcrutil.Amount(l.Height()-1) * params.MiningReward
	if total != confirmedRewards {
		t.Fatalf("unexpected total supply -- got %v, want %v", total,
			confirmedRewards)
	}
	if !l.IsChainValid() {
		t.Fatal("chain built from random transfers is not valid")
	}
}
