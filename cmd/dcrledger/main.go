// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrledger/block"
	"github.com/decred/dcrledger/internal/progresslog"
	"github.com/decred/dcrledger/internal/version"
	"github.com/decred/dcrledger/ledger"
	"github.com/decred/dcrledger/record"
	flags "github.com/jessevdk/go-flags"
)

// wallet is an in-memory key pair that takes part in the simulation.
type wallet struct {
	privKey *secp256k1.PrivateKey
	addr    record.Address
}

// newWallets generates the requested number of wallets with random keys.
func newWallets(n uint32) ([]*wallet, error) {
	wallets := make([]*wallet, 0, n)
	for i := uint32(0); i < n; i++ {
		privKey, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, &wallet{
			privKey: privKey,
			addr:    record.AddressFromPubKey(privKey.PubKey()),
		})
	}
	return wallets, nil
}

// submitTransfers submits up to maxTransfers randomly chosen signed transfers
// between the wallets.  Transfers only spend funds that were confirmed in the
// chain and not already spent by another transfer in the same batch, so the
// ledger never observes an overdraft from the simulation.  It returns the
// number of transfers that were accepted.
func submitTransfers(l *ledger.Ledger, wallets []*wallet, maxTransfers uint32) int {
	spendable := make(map[record.Address]dcrutil.Amount, len(wallets))
	for _, w := range wallets {
		spendable[w.addr] = l.Balance(w.addr)
	}

	var accepted int
	numTransfers := rand.IntN(int(maxTransfers) + 1)
	for i := 0; i < numTransfers; i++ {
		from := wallets[rand.IntN(len(wallets))]
		available := spendable[from.addr]
		if available <= 0 {
			continue
		}
		to := wallets[rand.IntN(len(wallets)-1)]
		if to == from {
			to = wallets[len(wallets)-1]
		}
		amount := dcrutil.Amount(rand.Int64N(int64(available)) + 1)

		rec := record.New(record.SenderFrom(from.addr), to.addr, amount)
		if err := rec.Sign(from.privKey); err != nil {
			mainLog.Errorf("Unable to sign transfer: %v", err)
			continue
		}
		if err := l.AddRecord(rec); err != nil {
			mainLog.Warnf("Transfer rejected: %v", err)
			continue
		}
		spendable[from.addr] -= amount
		accepted++
	}
	return accepted
}

// logSummary logs the final balance of every wallet and whether the chain is
// valid.
func logSummary(l *ledger.Ledger, wallets []*wallet) {
	mainLog.Infof("Chain height %d, best block %v", l.Height(),
		l.BestBlock().Hash)
	for i, w := range wallets {
		mainLog.Infof("Wallet %d (%s): balance %v, %d records", i, w.addr,
			l.Balance(w.addr), len(l.RecordsFor(w.addr)))
	}
	if pending := l.PendingRecords(); len(pending) > 0 {
		mainLog.Infof("%d records remain pending", len(pending))
	}
	mainLog.Infof("Chain valid: %v", l.IsChainValid())
}

// dcrledgerMain is the real main function for dcrledger.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func dcrledgerMain() error {
	// Load configuration and parse command line.
	cfg, _, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	// Show version and exit if the version flag was specified.
	if cfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n", "dcrledger",
			version.String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	}

	if cfg.LogFile != "" {
		if err := initLogRotator(cfg.LogFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Get a context that will be canceled when a shutdown signal has been
	// triggered either from an OS signal such as SIGINT (Ctrl+C).
	ctx := shutdownListener()

	// Show version at startup.
	mainLog.Infof("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// Enable cpu profiling if requested.
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			mainLog.Errorf("Unable to create cpu profile: %v", err)
			return err
		}
		pprof.StartCPUProfile(f)
		defer f.Close()
		defer pprof.StopCPUProfile()
	}

	// The funding block and the block that confirms its reward are mined in
	// addition to the requested blocks.
	targetHeight := int64(cfg.Blocks) + 2
	progress := progresslog.New("Mined", minrLog)
	l, err := ledger.New(&ledger.Config{
		Params: cfg.params,
		BlockMined: func(b *block.Block, height int64) {
			progress.LogProgress(b, height, height == targetHeight)
		},
	})
	if err != nil {
		mainLog.Errorf("Unable to create ledger: %v", err)
		return err
	}
	mainLog.Infof("Genesis block %v (difficulty %d, reward %v)",
		l.BestBlock().Hash, cfg.params.Difficulty, cfg.params.MiningReward)

	wallets, err := newWallets(cfg.Wallets)
	if err != nil {
		mainLog.Errorf("Unable to generate wallets: %v", err)
		return err
	}
	for i, w := range wallets {
		mainLog.Debugf("Wallet %d: %s", i, w.addr)
	}

	// The first wallet mines the funding block, whose reward is confirmed by
	// the next block, so transfers have funds to draw on.
	for i := 0; i < 2; i++ {
		if _, err := l.MinePending(ctx, wallets[0].addr); err != nil {
			if errors.Is(err, context.Canceled) {
				logSummary(l, wallets)
				return nil
			}
			mainLog.Errorf("Unable to mine funding block: %v", err)
			return err
		}
	}

	for i := uint32(0); i < cfg.Blocks; i++ {
		if shutdownRequested(ctx) {
			break
		}

		accepted := submitTransfers(l, wallets, cfg.Transfers)
		miner := wallets[rand.IntN(len(wallets))]
		mainLog.Debugf("Mining %d transfers for %s", accepted, miner.addr)
		if _, err := l.MinePending(ctx, miner.addr); err != nil {
			if errors.Is(err, context.Canceled) {
				mainLog.Info("Mining interrupted")
				break
			}
			mainLog.Errorf("Unable to mine block: %v", err)
			return err
		}
	}

	logSummary(l, wallets)
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := dcrledgerMain(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
