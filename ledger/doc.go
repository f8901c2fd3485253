// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ledger implements a proof-of-work chain of signed records.

A ledger starts with a fixed genesis block.  Signed records are submitted to a
pending queue, verified on the way in, and mined into a new block on demand.
Every mined block pays its miner through a reward record that is queued behind
it and therefore only lands in the chain with the following block.

Balances and chain validity are always derived by replaying the full chain, so
any edit to a historical block that is not followed by mining it and every
block after it again is detected by IsChainValid.

# Errors

Submission and construction failures are of type ledger.RuleError and support
errors.Is and errors.As against the exported ErrorKind values.  Tamper
detection is reported by IsChainValid returning false rather than an error.

# Logging

The package logs nothing until a logger is supplied with UseLogger.  Each
mined block is announced at the info level.
*/
package ledger
