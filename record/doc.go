// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package record implements signed value-transfer records.

A record moves an amount from a sender to a recipient.  Accounts are
identified by the hex encoding of their compressed secp256k1 public key, so
holding the private key for an address is what authorizes spending from it.

Every record has a content hash computed over the sender, recipient and amount
using a length-prefixed encoding, which guarantees that distinct field values
never produce the same preimage.  Signatures are DER-encoded ECDSA signatures
over that content hash.

A record whose sender is the mint sentinel creates new value.  Mint records do
not carry signatures and are always considered valid, so they must only ever be
created internally by the ledger when paying mining rewards.

# Errors

Errors returned by this package are of type record.Error and support
errors.Is and errors.As against the exported ErrorKind values.
*/
package record
