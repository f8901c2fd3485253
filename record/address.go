// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Address identifies an account by the hex-encoded compressed secp256k1 public
// key that controls it.
type Address string

// AddressFromPubKey returns the address controlled by the provided public key.
func AddressFromPubKey(pubKey *secp256k1.PublicKey) Address {
	return Address(hex.EncodeToString(pubKey.SerializeCompressed()))
}

// PubKey decodes and parses the public key the address represents.
func (a Address) PubKey() (*secp256k1.PublicKey, error) {
	pkBytes, err := hex.DecodeString(string(a))
	if err != nil {
		return nil, err
	}
	return secp256k1.ParsePubKey(pkBytes)
}

// Sender identifies the source of the value moved by a record.  It is either a
// real account address or the mint sentinel used by reward records.
//
// The zero value is an absent sender, which is neither.
type Sender struct {
	mint bool
	addr Address
}

// Mint returns the sentinel sender of records that create new value.
func Mint() Sender {
	return Sender{mint: true}
}

// SenderFrom returns a sender for the provided account address.
func SenderFrom(addr Address) Sender {
	return Sender{addr: addr}
}

// IsMint returns whether the sender is the mint sentinel.
func (s Sender) IsMint() bool {
	return s.mint
}

// IsZero returns whether the sender is absent, meaning it is neither the mint
// sentinel nor a non-empty address.
func (s Sender) IsZero() bool {
	return !s.mint && s.addr == ""
}

// Address returns the account address of the sender.  It is empty for the
// mint sentinel.
func (s Sender) Address() Address {
	return s.addr
}

// String returns the sender address or "none" for the mint sentinel.
func (s Sender) String() string {
	if s.mint {
		return "none"
	}
	return string(s.addr)
}
