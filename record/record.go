// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/dcrd/wire"
)

const (
	// pver is the protocol version handed to the wire variable length
	// encoding helpers.  Record encodings do not vary by version.
	pver = 0

	// Sender type markers that prefix the serialized sender so a mint
	// record never shares a preimage with a record from an empty address.
	senderTypeMint    byte = 0x00
	senderTypeAddress byte = 0x01
)

// Record is a transfer of value from a sender to a recipient.  Records with a
// real sender must be signed by the private key behind the sender address
// before they are accepted by a ledger.
type Record struct {
	Sender    Sender
	Recipient Address
	Amount    dcrutil.Amount

	// Signature is the DER-encoded signature over the content hash.  It is
	// nil until the record is signed.
	Signature []byte
}

// New returns an unsigned record transferring amount from sender to recipient.
func New(sender Sender, recipient Address, amount dcrutil.Amount) *Record {
	return &Record{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// NewReward returns a mint record paying amount to the recipient.
func NewReward(recipient Address, amount dcrutil.Amount) *Record {
	return New(Mint(), recipient, amount)
}

// Copy returns a deep copy of the record that shares no memory with the
// original.
func (r *Record) Copy() *Record {
	c := *r
	if r.Signature != nil {
		c.Signature = make([]byte, len(r.Signature))
		copy(c.Signature, r.Signature)
	}
	return &c
}

// serializeContent writes the fields covered by the content hash.  Strings are
// length prefixed and the amount is fixed width, so the encoding is
// unambiguous.
func (r *Record) serializeContent(w io.Writer) error {
	senderType := senderTypeAddress
	if r.Sender.IsMint() {
		senderType = senderTypeMint
	}
	if _, err := w.Write([]byte{senderType}); err != nil {
		return err
	}
	if err := wire.WriteVarString(w, pver, string(r.Sender.addr)); err != nil {
		return err
	}
	if err := wire.WriteVarString(w, pver, string(r.Recipient)); err != nil {
		return err
	}
	var amount [8]byte
	binary.LittleEndian.PutUint64(amount[:], uint64(r.Amount))
	_, err := w.Write(amount[:])
	return err
}

// Serialize writes the record content followed by its length-prefixed
// signature.  This is the encoding committed to by a block hash.
func (r *Record) Serialize(w io.Writer) error {
	if err := r.serializeContent(w); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, pver, r.Signature)
}

// Hash returns the content hash of the record.  The signature is not part of
// the content hash since it is produced over it.
func (r *Record) Hash() chainhash.Hash {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer never fail.
	_ = r.serializeContent(&buf)
	return chainhash.HashH(buf.Bytes())
}

// Sign signs the content hash of the record with the provided private key and
// stores the resulting signature on the record.
//
// An error of kind ErrUnauthorizedSigner is returned when the key does not
// control the sender address, including any attempt to sign a mint record.
func (r *Record) Sign(privKey *secp256k1.PrivateKey) error {
	signer := AddressFromPubKey(privKey.PubKey())
	if r.Sender.IsMint() || signer != r.Sender.addr {
		str := fmt.Sprintf("key for address %s is not authorized to sign "+
			"for sender %s", signer, r.Sender)
		return makeError(ErrUnauthorizedSigner, str)
	}

	hash := r.Hash()
	r.Signature = ecdsa.Sign(privKey, hash[:]).Serialize()
	return nil
}

// IsValid returns whether the record signature is a valid signature of its
// content hash by the sender.  Mint records are always valid.
//
// An error of kind ErrMissingSignature is returned for an unsigned record with
// a real sender.  A signature that is present but malformed or does not verify
// is reported as false without an error.
func (r *Record) IsValid() (bool, error) {
	if r.Sender.IsMint() {
		return true, nil
	}

	if len(r.Signature) == 0 {
		str := fmt.Sprintf("record from %s to %s is not signed", r.Sender,
			r.Recipient)
		return false, makeError(ErrMissingSignature, str)
	}

	pubKey, err := r.Sender.addr.PubKey()
	if err != nil {
		return false, nil
	}
	sig, err := ecdsa.ParseDERSignature(r.Signature)
	if err != nil {
		return false, nil
	}
	hash := r.Hash()
	return sig.Verify(hash[:], pubKey), nil
}

// String returns a human-readable summary of the record.
func (r *Record) String() string {
	return fmt.Sprintf("%s -> %s: %v", r.Sender, r.Recipient, r.Amount)
}
