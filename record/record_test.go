// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/decred/dcrd/dcrutil/v4"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected. It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

var (
	// aliceKey and bobKey are fixed keys used throughout the tests.
	aliceKey = secp256k1.PrivKeyFromBytes(hexToBytes("a11b0a4e1a132305652e" +
		"e7a8eb7848f6ad5ea381e3ce20a2c086a2e388230811"))
	bobKey = secp256k1.PrivKeyFromBytes(hexToBytes("eaf02ca348c524e6392655" +
		"ba4d29603cd1a7347d9d65cfe93ce1ebffdca22694"))

	alice = AddressFromPubKey(aliceKey.PubKey())
	bob   = AddressFromPubKey(bobKey.PubKey())
)

// TestAddressRoundTrip ensures an address parses back to the public key it was
// created from and that malformed addresses are rejected.
func TestAddressRoundTrip(t *testing.T) {
	t.Parallel()

	pubKey, err := alice.PubKey()
	if err != nil {
		t.Fatalf("unexpected error parsing address: %v", err)
	}
	if !pubKey.IsEqual(aliceKey.PubKey()) {
		t.Fatalf("mismatched public key -- got %x, want %x",
			pubKey.SerializeCompressed(),
			aliceKey.PubKey().SerializeCompressed())
	}
	if len(alice) != 2*secp256k1.PubKeyBytesLenCompressed {
		t.Fatalf("unexpected address length %d", len(alice))
	}

	for _, addr := range []Address{"", "zz", "02abcd"} {
		if _, err := addr.PubKey(); err == nil {
			t.Errorf("address %q: did not receive expected error", addr)
		}
	}
}

// TestSender ensures the sender variants report the expected properties.
func TestSender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sender   Sender
		wantMint bool
		wantZero bool
		wantAddr Address
		wantStr  string
	}{{
		name:     "mint",
		sender:   Mint(),
		wantMint: true,
		wantStr:  "none",
	}, {
		name:     "real sender",
		sender:   SenderFrom(alice),
		wantAddr: alice,
		wantStr:  string(alice),
	}, {
		name:     "zero value",
		sender:   Sender{},
		wantZero: true,
	}, {
		name:     "empty address",
		sender:   SenderFrom(""),
		wantZero: true,
	}}

	for _, test := range tests {
		if got := test.sender.IsMint(); got != test.wantMint {
			t.Errorf("%s: unexpected mint flag -- got %v, want %v",
				test.name, got, test.wantMint)
		}
		if got := test.sender.IsZero(); got != test.wantZero {
			t.Errorf("%s: unexpected zero flag -- got %v, want %v",
				test.name, got, test.wantZero)
		}
		if got := test.sender.Address(); got != test.wantAddr {
			t.Errorf("%s: unexpected address -- got %q, want %q",
				test.name, got, test.wantAddr)
		}
		if got := test.sender.String(); got != test.wantStr {
			t.Errorf("%s: unexpected string -- got %q, want %q",
				test.name, got, test.wantStr)
		}
	}
}

// TestHashEncoding ensures the content hash is deterministic, covers every
// field, and does not collide when bytes shift across field boundaries.
func TestHashEncoding(t *testing.T) {
	t.Parallel()

	base := New(SenderFrom(alice), bob, 12)
	if base.Hash() != New(SenderFrom(alice), bob, 12).Hash() {
		t.Fatal("content hash is not deterministic")
	}

	tests := []struct {
		name string
		a, b *Record
	}{{
		name: "different amount",
		a:    base,
		b:    New(SenderFrom(alice), bob, 13),
	}, {
		name: "swapped parties",
		a:    base,
		b:    New(SenderFrom(bob), alice, 12),
	}, {
		name: "boundary shift between sender and recipient",
		a:    New(SenderFrom("ab"), "c", 1),
		b:    New(SenderFrom("a"), "bc", 1),
	}, {
		name: "boundary shift between recipient and amount",
		a:    New(SenderFrom("a"), "b1", 2),
		b:    New(SenderFrom("a"), "b", 12),
	}, {
		name: "mint versus absent sender",
		a:    NewReward(bob, 1),
		b:    New(Sender{}, bob, 1),
	}}

	for _, test := range tests {
		if test.a.Hash() == test.b.Hash() {
			t.Errorf("%s: records hash identically: %s", test.name,
				spew.Sdump(test.a, test.b))
		}
	}

	// The signature is not part of the content hash.
	signed := New(SenderFrom(alice), bob, 12)
	if err := signed.Sign(aliceKey); err != nil {
		t.Fatalf("unexpected error signing: %v", err)
	}
	if signed.Hash() != base.Hash() {
		t.Fatal("signing changed the content hash")
	}
}

// TestSignVerify ensures records signed by the sender key verify and that
// signing with any other key is refused.
func TestSignVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rec     *Record
		key     *secp256k1.PrivateKey
		wantErr error
	}{{
		name: "alice signs her own transfer",
		rec:  New(SenderFrom(alice), bob, dcrutil.Amount(5)),
		key:  aliceKey,
	}, {
		name: "bob signs his own transfer",
		rec:  New(SenderFrom(bob), alice, dcrutil.Amount(0)),
		key:  bobKey,
	}, {
		name:    "bob signs for alice",
		rec:     New(SenderFrom(alice), bob, dcrutil.Amount(5)),
		key:     bobKey,
		wantErr: ErrUnauthorizedSigner,
	}, {
		name:    "anyone signs a mint record",
		rec:     NewReward(bob, dcrutil.Amount(1)),
		key:     bobKey,
		wantErr: ErrUnauthorizedSigner,
	}}

	for _, test := range tests {
		err := test.rec.Sign(test.key)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				test.wantErr)
			continue
		}
		if test.wantErr != nil {
			var rErr Error
			if !errors.As(err, &rErr) {
				t.Errorf("%s: error is not a record.Error: %T", test.name,
					err)
			}
			if test.rec.Signature != nil {
				t.Errorf("%s: signature set despite failure", test.name)
			}
			continue
		}

		valid, err := test.rec.IsValid()
		if err != nil {
			t.Errorf("%s: unexpected validity error: %v", test.name, err)
			continue
		}
		if !valid {
			t.Errorf("%s: signed record is not valid", test.name)
		}
	}
}

// TestIsValid ensures the validity check handles mint records, missing
// signatures, and present but bad signatures as expected.
func TestIsValid(t *testing.T) {
	t.Parallel()

	signed := func(sender *secp256k1.PrivateKey, recipient Address,
		amount dcrutil.Amount) *Record {

		rec := New(SenderFrom(AddressFromPubKey(sender.PubKey())), recipient,
			amount)
		if err := rec.Sign(sender); err != nil {
			t.Fatalf("unexpected error signing: %v", err)
		}
		return rec
	}

	tamperedAmount := signed(aliceKey, bob, 10)
	tamperedAmount.Amount = 1000

	tamperedRecipient := signed(aliceKey, bob, 10)
	tamperedRecipient.Recipient = alice

	foreignSig := New(SenderFrom(alice), bob, 10)
	hash := foreignSig.Hash()
	foreignSig.Signature = ecdsa.Sign(bobKey, hash[:]).Serialize()

	garbageSig := New(SenderFrom(alice), bob, 10)
	garbageSig.Signature = []byte{0x30, 0x01, 0x02}

	badSender := New(SenderFrom("not-hex"), bob, 10)
	badSender.Signature = signed(aliceKey, bob, 10).Signature

	tests := []struct {
		name    string
		rec     *Record
		want    bool
		wantErr error
	}{{
		name: "unsigned mint record",
		rec:  NewReward(alice, 1),
		want: true,
	}, {
		name: "valid signed record",
		rec:  signed(bobKey, alice, 3),
		want: true,
	}, {
		name:    "unsigned record",
		rec:     New(SenderFrom(alice), bob, 10),
		wantErr: ErrMissingSignature,
	}, {
		name:    "empty signature",
		rec:     &Record{Sender: SenderFrom(alice), Recipient: bob, Signature: []byte{}},
		wantErr: ErrMissingSignature,
	}, {
		name: "amount changed after signing",
		rec:  tamperedAmount,
	}, {
		name: "recipient changed after signing",
		rec:  tamperedRecipient,
	}, {
		name: "signature by a different key",
		rec:  foreignSig,
	}, {
		name: "malformed signature",
		rec:  garbageSig,
	}, {
		name: "sender is not a public key",
		rec:  badSender,
	}}

	for _, test := range tests {
		valid, err := test.rec.IsValid()
		if !errors.Is(err, test.wantErr) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				test.wantErr)
			continue
		}
		if valid != test.want {
			t.Errorf("%s: mismatched validity -- got %v, want %v", test.name,
				valid, test.want)
		}
	}
}

// TestCopy ensures a copied record is equal to the original and that changes
// to the original are not observed through the copy.
func TestCopy(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
	}{{
		name: "signed transfer",
		rec: func() *Record {
			rec := New(SenderFrom(alice), bob, 5)
			if err := rec.Sign(aliceKey); err != nil {
				panic(err)
			}
			return rec
		}(),
	}, {
		name: "unsigned transfer",
		rec:  New(SenderFrom(alice), bob, 5),
	}, {
		name: "reward",
		rec:  NewReward(bob, 1),
	}}

	for _, test := range tests {
		c := test.rec.Copy()
		if c == test.rec || !reflect.DeepEqual(c, test.rec) {
			t.Errorf("%s: mismatched copy -- got %s, want %s", test.name,
				spew.Sdump(c), spew.Sdump(test.rec))
			continue
		}
		wantAmount := test.rec.Amount
		wantValid, _ := test.rec.IsValid()

		test.rec.Amount = 1000
		test.rec.Recipient = alice
		if len(test.rec.Signature) > 0 {
			test.rec.Signature[0] ^= 0xff
		}
		if c.Amount != wantAmount || c.Recipient != bob {
			t.Errorf("%s: copy observed changes to the original: %v",
				test.name, c)
			continue
		}
		if gotValid, _ := c.IsValid(); gotValid != wantValid {
			t.Errorf("%s: copy validity changed -- got %v, want %v",
				test.name, gotValid, wantValid)
		}
	}
}
