// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"io"
	"testing"
)

// TestErrorKindStringer tests the stringized output for the ErrorKind type.
func TestErrorKindStringer(t *testing.T) {
	tests := []struct {
		in   ErrorKind
		want string
	}{
		{ErrInvalidParams, "ErrInvalidParams"},
		{ErrMissingSender, "ErrMissingSender"},
		{ErrMissingRecipient, "ErrMissingRecipient"},
		{ErrMintSubmission, "ErrMintSubmission"},
		{ErrNegativeAmount, "ErrNegativeAmount"},
		{ErrUnsignedRecord, "ErrUnsignedRecord"},
		{ErrInvalidSignature, "ErrInvalidSignature"},
	}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestRuleError tests the error output for the RuleError type.
func TestRuleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   RuleError
		want string
	}{{
		RuleError{Description: "record is nil"},
		"record is nil",
	}, {
		RuleError{Description: "human-readable error"},
		"human-readable error",
	}}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestErrorKindIsAs ensures both ErrorKind and RuleError can be identified as
// being a specific error kind via errors.Is and unwrapped via errors.As.
func TestErrorKindIsAs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
		wantAs    ErrorKind
	}{{
		name:      "ErrUnsignedRecord == ErrUnsignedRecord",
		err:       ErrUnsignedRecord,
		target:    ErrUnsignedRecord,
		wantMatch: true,
		wantAs:    ErrUnsignedRecord,
	}, {
		name:      "RuleError.ErrUnsignedRecord == ErrUnsignedRecord",
		err:       ruleError(ErrUnsignedRecord, ""),
		target:    ErrUnsignedRecord,
		wantMatch: true,
		wantAs:    ErrUnsignedRecord,
	}, {
		name:      "RuleError.ErrUnsignedRecord == RuleError.ErrUnsignedRecord",
		err:       ruleError(ErrUnsignedRecord, ""),
		target:    ruleError(ErrUnsignedRecord, ""),
		wantMatch: true,
		wantAs:    ErrUnsignedRecord,
	}, {
		name:      "ErrUnsignedRecord != ErrInvalidSignature",
		err:       ErrUnsignedRecord,
		target:    ErrInvalidSignature,
		wantMatch: false,
		wantAs:    ErrUnsignedRecord,
	}, {
		name:      "RuleError.ErrMissingSender != ErrMissingRecipient",
		err:       ruleError(ErrMissingSender, ""),
		target:    ErrMissingRecipient,
		wantMatch: false,
		wantAs:    ErrMissingSender,
	}, {
		name:      "RuleError.ErrMintSubmission != io.EOF",
		err:       ruleError(ErrMintSubmission, ""),
		target:    io.EOF,
		wantMatch: false,
		wantAs:    ErrMintSubmission,
	}}

	for _, test := range tests {
		// Ensure the error matches or not depending on the expected result.
		result := errors.Is(test.err, test.target)
		if result != test.wantMatch {
			t.Errorf("%s: incorrect error identification -- got %v, want %v",
				test.name, result, test.wantMatch)
			continue
		}

		// Ensure the underlying error kind can be unwrapped and is the
		// expected kind.
		var kind ErrorKind
		if !errors.As(test.err, &kind) {
			t.Errorf("%s: unable to unwrap to error kind", test.name)
			continue
		}
		if kind != test.wantAs {
			t.Errorf("%s: unexpected unwrapped error kind -- got %v, want %v",
				test.name, kind, test.wantAs)
			continue
		}
	}
}
