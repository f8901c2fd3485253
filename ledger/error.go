// Copyright (c) 2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific RuleError.
const (
	// ErrInvalidParams indicates a ledger was configured with parameters
	// that are out of range.
	ErrInvalidParams = ErrorKind("ErrInvalidParams")

	// ErrMissingSender indicates a submitted record has no sender.
	ErrMissingSender = ErrorKind("ErrMissingSender")

	// ErrMissingRecipient indicates a submitted record has no recipient.
	ErrMissingRecipient = ErrorKind("ErrMissingRecipient")

	// ErrMintSubmission indicates a mint record was submitted.  Mint records
	// are only created by the ledger itself when paying mining rewards.
	ErrMintSubmission = ErrorKind("ErrMintSubmission")

	// ErrNegativeAmount indicates a submitted record moves a negative
	// amount.
	ErrNegativeAmount = ErrorKind("ErrNegativeAmount")

	// ErrUnsignedRecord indicates a submitted record has not been signed.
	ErrUnsignedRecord = ErrorKind("ErrUnsignedRecord")

	// ErrInvalidSignature indicates a submitted record carries a signature
	// that is not a valid signature of its content by the sender.
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// RuleError identifies a rule violation.  It is used to indicate that a record
// was rejected at submission or that the ledger could not be created due to
// one of the validation rules.  It has full support for errors.Is and
// errors.As, so the caller can ascertain the specific reason for the error by
// checking the underlying error.
type RuleError struct {
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e RuleError) Unwrap() error {
	return e.Err
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(kind ErrorKind, desc string) RuleError {
	return RuleError{Err: kind, Description: desc}
}
