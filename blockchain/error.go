// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"fmt"
)

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrInvalidHeightRange indicates a height range that is empty or starts
	// below the genesis height where that is not permitted.
	ErrInvalidHeightRange = ErrorKind("ErrInvalidHeightRange")

	// ErrBadOrder indicates an element that does not sort strictly after
	// its predecessor in the same stream.
	ErrBadOrder = ErrorKind("ErrBadOrder")

	// ErrBadCommitment indicates a commitment or excess that is not a
	// valid curve point.
	ErrBadCommitment = ErrorKind("ErrBadCommitment")

	// ErrUnmatchedKernel indicates a consumed kernel with no produced
	// kernel of the same excess and a greater multiplier.
	ErrUnmatchedKernel = ErrorKind("ErrUnmatchedKernel")

	// ErrNestedMultiplier indicates a nested kernel whose multiplier
	// differs from the parent's.
	ErrNestedMultiplier = ErrorKind("ErrNestedMultiplier")

	// ErrNestedHeightRange indicates a nested kernel whose height range is
	// not contained in the parent's.
	ErrNestedHeightRange = ErrorKind("ErrNestedHeightRange")

	// ErrNestedOrder indicates nested kernels that are not strictly
	// increasing.
	ErrNestedOrder = ErrorKind("ErrNestedOrder")

	// ErrNestingTooDeep indicates kernels nested beyond the supported
	// depth.
	ErrNestingTooDeep = ErrorKind("ErrNestingTooDeep")

	// ErrBadSignature indicates a kernel signature that does not verify.
	ErrBadSignature = ErrorKind("ErrBadSignature")

	// ErrBadRangeProof indicates a range proof that does not verify.
	ErrBadRangeProof = ErrorKind("ErrBadRangeProof")

	// ErrMissingRangeProof indicates an output without a range proof.
	ErrMissingRangeProof = ErrorKind("ErrMissingRangeProof")

	// ErrConfidentialCoinbase indicates a coinbase output with a
	// confidential range proof.  Coinbase values must be visible.
	ErrConfidentialCoinbase = ErrorKind("ErrConfidentialCoinbase")

	// ErrPublicUtxo indicates a regular output with a public range proof
	// on a network that does not allow it.
	ErrPublicUtxo = ErrorKind("ErrPublicUtxo")

	// ErrCoinbaseNotAllowed indicates a coinbase output outside of a block.
	ErrCoinbaseNotAllowed = ErrorKind("ErrCoinbaseNotAllowed")

	// ErrHeightRangeMismatch indicates a kernel or shard whose height
	// range does not intersect the permitted range.
	ErrHeightRangeMismatch = ErrorKind("ErrHeightRangeMismatch")

	// ErrNonZeroCoinbase indicates a standalone transaction that mints
	// coinbase value.
	ErrNonZeroCoinbase = ErrorKind("ErrNonZeroCoinbase")

	// ErrUnbalanced indicates commitments that do not sum to zero.
	ErrUnbalanced = ErrorKind("ErrUnbalanced")

	// ErrSubsidyClosed indicates a block that closes the subsidy outside
	// of the opening window or after it has already been closed.
	ErrSubsidyClosed = ErrorKind("ErrSubsidyClosed")

	// ErrExcessiveSubsidy indicates a subsidy above the emission of the
	// blocks in range.
	ErrExcessiveSubsidy = ErrorKind("ErrExcessiveSubsidy")

	// ErrInsufficientCoinbase indicates fewer unspent coinbase outputs
	// than the maturity rules require.
	ErrInsufficientCoinbase = ErrorKind("ErrInsufficientCoinbase")

	// ErrSubsidyClosingTwice indicates merging two bodies that both close
	// the subsidy.
	ErrSubsidyClosingTwice = ErrorKind("ErrSubsidyClosingTwice")

	// ErrHeaderHeight indicates a header below the genesis height.
	ErrHeaderHeight = ErrorKind("ErrHeaderHeight")

	// ErrGenesisPrev indicates a genesis header that references a
	// previous header.
	ErrGenesisPrev = ErrorKind("ErrGenesisPrev")

	// ErrHighHash indicates a header whose proof of work does not reach
	// its difficulty.
	ErrHighHash = ErrorKind("ErrHighHash")

	// ErrMalformedElement indicates an element stream that cannot be
	// decoded.
	ErrMalformedElement = ErrorKind("ErrMalformedElement")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// RuleError identifies a rule violation.  It is used to indicate that
// validation of a transaction or block failed due to one of the many
// validation rules.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the rule violation.
type RuleError struct {
	Err         error
	Description string
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

// ErrAborted is matched by errors returned when validation stops because its
// context was cancelled.  Such a result says nothing about validity.
var ErrAborted = errors.New("validation aborted")

// abortedError wraps the context error that stopped validation.
func abortedError(err error) error {
	return fmt.Errorf("%w: %w", ErrAborted, err)
}

// IsRuleError returns whether err proves invalidity, as opposed to an abort
// or an I/O fault.
func IsRuleError(err error) bool {
	var rerr RuleError
	return errors.As(err, &rerr)
}
