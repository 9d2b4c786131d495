// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainwork

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrEmptyProof indicates a proof without any headers.
	ErrEmptyProof = ErrorKind("ErrEmptyProof")

	// ErrInvalidInterval indicates a tip whose chain work is below its own
	// difficulty, leaving no work range to sample.
	ErrInvalidInterval = ErrorKind("ErrInvalidInterval")

	// ErrMissingStates indicates a proof that ends before sampling does.
	ErrMissingStates = ErrorKind("ErrMissingStates")

	// ErrSampleOutOfRange indicates a header whose work range does not
	// cover the point it answers.
	ErrSampleOutOfRange = ErrorKind("ErrSampleOutOfRange")

	// ErrBadLink indicates adjacent headers whose predecessor hash does not
	// match.
	ErrBadLink = ErrorKind("ErrBadLink")

	// ErrBadChainWork indicates headers whose work ranges are not
	// contiguous when adjacent or overlap otherwise.
	ErrBadChainWork = ErrorKind("ErrBadChainWork")

	// ErrHeightOrder indicates a header that is not below the previously
	// sampled one.
	ErrHeightOrder = ErrorKind("ErrHeightOrder")

	// ErrBadMerkleProof indicates a header whose position in the tree of
	// headers could not be proven.
	ErrBadMerkleProof = ErrorKind("ErrBadMerkleProof")

	// ErrTrailingData indicates headers or proof hashes that verification
	// does not consume.
	ErrTrailingData = ErrorKind("ErrTrailingData")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// ProofError identifies an invalid chain work proof.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the rejection.
type ProofError struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e ProofError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e ProofError) Unwrap() error {
	return e.Err
}

// proofError creates a ProofError given a set of arguments.
func proofError(kind ErrorKind, desc string) ProofError {
	return ProofError{Err: kind, Description: desc}
}
