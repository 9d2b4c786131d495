// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements the validation core of a confidential
transaction ledger.

Transactions carry four sorted element streams: the inputs they spend, the
outputs they create, the kernels they consume and the kernels they produce.
Values are hidden in Pedersen commitments, so a transaction is valid when

	sum(outputs) - sum(inputs) + sum(kernel excesses) + offset*G + fee*H

is the point at infinity, every output carries a valid range proof and every
produced kernel carries a valid signature under its excess.

Validation is performed by a ValidationContext consuming a Reader.  The same
context validates standalone transactions and block bodies; block bodies
additionally balance against the block subsidy and are subject to the
coinbase maturity policy.  A context may be restricted to a shard of the
elements so that several contexts validate disjoint parts of the same body
concurrently and are reduced with Merge.  ValidateParallel wires that up.

Errors

Every structural or cryptographic rejection is a RuleError whose Err field is
an ErrorKind, so callers may test for specific reasons with errors.Is.
Cancellation is reported with an error matching ErrAborted instead, and I/O
failures of the underlying Reader are returned unchanged, so the three cases
may be told apart:

	err := ctx.ValidateAndSummarize(cctx, &tx.TxBase, tx.Reader())
	var rerr blockchain.RuleError
	switch {
	case err == nil:
		// valid so far
	case errors.As(err, &rerr):
		// proven invalid
	case errors.Is(err, blockchain.ErrAborted):
		// cancelled, may be retried
	default:
		// I/O fault
	}
*/
package blockchain
