// Package ancore provides a Go client for the Ancore programmable-account
// contract on Soroban-style networks.
//
// The library covers the invocation encoding and simulation-assembly
// pipeline: it encodes native Go values into the contract's tagged binary
// value representation, maps account operations to contract invocations,
// runs unsigned transactions through a remote simulation step, and
// assembles the simulator-reported resource footprint and fee into a final,
// submittable (still unsigned) transaction.
//
// # Basic Usage
//
// Create a client bound to a contract and source account, accumulate
// operations on a transaction builder, and finalize:
//
//	client, err := ancore.NewAccountClient(contractID, sourceAccount, transport,
//	    ancore.WithNetworkName("testnet"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tx, err := client.NewTransaction().
//	    AddSessionKey(sessionPub, expiresAt, []uint32{0, 1}).
//	    SetTimeout(300).
//	    Build(ctx)
//
// Build drives the whole pipeline: it constructs the raw transaction from
// the accumulated operations in insertion order, simulates it remotely, and
// either returns an AssembledTransaction or a typed error. Simulate stops
// one step earlier and returns the raw Outcome for inspection.
//
// # Value Encoding
//
// Arguments cross the contract boundary as tagged values. Encoders are total
// over their declared domains and reject out-of-range input rather than
// truncating it:
//
//	owner, err := ancore.Address("GB3KJPLFUYN5VL6R3GU3EGCGVCKFDSD7BEDX42HWG5BWFKB3KQGJJRMA")
//	count, err := ancore.Uint32(42)
//	key, err := ancore.Key(rawPublicKey) // strkey string or raw 32 bytes
//
// Decoders are partial and fail explicitly when the tag does not match the
// expected shape.
//
// # Error Handling
//
// Every failure surfaces as a variant of a closed taxonomy: ValidationError
// before any network call, SimulationFailedError for simulator-reported
// failures, ErrRestoreRequired when referenced ledger state has expired, and
// SubmissionFailedError as a pass-through for the external submission step.
// All variants carry a machine-readable code and unwrap cleanly for
// errors.Is / errors.As.
//
// Signing, fee bumping, and wire submission are out of scope; the assembled
// transaction is handed back to the caller for external signing.
package ancore
