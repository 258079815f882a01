package ancore

import (
	"context"

	"github.com/rs/zerolog"
)

// BuilderState is the lifecycle state of a TransactionBuilder.
type BuilderState uint8

const (
	// StateEmpty: no operations accepted yet; simulate/build are rejected.
	StateEmpty BuilderState = iota

	// StateAccumulating: at least one operation accepted.
	StateAccumulating

	// StateSimulated: a simulation round trip completed; outcome available.
	StateSimulated

	// StateAssembled: the simulation succeeded and the transaction was
	// assembled.
	StateAssembled

	// StateFailed: the simulator reported a failure.
	StateFailed

	// StateRestoreNeeded: referenced ledger state must be restored
	// out-of-band before the pipeline is retried from accumulation.
	StateRestoreNeeded
)

// String returns the state name.
func (s BuilderState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateSimulated:
		return "simulated"
	case StateAssembled:
		return "assembled"
	case StateFailed:
		return "failed"
	case StateRestoreNeeded:
		return "restore_needed"
	default:
		return "unknown"
	}
}

// TransactionBuilder accumulates account operations and finalizes them
// through the simulation-assembly pipeline. Mutators are chainable and
// return the same builder instance.
//
// A builder is not safe for concurrent use. Finalizing twice is not an
// idempotent rebuild: each Build or Simulate call issues an independent
// simulation round trip from the same accumulated operation list; callers
// needing one-builder-one-use semantics must discard the builder after the
// first finalize.
type TransactionBuilder struct {
	contract  *Contract
	transport Transport
	source    string
	network   NetworkConfig
	baseFee   int64
	retry     *RetryPolicy
	logger    zerolog.Logger

	state       BuilderState
	invocations []*Invocation
	memo        string
	timeoutSecs uint64
	err         error
}

// AddOperation appends an invocation to the transaction in insertion order.
// A nil invocation records a validation error surfaced at finalize.
func (b *TransactionBuilder) AddOperation(inv *Invocation) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if inv == nil {
		b.err = &ValidationError{Field: "operation", Reason: "nil invocation"}
		return b
	}
	b.invocations = append(b.invocations, inv)
	if b.state == StateEmpty {
		b.state = StateAccumulating
	}
	return b
}

// AddMemo attaches a text memo to the transaction.
func (b *TransactionBuilder) AddMemo(text string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.memo = text
	return b
}

// SetTimeout sets the transaction validity window in seconds. The window is
// applied exactly once, during finalize; it is not a call-level deadline.
func (b *TransactionBuilder) SetTimeout(secs uint64) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if secs == 0 {
		b.err = &ValidationError{Field: "timeout", Reason: "must be greater than zero"}
		return b
	}
	b.timeoutSecs = secs
	return b
}

// AddSessionKey is a convenience mutator that builds and appends an
// add_session_key operation.
func (b *TransactionBuilder) AddSessionKey(publicKey any, expiresAt uint64, permissions []uint32) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	inv, err := b.contract.AddSessionKey(publicKey, expiresAt, permissions)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddOperation(inv)
}

// RevokeSessionKey is a convenience mutator that builds and appends a
// revoke_session_key operation.
func (b *TransactionBuilder) RevokeSessionKey(publicKey any) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	inv, err := b.contract.RevokeSessionKey(publicKey)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddOperation(inv)
}

// ExecuteCall is a convenience mutator that builds and appends an execute
// operation.
func (b *TransactionBuilder) ExecuteCall(target, function string, args ...Value) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	inv, err := b.contract.Execute(target, function, args...)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddOperation(inv)
}

// State returns the builder's current lifecycle state.
func (b *TransactionBuilder) State() BuilderState {
	return b.state
}

// NumOperations returns the accumulated operation count.
func (b *TransactionBuilder) NumOperations() int {
	return len(b.invocations)
}

// Err returns the first deferred validation error recorded by a chainable
// mutator, if any.
func (b *TransactionBuilder) Err() error {
	return b.err
}

// Simulate constructs the raw transaction from the accumulated operations,
// runs the remote dry-run, and returns the classified outcome without
// committing to assembly. Restore and failure outcomes are returned, not
// raised; only validation and transport errors surface as errors.
func (b *TransactionBuilder) Simulate(ctx context.Context) (Outcome, error) {
	_, outcome, err := b.simulate(ctx)
	return outcome, err
}

// Build drives the pipeline to completion: simulate, then assemble on
// success. A restore outcome raises ErrRestoreRequired and a simulator
// failure raises SimulationFailedError; both leave the builder in the
// corresponding terminal state.
func (b *TransactionBuilder) Build(ctx context.Context) (*AssembledTransaction, error) {
	raw, outcome, err := b.simulate(ctx)
	if err != nil {
		return nil, err
	}

	switch o := outcome.(type) {
	case *SuccessOutcome:
		b.state = StateAssembled
		tx := assemble(raw, o)
		b.logger.Debug().
			Int("operations", len(raw.Operations)).
			Int64("resource_fee", tx.ResourceFee).
			Msg("transaction assembled")
		return tx, nil

	case *RestoreOutcome:
		b.state = StateRestoreNeeded
		return nil, ErrRestoreRequired

	case *FailureOutcome:
		b.state = StateFailed
		return nil, o.Err()

	default:
		// Unreachable: Outcome is sealed.
		b.state = StateFailed
		return nil, &SimulationFailedError{Diagnostic: "unknown outcome variant", Malformed: true}
	}
}

// simulate performs the Accumulating -> Simulated transition: build the raw
// transaction (validity window applied exactly once here) and run the
// remote dry-run.
func (b *TransactionBuilder) simulate(ctx context.Context) (*RawTransaction, Outcome, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	if len(b.invocations) == 0 {
		return nil, nil, &ValidationError{Field: "operations", Reason: "zero operations accumulated"}
	}

	var account *Account
	err := b.retry.Do(ctx, func() error {
		var fetchErr error
		account, fetchErr = b.transport.GetAccount(ctx, b.source)
		return fetchErr
	})
	if err != nil {
		return nil, nil, err
	}

	rawBuilder := NewRawTransactionBuilder(*account, b.network, b.baseFee)
	for _, inv := range b.invocations {
		rawBuilder.AddOperation(ContractCallOp{
			ContractID: b.contract.ID(),
			Method:     inv.Method(),
			Args:       inv.Args(),
		})
	}
	if b.memo != "" {
		rawBuilder.SetMemo(b.memo)
	}
	if b.timeoutSecs != 0 {
		rawBuilder.SetTimeout(b.timeoutSecs)
	}
	raw, err := rawBuilder.Build()
	if err != nil {
		return nil, nil, err
	}

	b.logger.Debug().
		Str("contract", b.contract.ID()).
		Int("operations", len(raw.Operations)).
		Msg("simulating transaction")

	var resp *SimulationResponse
	err = b.retry.Do(ctx, func() error {
		var simErr error
		resp, simErr = b.transport.SimulateTransaction(ctx, raw)
		return simErr
	})
	if err != nil {
		return nil, nil, err
	}

	b.state = StateSimulated
	return raw, ClassifyResponse(resp), nil
}
