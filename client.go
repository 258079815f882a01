package ancore

import (
	"context"

	"github.com/rs/zerolog"
)

// AccountClient orchestrates invocation building through the
// simulation-assembly pipeline for one account contract. Each
// NewTransaction builder is independently owned by its caller; the client
// itself holds no mutable state across calls.
type AccountClient struct {
	contract  *Contract
	transport Transport
	source    string
	network   NetworkConfig
	baseFee   int64
	timeout   uint64
	retry     *RetryPolicy
	logger    zerolog.Logger
}

// NewAccountClient creates a client bound to a contract, a source account,
// and a transport. The network defaults to testnet; use WithNetworkName or
// WithNetwork to target another.
func NewAccountClient(contractID, sourceAccount string, transport Transport, opts ...ClientOption) (*AccountClient, error) {
	contract, err := NewContract(contractID)
	if err != nil {
		return nil, err
	}
	if _, err := Address(sourceAccount); err != nil {
		return nil, &ValidationError{Field: "sourceAccount", Reason: "not a valid account address"}
	}
	if transport == nil {
		return nil, &ValidationError{Field: "transport", Reason: "must not be nil"}
	}

	c := &AccountClient{
		contract:  contract,
		transport: transport,
		source:    sourceAccount,
		baseFee:   DefaultBaseFee,
		retry:     DefaultRetryPolicy(),
		logger:    zerolog.Nop(),
	}
	c.network, _ = LookupNetwork("testnet")

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Contract returns the wrapped account contract.
func (c *AccountClient) Contract() *Contract {
	return c.contract
}

// Network returns the resolved network configuration.
func (c *AccountClient) Network() NetworkConfig {
	return c.network
}

// NewTransaction returns a fresh transaction builder bound to this client's
// contract, source account, and network.
func (c *AccountClient) NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		contract:    c.contract,
		transport:   c.transport,
		source:      c.source,
		network:     c.network,
		baseFee:     c.baseFee,
		retry:       c.retry,
		logger:      c.logger,
		timeoutSecs: c.timeout,
	}
}

// Initialize builds, simulates, and assembles an initialize transaction.
func (c *AccountClient) Initialize(ctx context.Context, owner string) (*AssembledTransaction, error) {
	inv, err := c.contract.Initialize(owner)
	if err != nil {
		return nil, err
	}
	return c.NewTransaction().AddOperation(inv).Build(ctx)
}

// AddSessionKey builds, simulates, and assembles an add_session_key
// transaction.
func (c *AccountClient) AddSessionKey(ctx context.Context, publicKey any, expiresAt uint64, permissions []uint32) (*AssembledTransaction, error) {
	inv, err := c.contract.AddSessionKey(publicKey, expiresAt, permissions)
	if err != nil {
		return nil, err
	}
	return c.NewTransaction().AddOperation(inv).Build(ctx)
}

// RevokeSessionKey builds, simulates, and assembles a revoke_session_key
// transaction.
func (c *AccountClient) RevokeSessionKey(ctx context.Context, publicKey any) (*AssembledTransaction, error) {
	inv, err := c.contract.RevokeSessionKey(publicKey)
	if err != nil {
		return nil, err
	}
	return c.NewTransaction().AddOperation(inv).Build(ctx)
}

// ExecuteCall builds, simulates, and assembles an execute transaction for a
// cross-contract call.
func (c *AccountClient) ExecuteCall(ctx context.Context, target, function string, args ...Value) (*AssembledTransaction, error) {
	inv, err := c.contract.Execute(target, function, args...)
	if err != nil {
		return nil, err
	}
	return c.NewTransaction().AddOperation(inv).Build(ctx)
}

// GetOwner reads the account owner through the simulate-only path.
func (c *AccountClient) GetOwner(ctx context.Context) (string, error) {
	inv, err := c.contract.GetOwner()
	if err != nil {
		return "", err
	}
	ret, err := c.simulateRead(ctx, inv)
	if err != nil {
		return "", err
	}
	return DecodeAddress(ret)
}

// GetNonce reads the account nonce through the simulate-only path.
func (c *AccountClient) GetNonce(ctx context.Context) (uint64, error) {
	inv, err := c.contract.GetNonce()
	if err != nil {
		return 0, err
	}
	ret, err := c.simulateRead(ctx, inv)
	if err != nil {
		return 0, err
	}
	return DecodeUint64(ret)
}

// GetSessionKey reads a session key through the simulate-only path. The
// result is three-way: (nil, nil) when no key is stored under the
// identifier, the record when one is, and a decode error when a stored
// record is present but malformed.
func (c *AccountClient) GetSessionKey(ctx context.Context, publicKey any) (*SessionKeyRecord, error) {
	inv, err := c.contract.GetSessionKey(publicKey)
	if err != nil {
		return nil, err
	}
	ret, err := c.simulateRead(ctx, inv)
	if err != nil {
		return nil, err
	}
	return DecodeOptionalSessionKey(ret)
}

// simulateRead runs a read-only invocation through simulation and returns
// the contract's return value. Restore and failure outcomes surface as
// their taxonomy errors.
func (c *AccountClient) simulateRead(ctx context.Context, inv *Invocation) (Value, error) {
	outcome, err := c.NewTransaction().AddOperation(inv).Simulate(ctx)
	if err != nil {
		return nil, err
	}
	switch o := outcome.(type) {
	case *SuccessOutcome:
		return o.ReturnValue, nil
	case *RestoreOutcome:
		return nil, ErrRestoreRequired
	case *FailureOutcome:
		return nil, o.Err()
	default:
		return nil, &SimulationFailedError{Diagnostic: "unknown outcome variant", Malformed: true}
	}
}
