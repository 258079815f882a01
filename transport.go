package ancore

import (
	"context"

	"github.com/stellar/go/network"
)

// Account is the state read back from the network for a source account.
type Account struct {
	ID       string
	Sequence int64
}

// SimulationResult is one simulator-reported result entry. ReturnValue
// carries the contract's return value in canonical encoding.
type SimulationResult struct {
	ReturnValue []byte
}

// RestorePreamble is returned when referenced ledger state has expired.
// It carries the data needed for the out-of-band restore operation.
type RestorePreamble struct {
	TransactionData []byte
	MinResourceFee  int64
}

// Footprint is the ledger footprint reported by a successful simulation.
type Footprint struct {
	ReadOnly  []string
	ReadWrite []string
}

// SimulationResponse is the raw wire shape of a simulation reply, before
// classification into an Outcome. Exactly one of the three outcome shapes
// is expected: Error set, RestorePreamble set, or Results present.
type SimulationResponse struct {
	Error           string
	Results         []SimulationResult
	Footprint       Footprint
	MinResourceFee  int64
	RestorePreamble *RestorePreamble
	LatestLedger    uint32
}

// Transport is the remote collaborator consumed by the pipeline. Transport
// errors are distinct from simulation-reported errors: a failed round trip
// surfaces as a Go error, a simulator-reported failure arrives inside the
// SimulationResponse.
type Transport interface {
	// GetAccount fetches the current state of an account.
	GetAccount(ctx context.Context, accountID string) (*Account, error)

	// SimulateTransaction runs a remote dry-run of a raw transaction,
	// reporting resource cost and return value without committing it.
	SimulateTransaction(ctx context.Context, tx *RawTransaction) (*SimulationResponse, error)
}

// NetworkConfig identifies the target network: its passphrase and the
// endpoint the transport should talk to.
type NetworkConfig struct {
	Name       string
	Passphrase string
	RPCURL     string
}

// Named network presets, selected by discriminator string when no explicit
// endpoint/passphrase is supplied.
var networkPresets = map[string]NetworkConfig{
	"testnet": {
		Name:       "testnet",
		Passphrase: network.TestNetworkPassphrase,
		RPCURL:     "https://soroban-testnet.stellar.org",
	},
	"pubnet": {
		Name:       "pubnet",
		Passphrase: network.PublicNetworkPassphrase,
		RPCURL:     "https://mainnet.sorobanrpc.com",
	},
	"futurenet": {
		Name:       "futurenet",
		Passphrase: network.FutureNetworkPassphrase,
		RPCURL:     "https://rpc-futurenet.stellar.org",
	},
	"local": {
		Name:       "local",
		Passphrase: "Standalone Network ; February 2017",
		RPCURL:     "http://localhost:8000/soroban/rpc",
	},
}

// LookupNetwork resolves a network discriminator ("testnet", "pubnet",
// "mainnet", "futurenet", "local") to its preset configuration.
func LookupNetwork(name string) (NetworkConfig, error) {
	if name == "mainnet" {
		name = "pubnet"
	}
	cfg, ok := networkPresets[name]
	if !ok {
		return NetworkConfig{}, &ValidationError{Field: "network", Reason: "unknown network " + name}
	}
	return cfg, nil
}
