package ancore

import (
	"github.com/stellar/go/strkey"
)

// Account contract method symbols. The argument order of each method is
// part of the contract's calling convention and must never be reordered.
const (
	MethodInitialize       = "initialize"
	MethodExecute          = "execute"
	MethodAddSessionKey    = "add_session_key"
	MethodRevokeSessionKey = "revoke_session_key"
	MethodGetOwner         = "get_owner"
	MethodGetNonce         = "get_nonce"
	MethodGetSessionKey    = "get_session_key"
)

// Contract wraps a deployed account contract for invocation building.
// All constructors are pure: no I/O, no side effects, and building twice
// from identical arguments yields structurally identical invocations.
type Contract struct {
	id     string
	idHash [32]byte
}

// NewContract validates a contract identifier and wraps it.
func NewContract(contractID string) (*Contract, error) {
	if contractID == "" {
		return nil, &ValidationError{Field: "contractID", Reason: "must not be empty"}
	}
	raw, err := strkey.Decode(strkey.VersionByteContract, contractID)
	if err != nil {
		return nil, &ValidationError{Field: "contractID", Reason: "not a valid contract address"}
	}
	c := &Contract{id: contractID}
	copy(c.idHash[:], raw)
	return c, nil
}

// MustNewContract is like NewContract but panics on error.
func MustNewContract(contractID string) *Contract {
	c, err := NewContract(contractID)
	if err != nil {
		panic(err)
	}
	return c
}

// ID returns the contract identifier string.
func (c *Contract) ID() string {
	return c.id
}

// Address returns the contract's address reference value.
func (c *Contract) Address() *AddressValue {
	return &AddressValue{AddrKind: AddressContract, ID: c.idHash}
}

// Initialize builds the invocation that initializes the account with an
// owner address.
func (c *Contract) Initialize(owner string) (*Invocation, error) {
	ownerVal, err := Address(owner)
	if err != nil {
		return nil, &ArgumentError{Method: MethodInitialize, Name: "owner", Err: err}
	}
	return NewInvocation(MethodInitialize, ownerVal)
}

// Execute builds the invocation that performs a cross-contract call through
// the account: (target, function, argument vector), in that order.
func (c *Contract) Execute(target, function string, args ...Value) (*Invocation, error) {
	targetVal, err := Address(target)
	if err != nil {
		return nil, &ArgumentError{Method: MethodExecute, Name: "target", Err: err}
	}
	fnVal, err := Symbol(function)
	if err != nil {
		return nil, &ArgumentError{Method: MethodExecute, Name: "function", Err: err}
	}
	return NewInvocation(MethodExecute, targetVal, fnVal, Vec(args...))
}

// ExecuteBatch builds an execute invocation whose argument vector carries a
// non-empty list of inner invocations, each serialized to its canonical
// byte form.
func (c *Contract) ExecuteBatch(target, function string, operations []*Invocation) (*Invocation, error) {
	targetVal, err := Address(target)
	if err != nil {
		return nil, &ArgumentError{Method: MethodExecute, Name: "target", Err: err}
	}
	fnVal, err := Symbol(function)
	if err != nil {
		return nil, &ArgumentError{Method: MethodExecute, Name: "function", Err: err}
	}
	opsVal, err := InvocationList(operations)
	if err != nil {
		return nil, &ArgumentError{Method: MethodExecute, Name: "operations", Err: err}
	}
	return NewInvocation(MethodExecute, targetVal, fnVal, opsVal)
}

// AddSessionKey builds the invocation that registers a session key:
// (public key, expiry, permission set), in that order. The public key is a
// strkey string or raw 32 bytes.
func (c *Contract) AddSessionKey(publicKey any, expiresAt uint64, permissions []uint32) (*Invocation, error) {
	keyVal, err := Key(publicKey)
	if err != nil {
		return nil, &ArgumentError{Method: MethodAddSessionKey, Name: "publicKey", Err: err}
	}
	return NewInvocation(MethodAddSessionKey, keyVal, U64(expiresAt), PermissionCodes(permissions))
}

// RevokeSessionKey builds the invocation that removes a session key.
func (c *Contract) RevokeSessionKey(publicKey any) (*Invocation, error) {
	keyVal, err := Key(publicKey)
	if err != nil {
		return nil, &ArgumentError{Method: MethodRevokeSessionKey, Name: "publicKey", Err: err}
	}
	return NewInvocation(MethodRevokeSessionKey, keyVal)
}

// GetOwner builds the read-only owner lookup.
func (c *Contract) GetOwner() (*Invocation, error) {
	return NewInvocation(MethodGetOwner)
}

// GetNonce builds the read-only nonce lookup.
func (c *Contract) GetNonce() (*Invocation, error) {
	return NewInvocation(MethodGetNonce)
}

// GetSessionKey builds the read-only session key lookup for a public key.
func (c *Contract) GetSessionKey(publicKey any) (*Invocation, error) {
	keyVal, err := Key(publicKey)
	if err != nil {
		return nil, &ArgumentError{Method: MethodGetSessionKey, Name: "publicKey", Err: err}
	}
	return NewInvocation(MethodGetSessionKey, keyVal)
}
