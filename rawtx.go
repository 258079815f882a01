package ancore

// DefaultBaseFee is the per-operation base fee in stroops.
const DefaultBaseFee = 100

// DefaultTimeoutSecs is the default transaction validity window.
const DefaultTimeoutSecs = 300

// ContractCallOp is one contract-call operation in a raw transaction.
type ContractCallOp struct {
	ContractID string
	Method     string
	Args       []Value
}

// RawTransaction is an unsigned transaction constructed from accumulated
// invocations, ready for simulation. Operations appear in insertion order.
type RawTransaction struct {
	SourceAccount     string
	Sequence          int64
	Operations        []ContractCallOp
	MemoText          string
	TimeoutSecs       uint64
	BaseFee           int64
	NetworkPassphrase string
}

// RawTransactionBuilder is the accumulate-then-build collaborator contract
// for raw transaction construction. Implementations accumulate operations
// in insertion order and produce the transaction exactly once per Build.
type RawTransactionBuilder interface {
	// AddOperation appends a contract-call operation.
	AddOperation(op ContractCallOp)

	// SetMemo attaches a text memo.
	SetMemo(text string)

	// SetTimeout sets the transaction validity window in seconds.
	SetTimeout(secs uint64)

	// Build produces the raw unsigned transaction.
	Build() (*RawTransaction, error)
}

// rawTxBuilder is the in-package implementation of RawTransactionBuilder.
type rawTxBuilder struct {
	source  Account
	network NetworkConfig
	baseFee int64
	ops     []ContractCallOp
	memo    string
	timeout uint64
}

// NewRawTransactionBuilder creates a builder for the given source account
// and network. A non-positive baseFee falls back to DefaultBaseFee.
func NewRawTransactionBuilder(source Account, netCfg NetworkConfig, baseFee int64) RawTransactionBuilder {
	if baseFee <= 0 {
		baseFee = DefaultBaseFee
	}
	return &rawTxBuilder{
		source:  source,
		network: netCfg,
		baseFee: baseFee,
		ops:     make([]ContractCallOp, 0, 4),
	}
}

func (b *rawTxBuilder) AddOperation(op ContractCallOp) {
	b.ops = append(b.ops, op)
}

func (b *rawTxBuilder) SetMemo(text string) {
	b.memo = text
}

func (b *rawTxBuilder) SetTimeout(secs uint64) {
	b.timeout = secs
}

func (b *rawTxBuilder) Build() (*RawTransaction, error) {
	if len(b.ops) == 0 {
		return nil, &ValidationError{Field: "operations", Reason: "zero operations accumulated"}
	}
	timeout := b.timeout
	if timeout == 0 {
		timeout = DefaultTimeoutSecs
	}
	ops := make([]ContractCallOp, len(b.ops))
	copy(ops, b.ops)
	return &RawTransaction{
		SourceAccount:     b.source.ID,
		Sequence:          b.source.Sequence + 1,
		Operations:        ops,
		MemoText:          b.memo,
		TimeoutSecs:       timeout,
		BaseFee:           b.baseFee,
		NetworkPassphrase: b.network.Passphrase,
	}, nil
}

// AssembledTransaction is a raw transaction merged with the resource
// footprint and fee estimate from a successful simulation. It is final but
// still unsigned; signing and submission are external.
type AssembledTransaction struct {
	Raw         *RawTransaction
	Footprint   Footprint
	ResourceFee int64
	ReturnValue Value
}

// TotalFee is the inclusion fee for all operations plus the resource fee.
func (tx *AssembledTransaction) TotalFee() int64 {
	return tx.Raw.BaseFee*int64(len(tx.Raw.Operations)) + tx.ResourceFee
}
