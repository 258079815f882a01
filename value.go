package ancore

import (
	"math"

	"github.com/stellar/go/strkey"
)

// ValueKind identifies the variant of a tagged Value.
type ValueKind uint32

const (
	// KindVoid is the absent/empty marker.
	KindVoid ValueKind = iota

	// KindU32 is an unsigned 32-bit integer.
	KindU32

	// KindU64 is an unsigned 64-bit integer.
	KindU64

	// KindBytes32 is a fixed 32-byte sequence (session-key identifiers).
	KindBytes32

	// KindBytes is a variable-length byte sequence.
	KindBytes

	// KindSymbol is a short identifier (method and field names).
	KindSymbol

	// KindAddress is an account or contract reference.
	KindAddress

	// KindVec is an ordered list of Values.
	KindVec

	// KindMap is an ordered symbol-keyed record.
	KindMap
)

// String returns the kind name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindBytes32:
		return "bytes32"
	case KindBytes:
		return "bytes"
	case KindSymbol:
		return "symbol"
	case KindAddress:
		return "address"
	case KindVec:
		return "vec"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value represents one tagged value in the contract's calling convention.
// This is a sealed interface - only types within this package can implement it.
type Value interface {
	// isValue is unexported to seal the interface.
	isValue()

	// Kind returns the variant tag of this value.
	Kind() ValueKind
}

// VoidValue is the absent/empty marker.
type VoidValue struct{}

func (v *VoidValue) isValue() {}

// Kind returns KindVoid.
func (v *VoidValue) Kind() ValueKind { return KindVoid }

// Void returns the absent marker value.
func Void() *VoidValue {
	return &VoidValue{}
}

// U32Value is an unsigned 32-bit integer value.
type U32Value struct {
	V uint32
}

func (v *U32Value) isValue() {}

// Kind returns KindU32.
func (v *U32Value) Kind() ValueKind { return KindU32 }

// U64Value is an unsigned 64-bit integer value.
type U64Value struct {
	V uint64
}

func (v *U64Value) isValue() {}

// Kind returns KindU64.
func (v *U64Value) Kind() ValueKind { return KindU64 }

// Bytes32Value is a fixed 32-byte sequence value.
type Bytes32Value struct {
	V [32]byte
}

func (v *Bytes32Value) isValue() {}

// Kind returns KindBytes32.
func (v *Bytes32Value) Kind() ValueKind { return KindBytes32 }

// BytesValue is a variable-length byte sequence value.
type BytesValue struct {
	V []byte
}

func (v *BytesValue) isValue() {}

// Kind returns KindBytes.
func (v *BytesValue) Kind() ValueKind { return KindBytes }

// SymbolValue is a short identifier value.
type SymbolValue struct {
	V string
}

func (v *SymbolValue) isValue() {}

// Kind returns KindSymbol.
func (v *SymbolValue) Kind() ValueKind { return KindSymbol }

// AddressKind distinguishes account and contract references.
type AddressKind uint8

const (
	// AddressAccount is an ed25519 account reference ("G..." strkey).
	AddressAccount AddressKind = iota

	// AddressContract is a contract reference ("C..." strkey).
	AddressContract
)

// AddressValue is an account or contract reference.
type AddressValue struct {
	AddrKind AddressKind
	ID       [32]byte
}

func (v *AddressValue) isValue() {}

// Kind returns KindAddress.
func (v *AddressValue) Kind() ValueKind { return KindAddress }

// String re-encodes the reference in the network's address grammar.
func (v *AddressValue) String() string {
	version := strkey.VersionByteAccountID
	if v.AddrKind == AddressContract {
		version = strkey.VersionByteContract
	}
	return strkey.MustEncode(version, v.ID[:])
}

// VecValue is an ordered list of Values.
type VecValue struct {
	Elems []Value
}

func (v *VecValue) isValue() {}

// Kind returns KindVec.
func (v *VecValue) Kind() ValueKind { return KindVec }

// Len returns the number of elements.
func (v *VecValue) Len() int { return len(v.Elems) }

// MapEntry is one symbol-keyed field of a MapValue.
type MapEntry struct {
	Key string
	Val Value
}

// MapValue is an ordered record of symbol-keyed Values.
type MapValue struct {
	Entries []MapEntry
}

func (v *MapValue) isValue() {}

// Kind returns KindMap.
func (v *MapValue) Kind() ValueKind { return KindMap }

// Get returns the value for the named field, or false if absent.
func (v *MapValue) Get(key string) (Value, bool) {
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Val, true
		}
	}
	return nil, false
}

// Uint32 encodes a non-negative integer as a u32 value.
// Values outside [0, 2^32-1] are rejected, never truncated.
func Uint32(v int64) (*U32Value, error) {
	if v < 0 || v > math.MaxUint32 {
		return nil, &EncodingError{Value: v, Err: ErrValueOutOfRange}
	}
	return &U32Value{V: uint32(v)}, nil
}

// MustUint32 is like Uint32 but panics on error.
// Use only with compile-time constant values.
func MustUint32(v int64) *U32Value {
	u, err := Uint32(v)
	if err != nil {
		panic(err)
	}
	return u
}

// Uint64 encodes a non-negative integer as a u64 value.
// Negative input is rejected.
func Uint64(v int64) (*U64Value, error) {
	if v < 0 {
		return nil, &EncodingError{Value: v, Err: ErrValueOutOfRange}
	}
	return &U64Value{V: uint64(v)}, nil
}

// MustUint64 is like Uint64 but panics on error.
func MustUint64(v int64) *U64Value {
	u, err := Uint64(v)
	if err != nil {
		panic(err)
	}
	return u
}

// U64 wraps an unsigned integer as a u64 value.
func U64(v uint64) *U64Value {
	return &U64Value{V: v}
}

// Bytes wraps a byte slice as a variable-length bytes value.
// The slice is copied.
func Bytes(b []byte) *BytesValue {
	dup := make([]byte, len(b))
	copy(dup, b)
	return &BytesValue{V: dup}
}

// MaxSymbolLen is the maximum length of a symbol identifier.
const MaxSymbolLen = 32

// Symbol encodes a method or field identifier.
// Symbols are 1-32 characters from [a-zA-Z0-9_].
func Symbol(s string) (*SymbolValue, error) {
	if err := validateSymbol(s); err != nil {
		return nil, err
	}
	return &SymbolValue{V: s}, nil
}

// MustSymbol is like Symbol but panics on error.
func MustSymbol(s string) *SymbolValue {
	v, err := Symbol(s)
	if err != nil {
		panic(err)
	}
	return v
}

func validateSymbol(s string) error {
	if s == "" {
		return &EncodingError{Value: s, Err: ErrEmptySymbol}
	}
	if len(s) > MaxSymbolLen {
		return &EncodingError{Value: s, Err: ErrSymbolTooLong}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return &EncodingError{Value: s, Err: ErrInvalidSymbolChar}
		}
	}
	return nil
}

// Address encodes an address string as an address reference.
// The string is validated against the network's address grammar: "G..."
// for accounts, "C..." for contracts.
func Address(s string) (*AddressValue, error) {
	if raw, err := strkey.Decode(strkey.VersionByteAccountID, s); err == nil {
		var id [32]byte
		copy(id[:], raw)
		return &AddressValue{AddrKind: AddressAccount, ID: id}, nil
	}
	if raw, err := strkey.Decode(strkey.VersionByteContract, s); err == nil {
		var id [32]byte
		copy(id[:], raw)
		return &AddressValue{AddrKind: AddressContract, ID: id}, nil
	}
	return nil, &EncodingError{Value: s, Err: ErrInvalidAddress}
}

// MustAddress is like Address but panics on error.
func MustAddress(s string) *AddressValue {
	v, err := Address(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Key encodes 32-byte key material as a bytes32 value. It accepts a
// strkey-encoded ed25519 public key string, a 32-byte slice, or a
// [32]byte array; any other input is rejected.
func Key(material any) (*Bytes32Value, error) {
	var id [32]byte
	switch m := material.(type) {
	case string:
		raw, err := strkey.Decode(strkey.VersionByteAccountID, m)
		if err != nil {
			return nil, &EncodingError{Value: m, Err: ErrInvalidKey}
		}
		copy(id[:], raw)
	case []byte:
		if len(m) != 32 {
			return nil, &EncodingError{Value: m, Err: ErrInvalidKeyLength}
		}
		copy(id[:], m)
	case [32]byte:
		id = m
	default:
		return nil, &EncodingError{Value: material, Err: ErrInvalidKey}
	}
	return &Bytes32Value{V: id}, nil
}

// MustKey is like Key but panics on error.
func MustKey(material any) *Bytes32Value {
	v, err := Key(material)
	if err != nil {
		panic(err)
	}
	return v
}

// Permissions encodes a list of permission codes as a vec of u32 values.
// An empty list is valid; any negative or overflowing element is rejected.
func Permissions(codes []int64) (*VecValue, error) {
	elems := make([]Value, len(codes))
	for i, c := range codes {
		v, err := Uint32(c)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &VecValue{Elems: elems}, nil
}

// PermissionCodes wraps already-typed permission codes as a vec of u32.
func PermissionCodes(codes []uint32) *VecValue {
	elems := make([]Value, len(codes))
	for i, c := range codes {
		elems[i] = &U32Value{V: c}
	}
	return &VecValue{Elems: elems}
}

// Vec wraps values as an ordered list.
func Vec(elems ...Value) *VecValue {
	dup := make([]Value, len(elems))
	copy(dup, elems)
	return &VecValue{Elems: dup}
}

// InvocationList serializes invocations to their canonical byte form and
// wraps each as a bytes value. The list must be non-empty.
func InvocationList(invs []*Invocation) (*VecValue, error) {
	if len(invs) == 0 {
		return nil, &EncodingError{Value: invs, Err: ErrEmptyInvocationList}
	}
	elems := make([]Value, len(invs))
	for i, inv := range invs {
		raw, err := inv.MarshalBinary()
		if err != nil {
			return nil, err
		}
		elems[i] = &BytesValue{V: raw}
	}
	return &VecValue{Elems: elems}, nil
}

// EncodeSessionKey encodes a session key record as an ordered map value
// with the contract's three fields.
func EncodeSessionKey(rec SessionKeyRecord) *MapValue {
	return &MapValue{Entries: []MapEntry{
		{Key: fieldPublicKey, Val: &Bytes32Value{V: rec.PublicKey}},
		{Key: fieldExpiresAt, Val: &U64Value{V: rec.ExpiresAt}},
		{Key: fieldPermissions, Val: PermissionCodes(rec.Permissions)},
	}}
}
