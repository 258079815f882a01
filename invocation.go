package ancore

import (
	"encoding/binary"
)

// Invocation is a contract method name plus its ordered, already-encoded
// argument list. Invocation is immutable once constructed; argument order
// is part of the contract's fixed calling convention.
type Invocation struct {
	method string
	args   []Value
}

// NewInvocation constructs an invocation after validating the method symbol.
func NewInvocation(method string, args ...Value) (*Invocation, error) {
	if err := validateSymbol(method); err != nil {
		return nil, &ArgumentError{Method: method, Name: "method", Err: err}
	}
	dup := make([]Value, len(args))
	copy(dup, args)
	return &Invocation{method: method, args: dup}, nil
}

// MustNewInvocation is like NewInvocation but panics on error.
func MustNewInvocation(method string, args ...Value) *Invocation {
	inv, err := NewInvocation(method, args...)
	if err != nil {
		panic(err)
	}
	return inv
}

// Method returns the contract method symbol.
func (inv *Invocation) Method() string {
	return inv.method
}

// Args returns a copy of the ordered argument list.
func (inv *Invocation) Args() []Value {
	dup := make([]Value, len(inv.args))
	copy(dup, inv.args)
	return dup
}

// NumArgs returns the argument count.
func (inv *Invocation) NumArgs() int {
	return len(inv.args)
}

// MarshalBinary serializes the invocation to its canonical byte form:
// a length-prefixed method symbol followed by the argument vector.
func (inv *Invocation) MarshalBinary() ([]byte, error) {
	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(inv.method)))
	buf = append(buf, inv.method...)
	return appendValue(buf, Vec(inv.args...))
}

// UnmarshalInvocation decodes a canonical invocation encoding.
func UnmarshalInvocation(raw []byte) (*Invocation, error) {
	methodBytes, rest, err := readFrame(raw, MaxSymbolLen)
	if err != nil {
		return nil, err
	}
	v, rest, err := readValue(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrTruncatedValue
	}
	vec, ok := v.(*VecValue)
	if !ok {
		return nil, &DecodeError{Want: KindVec, Got: v.Kind()}
	}
	return NewInvocation(string(methodBytes), vec.Elems...)
}
