package ancore

import (
	"encoding/binary"
)

// Canonical encoding constants.
const (
	// TagSize is the size of the leading variant tag word.
	TagSize = 4

	// LenSize is the size of a length or count word.
	LenSize = 4

	// AddressPayloadSize is the size of an encoded address payload:
	// one kind byte followed by the 32-byte identifier.
	AddressPayloadSize = 33

	// MaxBytesLen is the maximum length of a bytes payload.
	MaxBytesLen = 1 << 20

	// MaxCollectionLen is the maximum element count of a vec or map.
	MaxCollectionLen = 4096
)

// MarshalValue encodes a value to its canonical byte form: a 4-byte
// big-endian variant tag followed by the variant payload.
//
// Payload layouts:
//
//	void           (empty)
//	u32            [value:4]
//	u64            [value:8]
//	bytes32        [data:32]
//	bytes, symbol  [len:4][data:len]
//	address        [kind:1][id:32]
//	vec            [count:4][element...]
//	map            [count:4]([keylen:4][key][value])...
func MarshalValue(v Value) ([]byte, error) {
	if v == nil {
		return nil, &EncodingError{Value: v, Err: ErrValueOutOfRange}
	}
	var buf []byte
	return appendValue(buf, v)
}

func appendValue(buf []byte, v Value) ([]byte, error) {
	buf = binary.BigEndian.AppendUint32(buf, uint32(v.Kind()))

	switch val := v.(type) {
	case *VoidValue:
		return buf, nil

	case *U32Value:
		return binary.BigEndian.AppendUint32(buf, val.V), nil

	case *U64Value:
		return binary.BigEndian.AppendUint64(buf, val.V), nil

	case *Bytes32Value:
		return append(buf, val.V[:]...), nil

	case *BytesValue:
		if len(val.V) > MaxBytesLen {
			return nil, &EncodingError{Value: val.V, Err: ErrValueTooLarge}
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(val.V)))
		return append(buf, val.V...), nil

	case *SymbolValue:
		if err := validateSymbol(val.V); err != nil {
			return nil, err
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(val.V)))
		return append(buf, val.V...), nil

	case *AddressValue:
		buf = append(buf, byte(val.AddrKind))
		return append(buf, val.ID[:]...), nil

	case *VecValue:
		if len(val.Elems) > MaxCollectionLen {
			return nil, &EncodingError{Value: val, Err: ErrValueTooLarge}
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(val.Elems)))
		var err error
		for _, elem := range val.Elems {
			if buf, err = appendValue(buf, elem); err != nil {
				return nil, err
			}
		}
		return buf, nil

	case *MapValue:
		if len(val.Entries) > MaxCollectionLen {
			return nil, &EncodingError{Value: val, Err: ErrValueTooLarge}
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(val.Entries)))
		var err error
		for _, entry := range val.Entries {
			if err = validateSymbol(entry.Key); err != nil {
				return nil, err
			}
			buf = binary.BigEndian.AppendUint32(buf, uint32(len(entry.Key)))
			buf = append(buf, entry.Key...)
			if buf, err = appendValue(buf, entry.Val); err != nil {
				return nil, err
			}
		}
		return buf, nil

	default:
		return nil, &EncodingError{Value: v, Err: ErrValueOutOfRange}
	}
}

// MustMarshalValue is like MarshalValue but panics on error.
// Use only with values built from validated constructors.
func MustMarshalValue(v Value) []byte {
	raw, err := MarshalValue(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// UnmarshalValue decodes a canonical byte form back into a value.
// Trailing bytes after the encoded value are an error.
func UnmarshalValue(raw []byte) (Value, error) {
	v, rest, err := readValue(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrTruncatedValue
	}
	return v, nil
}

func readValue(raw []byte) (Value, []byte, error) {
	if len(raw) < TagSize {
		return nil, nil, ErrTruncatedValue
	}
	tag := ValueKind(binary.BigEndian.Uint32(raw[:TagSize]))
	raw = raw[TagSize:]

	switch tag {
	case KindVoid:
		return &VoidValue{}, raw, nil

	case KindU32:
		if len(raw) < 4 {
			return nil, nil, ErrTruncatedValue
		}
		return &U32Value{V: binary.BigEndian.Uint32(raw[:4])}, raw[4:], nil

	case KindU64:
		if len(raw) < 8 {
			return nil, nil, ErrTruncatedValue
		}
		return &U64Value{V: binary.BigEndian.Uint64(raw[:8])}, raw[8:], nil

	case KindBytes32:
		if len(raw) < 32 {
			return nil, nil, ErrTruncatedValue
		}
		var id [32]byte
		copy(id[:], raw[:32])
		return &Bytes32Value{V: id}, raw[32:], nil

	case KindBytes:
		data, rest, err := readFrame(raw, MaxBytesLen)
		if err != nil {
			return nil, nil, err
		}
		return &BytesValue{V: data}, rest, nil

	case KindSymbol:
		data, rest, err := readFrame(raw, MaxSymbolLen)
		if err != nil {
			return nil, nil, err
		}
		sym := string(data)
		if err := validateSymbol(sym); err != nil {
			return nil, nil, err
		}
		return &SymbolValue{V: sym}, rest, nil

	case KindAddress:
		if len(raw) < AddressPayloadSize {
			return nil, nil, ErrTruncatedValue
		}
		kind := AddressKind(raw[0])
		if kind != AddressAccount && kind != AddressContract {
			return nil, nil, ErrInvalidAddress
		}
		var id [32]byte
		copy(id[:], raw[1:AddressPayloadSize])
		return &AddressValue{AddrKind: kind, ID: id}, raw[AddressPayloadSize:], nil

	case KindVec:
		count, rest, err := readCount(raw)
		if err != nil {
			return nil, nil, err
		}
		elems := make([]Value, 0, count)
		for i := 0; i < count; i++ {
			var elem Value
			if elem, rest, err = readValue(rest); err != nil {
				return nil, nil, err
			}
			elems = append(elems, elem)
		}
		return &VecValue{Elems: elems}, rest, nil

	case KindMap:
		count, rest, err := readCount(raw)
		if err != nil {
			return nil, nil, err
		}
		entries := make([]MapEntry, 0, count)
		for i := 0; i < count; i++ {
			var keyBytes []byte
			if keyBytes, rest, err = readFrame(rest, MaxSymbolLen); err != nil {
				return nil, nil, err
			}
			key := string(keyBytes)
			if err = validateSymbol(key); err != nil {
				return nil, nil, err
			}
			var val Value
			if val, rest, err = readValue(rest); err != nil {
				return nil, nil, err
			}
			entries = append(entries, MapEntry{Key: key, Val: val})
		}
		return &MapValue{Entries: entries}, rest, nil

	default:
		return nil, nil, &DecodeError{Want: KindVoid, Got: tag}
	}
}

// readFrame reads a length-prefixed byte frame, enforcing max.
func readFrame(raw []byte, max int) (data []byte, rest []byte, err error) {
	if len(raw) < LenSize {
		return nil, nil, ErrTruncatedValue
	}
	n := int(binary.BigEndian.Uint32(raw[:LenSize]))
	raw = raw[LenSize:]
	if n > max {
		return nil, nil, ErrValueTooLarge
	}
	if len(raw) < n {
		return nil, nil, ErrTruncatedValue
	}
	data = make([]byte, n)
	copy(data, raw[:n])
	return data, raw[n:], nil
}

// readCount reads a collection count word, enforcing MaxCollectionLen.
func readCount(raw []byte) (count int, rest []byte, err error) {
	if len(raw) < LenSize {
		return 0, nil, ErrTruncatedValue
	}
	count = int(binary.BigEndian.Uint32(raw[:LenSize]))
	if count > MaxCollectionLen {
		return 0, nil, ErrValueTooLarge
	}
	return count, raw[LenSize:], nil
}
