package ancore

// Session key record field symbols, matching the contract's storage type.
const (
	fieldPublicKey   = "public_key"
	fieldExpiresAt   = "expires_at"
	fieldPermissions = "permissions"
)

// SessionKeyRecord is a decoded session key: a delegated, permission-scoped,
// time-bounded credential stored by the account contract.
type SessionKeyRecord struct {
	PublicKey   [32]byte
	ExpiresAt   uint64
	Permissions []uint32
}

// DecodeAddress decodes an address reference back to its string form.
func DecodeAddress(v Value) (string, error) {
	addr, ok := v.(*AddressValue)
	if !ok {
		return "", &DecodeError{Want: KindAddress, Got: kindOf(v)}
	}
	return addr.String(), nil
}

// DecodeUint32 decodes a u32 value.
func DecodeUint32(v Value) (uint32, error) {
	u, ok := v.(*U32Value)
	if !ok {
		return 0, &DecodeError{Want: KindU32, Got: kindOf(v)}
	}
	return u.V, nil
}

// DecodeUint64 decodes a u64 value.
func DecodeUint64(v Value) (uint64, error) {
	u, ok := v.(*U64Value)
	if !ok {
		return 0, &DecodeError{Want: KindU64, Got: kindOf(v)}
	}
	return u.V, nil
}

// DecodeBytes32 decodes a fixed 32-byte value.
func DecodeBytes32(v Value) ([32]byte, error) {
	b, ok := v.(*Bytes32Value)
	if !ok {
		return [32]byte{}, &DecodeError{Want: KindBytes32, Got: kindOf(v)}
	}
	return b.V, nil
}

// DecodeBytes decodes a variable-length bytes value.
func DecodeBytes(v Value) ([]byte, error) {
	b, ok := v.(*BytesValue)
	if !ok {
		return nil, &DecodeError{Want: KindBytes, Got: kindOf(v)}
	}
	dup := make([]byte, len(b.V))
	copy(dup, b.V)
	return dup, nil
}

// DecodePermissions decodes a vec of u32 permission codes.
func DecodePermissions(v Value) ([]uint32, error) {
	vec, ok := v.(*VecValue)
	if !ok {
		return nil, &DecodeError{Want: KindVec, Got: kindOf(v)}
	}
	codes := make([]uint32, len(vec.Elems))
	for i, elem := range vec.Elems {
		code, err := DecodeUint32(elem)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// DecodeSessionKey decodes a structured session key record. All three
// fields are mandatory; a missing field or a field with the wrong variant
// tag is a decode error, never a default.
func DecodeSessionKey(v Value) (*SessionKeyRecord, error) {
	rec, ok := v.(*MapValue)
	if !ok {
		return nil, &DecodeError{Want: KindMap, Got: kindOf(v)}
	}

	rawKey, ok := rec.Get(fieldPublicKey)
	if !ok {
		return nil, &MissingFieldError{Field: fieldPublicKey}
	}
	publicKey, err := DecodeBytes32(rawKey)
	if err != nil {
		return nil, fieldError(err, fieldPublicKey)
	}

	rawExpiry, ok := rec.Get(fieldExpiresAt)
	if !ok {
		return nil, &MissingFieldError{Field: fieldExpiresAt}
	}
	expiresAt, err := DecodeUint64(rawExpiry)
	if err != nil {
		return nil, fieldError(err, fieldExpiresAt)
	}

	rawPerms, ok := rec.Get(fieldPermissions)
	if !ok {
		return nil, &MissingFieldError{Field: fieldPermissions}
	}
	permissions, err := DecodePermissions(rawPerms)
	if err != nil {
		return nil, fieldError(err, fieldPermissions)
	}

	return &SessionKeyRecord{
		PublicKey:   publicKey,
		ExpiresAt:   expiresAt,
		Permissions: permissions,
	}, nil
}

// DecodeOptionalSessionKey decodes an optional session key read. The result
// is three-way: a void value decodes to (nil, nil) for absent; a valid
// record decodes to (record, nil); a present but malformed record returns
// the decode error instead of silently reading as absent.
func DecodeOptionalSessionKey(v Value) (*SessionKeyRecord, error) {
	if v == nil {
		return nil, nil
	}
	if _, absent := v.(*VoidValue); absent {
		return nil, nil
	}
	return DecodeSessionKey(v)
}

// fieldError attaches record field context to a decode error.
func fieldError(err error, field string) error {
	if de, ok := err.(*DecodeError); ok {
		return &DecodeError{Want: de.Want, Got: de.Got, Field: field}
	}
	return err
}

// kindOf reports the kind of a possibly-nil value for diagnostics.
func kindOf(v Value) ValueKind {
	if v == nil {
		return KindVoid
	}
	return v.Kind()
}
