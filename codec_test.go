package ancore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func TestMarshalRoundTrip(t *testing.T) {
	var id [32]byte
	for i := range id {
		id[i] = byte(i)
	}

	tests := []struct {
		name string
		val  Value
	}{
		{"void", Void()},
		{"u32", MustUint32(4294967295)},
		{"u64", U64(1<<63 + 17)},
		{"bytes32", &Bytes32Value{V: id}},
		{"bytes", Bytes([]byte{0xde, 0xad, 0xbe, 0xef})},
		{"empty bytes", Bytes(nil)},
		{"symbol", MustSymbol("add_session_key")},
		{"account address", MustAddress(testAccountID(0x44))},
		{"contract address", MustAddress(testContractID(0x55))},
		{"empty vec", Vec()},
		{"nested vec", Vec(MustUint32(1), Vec(U64(2), Void()))},
		{"session key record", EncodeSessionKey(SessionKeyRecord{
			PublicKey:   id,
			ExpiresAt:   1700000000,
			Permissions: []uint32{0, 1},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := MarshalValue(tt.val)
			if err != nil {
				t.Fatalf("MarshalValue: %v", err)
			}
			back, err := UnmarshalValue(raw)
			if err != nil {
				t.Fatalf("UnmarshalValue: %v", err)
			}
			if !reflect.DeepEqual(tt.val, back) {
				t.Errorf("round trip mismatch:\n got %#v\nwant %#v", back, tt.val)
			}
		})
	}
}

func TestMarshalLayout(t *testing.T) {
	t.Run("u32 payload", func(t *testing.T) {
		raw := MustMarshalValue(MustUint32(0x01020304))
		want := []byte{
			0, 0, 0, byte(KindU32),
			0x01, 0x02, 0x03, 0x04,
		}
		if !bytes.Equal(raw, want) {
			t.Errorf("encoding = %x, want %x", raw, want)
		}
	})

	t.Run("symbol frame", func(t *testing.T) {
		raw := MustMarshalValue(MustSymbol("ok"))
		if ValueKind(binary.BigEndian.Uint32(raw[:4])) != KindSymbol {
			t.Error("wrong tag word")
		}
		if binary.BigEndian.Uint32(raw[4:8]) != 2 {
			t.Error("wrong length word")
		}
		if string(raw[8:]) != "ok" {
			t.Error("wrong payload")
		}
	})

	t.Run("void is tag only", func(t *testing.T) {
		raw := MustMarshalValue(Void())
		if len(raw) != TagSize {
			t.Errorf("void encoding is %d bytes, want %d", len(raw), TagSize)
		}
	})
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty input", nil, ErrTruncatedValue},
		{"short tag", []byte{0, 0}, ErrTruncatedValue},
		{"u32 missing payload", []byte{0, 0, 0, byte(KindU32), 0x01}, ErrTruncatedValue},
		{"bytes length past end", []byte{0, 0, 0, byte(KindBytes), 0, 0, 0, 9, 0x01}, ErrTruncatedValue},
		{"oversized bytes frame", []byte{0, 0, 0, byte(KindBytes), 0xFF, 0xFF, 0xFF, 0xFF}, ErrValueTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalValue(tt.raw); !errors.Is(err, tt.want) {
				t.Errorf("UnmarshalValue error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("unknown tag", func(t *testing.T) {
		raw := binary.BigEndian.AppendUint32(nil, 0xBEEF)
		var decodeErr *DecodeError
		if _, err := UnmarshalValue(raw); !errors.As(err, &decodeErr) {
			t.Errorf("expected DecodeError for unknown tag, got %v", err)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		raw := append(MustMarshalValue(MustUint32(1)), 0x00)
		if _, err := UnmarshalValue(raw); !errors.Is(err, ErrTruncatedValue) {
			t.Errorf("expected ErrTruncatedValue for trailing bytes, got %v", err)
		}
	})

	t.Run("invalid address kind byte", func(t *testing.T) {
		raw := binary.BigEndian.AppendUint32(nil, uint32(KindAddress))
		raw = append(raw, 0x09)
		raw = append(raw, make([]byte, 32)...)
		if _, err := UnmarshalValue(raw); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("expected ErrInvalidAddress, got %v", err)
		}
	})
}

func TestInvocationCanonicalForm(t *testing.T) {
	inv := MustNewInvocation("execute",
		MustAddress(testContractID(0x66)),
		MustSymbol("transfer"),
		Vec(MustUint32(5)),
	)

	raw, err := inv.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	back, err := UnmarshalInvocation(raw)
	if err != nil {
		t.Fatalf("UnmarshalInvocation: %v", err)
	}
	if back.Method() != inv.Method() {
		t.Errorf("method = %q, want %q", back.Method(), inv.Method())
	}
	if !reflect.DeepEqual(back.Args(), inv.Args()) {
		t.Error("argument list mismatch after round trip")
	}

	t.Run("truncated encoding rejected", func(t *testing.T) {
		if _, err := UnmarshalInvocation(raw[:len(raw)-3]); err == nil {
			t.Error("truncated invocation should fail to decode")
		}
	})
}
