package ancore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewAccountClientValidation(t *testing.T) {
	tr := &fakeTransport{}

	tests := []struct {
		name     string
		contract string
		source   string
		tr       Transport
	}{
		{"bad contract", "nope", testAccountID(0x01), tr},
		{"bad source", testContractID(0x01), "nope", tr},
		{"nil transport", testContractID(0x01), testAccountID(0x01), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAccountClient(tt.contract, tt.source, tt.tr); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestClientNetworkSelection(t *testing.T) {
	tr := &fakeTransport{}

	t.Run("defaults to testnet", func(t *testing.T) {
		client := newTestClient(t, tr)
		if client.Network().Name != "testnet" {
			t.Errorf("network = %q", client.Network().Name)
		}
	})

	t.Run("preset by discriminator", func(t *testing.T) {
		client := newTestClient(t, tr, WithNetworkName("mainnet"))
		if client.Network().Name != "pubnet" {
			t.Errorf("network = %q", client.Network().Name)
		}
	})

	t.Run("unknown discriminator rejected", func(t *testing.T) {
		_, err := NewAccountClient(testContractID(0x01), testAccountID(0x01), tr,
			WithNetworkName("betanet"))
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("explicit config overrides presets", func(t *testing.T) {
		cfg := NetworkConfig{Name: "custom", Passphrase: "Custom Net", RPCURL: "http://rpc.internal"}
		client := newTestClient(t, tr, WithNetwork(cfg))
		if client.Network().Passphrase != "Custom Net" {
			t.Error("explicit network config not applied")
		}
	})
}

func TestGetOwner(t *testing.T) {
	owner := testAccountID(0x42)
	tr := &fakeTransport{}
	tr.resp = successResponse(t, MustAddress(owner))
	client := newTestClient(t, tr)

	got, err := client.GetOwner(context.Background())
	if err != nil {
		t.Fatalf("GetOwner: %v", err)
	}
	if got != owner {
		t.Errorf("owner = %q, want %q", got, owner)
	}
	if tr.lastTx == nil || tr.lastTx.Operations[0].Method != "get_owner" {
		t.Error("read path should simulate a get_owner invocation")
	}
}

func TestGetNonce(t *testing.T) {
	tr := &fakeTransport{}
	tr.resp = successResponse(t, U64(17))
	client := newTestClient(t, tr)

	nonce, err := client.GetNonce(context.Background())
	if err != nil {
		t.Fatalf("GetNonce: %v", err)
	}
	if nonce != 17 {
		t.Errorf("nonce = %d, want 17", nonce)
	}

	t.Run("wrong return shape surfaces decode error", func(t *testing.T) {
		tr.resp = successResponse(t, MustSymbol("seventeen"))
		if _, err := client.GetNonce(context.Background()); err == nil {
			t.Error("mis-tagged return value should fail to decode")
		}
	})
}

func TestGetSessionKey(t *testing.T) {
	pub := make([]byte, 32)
	for i := range pub {
		pub[i] = 0x5C
	}

	t.Run("absent reads as nil, nil", func(t *testing.T) {
		tr := &fakeTransport{resp: successResponse(t, Void())}
		client := newTestClient(t, tr)

		rec, err := client.GetSessionKey(context.Background(), pub)
		if err != nil {
			t.Fatalf("GetSessionKey: %v", err)
		}
		if rec != nil {
			t.Error("void return should read as absent")
		}
	})

	t.Run("present record decodes fully", func(t *testing.T) {
		var pk [32]byte
		copy(pk[:], pub)
		stored := SessionKeyRecord{PublicKey: pk, ExpiresAt: 2000, Permissions: []uint32{3}}
		tr := &fakeTransport{resp: successResponse(t, EncodeSessionKey(stored))}
		client := newTestClient(t, tr)

		rec, err := client.GetSessionKey(context.Background(), pub)
		if err != nil {
			t.Fatalf("GetSessionKey: %v", err)
		}
		if rec == nil || rec.ExpiresAt != 2000 || rec.PublicKey != pk {
			t.Errorf("record = %+v", rec)
		}
	})

	t.Run("malformed present record is an error, not absent", func(t *testing.T) {
		corrupt := &MapValue{Entries: []MapEntry{{Key: "public_key", Val: Void()}}}
		tr := &fakeTransport{resp: successResponse(t, corrupt)}
		client := newTestClient(t, tr)

		rec, err := client.GetSessionKey(context.Background(), pub)
		if err == nil {
			t.Fatal("corrupt record must surface a decode error")
		}
		if rec != nil {
			t.Error("no partial record on decode failure")
		}
	})

	t.Run("restore outcome raises on the read path", func(t *testing.T) {
		tr := &fakeTransport{resp: &SimulationResponse{RestorePreamble: &RestorePreamble{}}}
		client := newTestClient(t, tr)

		if _, err := client.GetSessionKey(context.Background(), pub); !errors.Is(err, ErrRestoreRequired) {
			t.Errorf("expected ErrRestoreRequired, got %v", err)
		}
	})
}

func TestHighLevelOperations(t *testing.T) {
	tr := &fakeTransport{resp: successResponse(t, Void())}
	client := newTestClient(t, tr)
	ctx := context.Background()
	pub := make([]byte, 32)

	tests := []struct {
		name   string
		run    func() (*AssembledTransaction, error)
		method string
	}{
		{"initialize", func() (*AssembledTransaction, error) {
			return client.Initialize(ctx, testAccountID(0x31))
		}, "initialize"},
		{"add session key", func() (*AssembledTransaction, error) {
			return client.AddSessionKey(ctx, pub, 9000, []uint32{0})
		}, "add_session_key"},
		{"revoke session key", func() (*AssembledTransaction, error) {
			return client.RevokeSessionKey(ctx, pub)
		}, "revoke_session_key"},
		{"execute call", func() (*AssembledTransaction, error) {
			return client.ExecuteCall(ctx, testContractID(0x32), "transfer", MustUint32(1))
		}, "execute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := tt.run()
			if err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if len(tx.Raw.Operations) != 1 || tx.Raw.Operations[0].Method != tt.method {
				t.Errorf("assembled operation = %+v", tx.Raw.Operations)
			}
		})
	}

	t.Run("validation failures never reach the network", func(t *testing.T) {
		before := tr.simCalls
		if _, err := client.Initialize(ctx, "not-an-address"); err == nil {
			t.Fatal("expected validation error")
		}
		if tr.simCalls != before {
			t.Error("invalid argument must fail before simulation")
		}
	})
}

func TestClientRetriesTransportFailures(t *testing.T) {
	tr := &fakeTransport{
		resp:         successResponse(t, U64(1)),
		simErr:       errors.New("connection reset"),
		failSimTimes: 2,
	}
	client := newTestClient(t, tr)

	if _, err := client.GetNonce(context.Background()); err != nil {
		t.Fatalf("GetNonce should succeed after retries: %v", err)
	}
	if tr.simCalls != 3 {
		t.Errorf("expected 3 simulation attempts, got %d", tr.simCalls)
	}
}

func TestClientRetriesExhausted(t *testing.T) {
	cause := errors.New("connection reset")
	tr := &fakeTransport{
		accountErr:       cause,
		failAccountTimes: 100,
	}
	policy := &RetryPolicy{
		MaxAttempts:  2,
		BaseDelay:    time.Millisecond,
		NonRetryable: DefaultNonRetryable,
	}
	client := newTestClient(t, tr, WithRetryPolicy(policy))

	_, err := client.GetNonce(context.Background())

	var exhausted *RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("exhaustion error should wrap the last underlying error")
	}
	if tr.accountCalls != 2 {
		t.Errorf("expected 2 attempts, got %d", tr.accountCalls)
	}
}
