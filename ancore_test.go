package ancore

import (
	"context"
	"testing"
	"time"

	"github.com/stellar/go/strkey"
)

// testAccountID returns a deterministic, well-formed account address.
func testAccountID(fill byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return strkey.MustEncode(strkey.VersionByteAccountID, raw)
}

// testContractID returns a deterministic, well-formed contract address.
func testContractID(fill byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return strkey.MustEncode(strkey.VersionByteContract, raw)
}

// fakeTransport is a hand-written Transport double recording every call.
type fakeTransport struct {
	account          *Account
	accountErr       error
	failAccountTimes int

	resp         *SimulationResponse
	simErr       error
	failSimTimes int

	accountCalls int
	simCalls     int
	lastTx       *RawTransaction
}

func (f *fakeTransport) GetAccount(_ context.Context, accountID string) (*Account, error) {
	f.accountCalls++
	if f.failAccountTimes > 0 {
		f.failAccountTimes--
		return nil, f.accountErr
	}
	if f.account != nil {
		return f.account, nil
	}
	return &Account{ID: accountID, Sequence: 7}, nil
}

func (f *fakeTransport) SimulateTransaction(_ context.Context, tx *RawTransaction) (*SimulationResponse, error) {
	f.simCalls++
	f.lastTx = tx
	if f.failSimTimes > 0 {
		f.failSimTimes--
		return nil, f.simErr
	}
	return f.resp, nil
}

// successResponse wraps a return value in a minimal successful response.
func successResponse(t *testing.T, ret Value) *SimulationResponse {
	t.Helper()
	raw, err := MarshalValue(ret)
	if err != nil {
		t.Fatalf("marshal return value: %v", err)
	}
	return &SimulationResponse{
		Results: []SimulationResult{{ReturnValue: raw}},
		Footprint: Footprint{
			ReadOnly:  []string{"instance"},
			ReadWrite: []string{"nonce"},
		},
		MinResourceFee: 5000,
		LatestLedger:   123456,
	}
}

// newTestClient builds a client against the fake transport with a fast
// retry policy so failing tests don't stall.
func newTestClient(t *testing.T, tr Transport, opts ...ClientOption) *AccountClient {
	t.Helper()
	fast := &RetryPolicy{
		MaxAttempts:  3,
		BaseDelay:    time.Millisecond,
		Exponential:  false,
		NonRetryable: DefaultNonRetryable,
	}
	opts = append([]ClientOption{WithRetryPolicy(fast)}, opts...)
	client, err := NewAccountClient(testContractID(0xC1), testAccountID(0xA1), tr, opts...)
	if err != nil {
		t.Fatalf("NewAccountClient: %v", err)
	}
	return client
}
