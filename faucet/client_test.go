package faucet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/tx"
)

var testAddress = ledger.MustParseAddress("0xa1")

type mockWaiter struct {
	mock.Mock
}

func (m *mockWaiter) Wait(ctx context.Context, hash string, expiration time.Time,
	interval time.Duration, timeout time.Duration) (tx.Outcome, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(tx.Outcome), args.Error(1)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Services{
		Logger: log.NewLogrus(log.LogrusLoggerProperties{}),
	}, &Props{URL: server.URL + "/", Timeout: time.Second})
}

func TestFund(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/mint", r.URL.Path)
		assert.Equal(t, "500", r.URL.Query().Get("amount"))
		assert.Equal(t, testAddress.String(), r.URL.Query().Get("address"))
		_, _ = w.Write([]byte(`["0xaa","0xbb"]`))
	})

	hashes, err := client.Fund(context.Background(), testAddress, 500)

	assert.Nil(t, err)
	assert.Equal(t, []string{"0xaa", "0xbb"}, hashes)
}

func TestFundRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("amount too large"))
	})

	_, err := client.Fund(context.Background(), testAddress, 500)

	assert.True(t, errors.Is(err, errors.ErrFaucet))
	assert.Equal(t, "amount too large", err.(errors.Error).Body)
}

func TestFundBadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hash":"0xaa"}`))
	})

	_, err := client.Fund(context.Background(), testAddress, 500)

	assert.True(t, errors.Is(err, errors.ErrDeserializeResponse))
}

func TestFundAndWait(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["0xaa","0xbb"]`))
	})

	waiter := &mockWaiter{}
	waiter.On("Wait", mock.Anything, mock.Anything).Return(tx.Outcome{Status: tx.Executed}, nil)

	hashes, err := client.FundAndWait(context.Background(), waiter, testAddress, 500, tx.ExecuteConfig{})

	assert.Nil(t, err)
	assert.Len(t, hashes, 2)
	waiter.AssertNumberOfCalls(t, "Wait", 2)
}

func TestFundAndWaitAborted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["0xaa","0xbb"]`))
	})

	waiter := &mockWaiter{}
	waiter.On("Wait", mock.Anything, "0xaa").
		Return(tx.Outcome{Status: tx.Failed, Reason: "Move abort"}, nil)

	_, err := client.FundAndWait(context.Background(), waiter, testAddress, 500, tx.ExecuteConfig{})

	assert.True(t, errors.Is(err, errors.ErrFaucet))
	waiter.AssertNumberOfCalls(t, "Wait", 1)
}
