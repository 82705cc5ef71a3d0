package ledgertest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pontem-network/flashloan-loadgen/ledger"
)

type MockMethod struct {
	Arguments []interface{}
	Return    []interface{}
	Run       func(mock.Arguments)
}

type MockMethods map[string]MockMethod

var DefaultMockMethods = map[string]MockMethod{
	"GetAccount": MockMethod{
		Arguments: []interface{}{mock.Anything, mock.Anything},
		Return:    []interface{}{ledger.AccountInfo{SequenceNumber: 0}, nil},
	},
	"EncodeSubmission": MockMethod{
		Arguments: []interface{}{mock.Anything, mock.Anything},
		Return:    []interface{}{[]byte("signing message"), nil},
	},
	"SubmitTransaction": MockMethod{
		Arguments: []interface{}{mock.Anything, mock.Anything},
		Return: []interface{}{
			ledger.PendingTransaction{
				Hash: "0x0000000000000000000000000000000000000000000000000000000000000001",
			}, nil,
		},
	},
	"GetTransaction": MockMethod{
		Arguments: []interface{}{mock.Anything, mock.Anything},
		Return: []interface{}{
			ledger.Transaction{
				Type:     ledger.UserTransactionType,
				Hash:     "0x0000000000000000000000000000000000000000000000000000000000000001",
				Success:  true,
				VMStatus: "Executed successfully",
			}, nil,
		},
	},
	"CoinBalance": MockMethod{
		Arguments: []interface{}{mock.Anything, mock.Anything, mock.Anything},
		Return:    []interface{}{uint64(0), nil},
	},
	"LedgerInfo": MockMethod{
		Arguments: []interface{}{mock.Anything},
		Return:    []interface{}{ledger.LedgerInfo{ChainID: 4}, nil},
	},
}

func OverwriteDefaults(overwrite MockMethods) MockMethods {
	methods := make(MockMethods)

	for key, value := range DefaultMockMethods {
		if o, ok := overwrite[key]; ok {
			methods[key] = o
		} else {
			methods[key] = value
		}
	}

	return methods
}

func ImplementMockWithOverwrite(client *MockClient, overwrite MockMethods) {
	ImplementMockWithMethods(client, OverwriteDefaults(overwrite))
}

func ImplementMockWithMethods(client *MockClient, methods MockMethods) {
	for key, method := range methods {
		call := client.On(key, method.Arguments...)
		if len(method.Return) > 0 {
			call = call.Return(method.Return...)
		}
		if method.Run != nil {
			call = call.Run(method.Run)
		}
	}
}

func ImplementMock(client *MockClient) {
	ImplementMockWithMethods(client, DefaultMockMethods)
}

// MockClient is a testify mock of ledger.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetAccount(ctx context.Context, addr ledger.Address) (ledger.AccountInfo, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(ledger.AccountInfo), args.Error(1)
}

func (m *MockClient) EncodeSubmission(ctx context.Context, req ledger.TransactionRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), nil
}

func (m *MockClient) SubmitTransaction(
	ctx context.Context,
	signed ledger.SignedTransaction,
) (ledger.PendingTransaction, error) {
	args := m.Called(ctx, signed)
	return args.Get(0).(ledger.PendingTransaction), args.Error(1)
}

func (m *MockClient) GetTransaction(ctx context.Context, hash string) (ledger.Transaction, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockClient) CoinBalance(ctx context.Context, addr ledger.Address, coinType string) (uint64, error) {
	args := m.Called(ctx, addr, coinType)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockClient) LedgerInfo(ctx context.Context) (ledger.LedgerInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(ledger.LedgerInfo), args.Error(1)
}
