package tx

import (
	"context"
	"crypto/ed25519"
	stderr "errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/ledger/ledgertest"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

type failingSigner struct{}

func (failingSigner) Sign(msg []byte) ([]byte, error) {
	return nil, stderr.New("hardware signer unavailable")
}

func (failingSigner) PublicKey() []byte {
	return []byte{1}
}

func TestSignSignsNodeMessage(t *testing.T) {
	signer, _ := wallet.ParseEd25519Signer(testSeed)
	req := ledger.TransactionRequest{SequenceNumber: 3}
	msg := []byte("signing message")

	signed, err := Sign(signer, req, msg)

	assert.Nil(t, err)
	assert.Equal(t, req, signed.TransactionRequest)
	assert.Equal(t, ledger.Ed25519SignatureType, signed.Signature.Type)
	assert.Equal(t, hexutil.Encode(signer.PublicKey()), signed.Signature.PublicKey)

	sig, err := hexutil.Decode(signed.Signature.Signature)
	assert.Nil(t, err)
	assert.True(t, ed25519.Verify(signer.PublicKey(), msg, sig))
}

func TestSubmitEncodeRejectedSkipsSubmit(t *testing.T) {
	client := &ledgertest.MockClient{}
	client.On("EncodeSubmission", mock.Anything, mock.Anything).
		Return(nil, errors.NewWithBody(errors.ErrEncoding, nil, `{"message":"bad"}`))

	signer, _ := wallet.ParseEd25519Signer(testSeed)
	_, err := NewSubmitter(client).Submit(context.Background(), signer, ledger.TransactionRequest{})

	assert.True(t, errors.Is(err, errors.ErrEncoding))
	client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}

func TestSubmitSignFailure(t *testing.T) {
	client := &ledgertest.MockClient{}
	ledgertest.ImplementMock(client)

	_, err := NewSubmitter(client).Submit(context.Background(), failingSigner{}, ledger.TransactionRequest{})

	assert.True(t, errors.Is(err, errors.ErrSignTransaction))
	client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}

func TestSubmitReturnsHash(t *testing.T) {
	client := &ledgertest.MockClient{}
	ledgertest.ImplementMock(client)

	signer, _ := wallet.ParseEd25519Signer(testSeed)
	hash, err := NewSubmitter(client).Submit(context.Background(), signer, ledger.TransactionRequest{})

	assert.Nil(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", hash)
	client.AssertNumberOfCalls(t, "SubmitTransaction", 1)
}
