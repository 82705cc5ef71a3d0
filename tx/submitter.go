package tx

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

// Submitter performs one submission attempt: it asks the node for the
// signing message of a request, signs it and submits the signed
// transaction. The node computes the signing message, so it is
// trusted not to alter the request it encodes
type Submitter struct {
	client ledger.Client
}

// NewSubmitter creates a new Submitter
func NewSubmitter(client ledger.Client) *Submitter {
	return &Submitter{client: client}
}

// Sign returns the signed transaction for req and the signing message
// msg
func Sign(signer wallet.Signer, req ledger.TransactionRequest, msg []byte) (ledger.SignedTransaction, error) {
	sig, err := signer.Sign(msg)
	if err != nil {
		return ledger.SignedTransaction{}, errors.New(errors.ErrSignTransaction, err)
	}

	return ledger.SignedTransaction{
		TransactionRequest: req,
		Signature: ledger.Signature{
			Type:      ledger.Ed25519SignatureType,
			PublicKey: hexutil.Encode(signer.PublicKey()),
			Signature: hexutil.Encode(sig),
		},
	}, nil
}

// Submit encodes, signs and submits req and returns the hash of the
// accepted transaction. Failures happen in one of three steps and
// carry the error code of that step: ErrEncoding when the node rejects
// the request, ErrSignTransaction when signing fails and ErrSubmission*
// when the node rejects the signed transaction
func (s *Submitter) Submit(
	ctx context.Context,
	signer wallet.Signer,
	req ledger.TransactionRequest,
) (string, error) {
	msg, err := s.client.EncodeSubmission(ctx, req)
	if err != nil {
		return "", err
	}

	signed, err := Sign(signer, req, msg)
	if err != nil {
		return "", err
	}

	pending, err := s.client.SubmitTransaction(ctx, signed)
	if err != nil {
		return "", err
	}

	return pending.Hash, nil
}
