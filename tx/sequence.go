package tx

import (
	"context"

	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
)

// SequenceTracker returns the sequence number an account must use for
// its next transaction. It queries the node on every call. Sequence
// numbers are not reserved, so two concurrent callers for the same
// account observe the same value
type SequenceTracker struct {
	client ledger.Client
	logger log.Logger
}

// NewSequenceTracker creates a new SequenceTracker
func NewSequenceTracker(client ledger.Client, logger log.Logger) *SequenceTracker {
	return &SequenceTracker{
		client: client,
		logger: logger.ForClass("tx", "SequenceTracker"),
	}
}

// Next returns the current on-chain sequence number of addr. It fails
// with ErrAccountNotFound if the account does not exist
func (t *SequenceTracker) Next(ctx context.Context, addr ledger.Address) (uint64, error) {
	info, err := t.client.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}

	t.logger.Debug(ctx, "", log.MapFields{
		"call_type":      "SequenceSuccess",
		"address":        addr.String(),
		"sequenceNumber": uint64(info.SequenceNumber),
	})

	return uint64(info.SequenceNumber), nil
}
