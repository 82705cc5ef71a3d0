package tx

import (
	"context"
	"time"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
)

// Poller waits for transactions to reach a terminal state
type Poller struct {
	client ledger.Client
	logger log.Logger
	now    func() time.Time
}

// NewPoller creates a new Poller. now is used when the node does not
// report its ledger time, and defaults to time.Now
func NewPoller(client ledger.Client, logger log.Logger, now func() time.Time) *Poller {
	if now == nil {
		now = time.Now
	}

	return &Poller{
		client: client,
		logger: logger.ForClass("tx", "Poller"),
		now:    now,
	}
}

// Poll queries the state of a transaction once. Transactions the node
// does not know yet are reported as Pending, as a just submitted
// transaction may not be visible on every node
func (p *Poller) Poll(ctx context.Context, hash string) (Outcome, time.Time, error) {
	outcome := Outcome{Hash: hash, Status: Pending}

	transaction, err := p.client.GetTransaction(ctx, hash)
	if err != nil {
		if errors.Is(err, errors.ErrTransactionNotFound) {
			return outcome, p.now(), nil
		}
		return outcome, time.Time{}, err
	}

	ledgerTime := p.now()
	if transaction.LedgerTimestampUsec > 0 {
		ledgerTime = time.Unix(0, int64(transaction.LedgerTimestampUsec)*int64(time.Microsecond))
	}

	switch {
	case transaction.Pending():
		outcome.Status = Pending
	case transaction.Success:
		outcome.Status = Executed
		outcome.Reason = transaction.VMStatus
	default:
		outcome.Status = Failed
		outcome.Reason = transaction.VMStatus
	}
	outcome.SequenceNumber = uint64(transaction.SequenceNumber)
	outcome.Version = uint64(transaction.Version)
	outcome.GasUsed = uint64(transaction.GasUsed)

	return outcome, ledgerTime, nil
}

// Wait polls the transaction every interval until it is executed or
// fails, until the ledger time passes expiration, in which case it
// fails with ErrExpired, or until timeout elapses, in which case it
// fails with ErrTimeout, also when a poll is still in flight. A
// timeout does not mean that the transaction failed, it may still be
// executed. Canceling ctx stops the polling and fails with
// ErrCanceled. On failure the last observed outcome is
// returned along with the error
func (p *Poller) Wait(
	ctx context.Context,
	hash string,
	expiration time.Time,
	interval time.Duration,
	timeout time.Duration,
) (Outcome, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	polls := 0
	for {
		outcome, ledgerTime, err := p.Poll(waitCtx, hash)
		polls++
		if err != nil {
			if waitCtx.Err() != nil {
				return outcome, p.stopped(ctx)
			}
			return outcome, err
		}

		if outcome.Status.Terminal() {
			p.logger.Debug(ctx, "", log.MapFields{
				"call_type": "WaitSuccess",
				"polls":     polls,
			}, outcome)
			return outcome, nil
		}

		if !ledgerTime.Before(expiration) {
			outcome.Status = Expired
			return outcome, errors.New(errors.ErrExpired, nil)
		}

		select {
		case <-waitCtx.Done():
			return outcome, p.stopped(ctx)
		case <-ticker.C:
		}
	}
}

// stopped returns the error for a wait that ended because its context
// is done. The parent ctx tells a cancellation apart from the wait
// timeout
func (p *Poller) stopped(ctx context.Context) error {
	if ctx.Err() != nil {
		return errors.New(errors.ErrCanceled, ctx.Err())
	}
	return errors.New(errors.ErrTimeout, nil)
}
