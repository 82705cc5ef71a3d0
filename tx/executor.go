package tx

import (
	"context"
	"time"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/metrics"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

// Services are the dependencies of the Executor
type Services struct {
	Client  ledger.Client
	Logger  log.Logger
	Metrics *metrics.ServiceMetrics
}

// Props define the behaviour of the Executor
type Props struct {
	// Defaults are used for the options a call leaves empty
	Defaults ExecuteConfig

	// Clock returns the local time. It defaults to time.Now
	Clock func() time.Time
}

// Executor runs a contract call from start to end: it fetches the
// sequence number of the sender, builds the request, has the node
// encode it, signs it, submits it and waits for its outcome.
//
// A failed step is returned as is and never retried. Once a
// transaction has been submitted, retrying may submit it a second
// time under another sequence number, so retries, including refreshing
// the sequence number, are left to the caller.
//
// Executions for the same sender must not run concurrently, they would
// use the same sequence number and all but one would be rejected
type Executor struct {
	sequence  *SequenceTracker
	builder   *Builder
	submitter *Submitter
	poller    *Poller
	defaults  ExecuteConfig
	clock     func() time.Time
	logger    log.Logger
	metrics   *metrics.ServiceMetrics
}

// NewExecutor creates a new Executor
func NewExecutor(services *Services, props *Props) *Executor {
	clock := props.Clock
	if clock == nil {
		clock = time.Now
	}

	defaults := props.Defaults.Merge(DefaultExecuteConfig)

	return &Executor{
		sequence:  NewSequenceTracker(services.Client, services.Logger),
		builder:   NewBuilder(defaults),
		submitter: NewSubmitter(services.Client),
		poller:    NewPoller(services.Client, services.Logger, clock),
		defaults:  defaults,
		clock:     clock,
		logger:    services.Logger.ForClass("tx", "Executor"),
		metrics:   services.Metrics,
	}
}

// Poller returns the poller used by the executor, so that callers can
// keep watching transactions that timed out
func (e *Executor) Poller() *Poller {
	return e.poller
}

// Execute submits a call to payload from account and waits for its
// outcome. Executed and Failed transactions are returned without
// error. Every other case returns the error of the step that failed
// along with whatever is known of the outcome at that point
func (e *Executor) Execute(
	ctx context.Context,
	account wallet.Account,
	payload ledger.EntryFunctionPayload,
	config ExecuteConfig,
) (Outcome, error) {
	start := time.Now()
	outcome, err := e.execute(ctx, account, payload, config.Merge(e.defaults))

	if e.metrics != nil {
		e.metrics.ObserveExecution(outcome.Status.String(), errors.Kind(err), time.Since(start))
	}

	return outcome, err
}

func (e *Executor) execute(
	ctx context.Context,
	account wallet.Account,
	payload ledger.EntryFunctionPayload,
	config ExecuteConfig,
) (Outcome, error) {
	sender := account.Address()
	fields := log.MapFields{"function": payload.Function}

	e.logger.Debug(ctx, "", log.MapFields{"call_type": "ExecuteAttempt"}, fields, account)

	if !account.CanSign() {
		err := errors.New(errors.ErrMissingSigner, nil)
		e.logger.Debug(ctx, "account cannot sign", log.MapFields{"call_type": "ExecuteFailure"}, fields, account, err)
		return Outcome{}, err
	}

	seq, err := e.sequence.Next(ctx, sender)
	if err != nil {
		e.logger.Debug(ctx, "failed to fetch sequence number", log.MapFields{"call_type": "SequenceFailure"}, fields, account, asLoggable(err))
		return Outcome{}, err
	}

	req := e.builder.Build(sender, payload, seq, e.clock(), config)

	hash, err := e.submitter.Submit(ctx, account.Signer(), req)
	if err != nil {
		callType := "SubmitFailure"
		if errors.Is(err, errors.ErrEncoding) || errors.Is(err, errors.ErrInvalidSigningMessage) {
			callType = "EncodeFailure"
		}

		e.logger.Debug(ctx, "failed to submit transaction", log.MapFields{
			"call_type":      callType,
			"sequenceNumber": seq,
		}, fields, account, asLoggable(err))
		return Outcome{SequenceNumber: seq}, err
	}

	expiration := time.Unix(int64(req.ExpirationTimestampSecs), 0)
	outcome, err := e.poller.Wait(ctx, hash, expiration, config.PollInterval, config.PollTimeout)
	outcome.Hash = hash
	outcome.SequenceNumber = seq
	if err != nil {
		e.logger.Debug(ctx, "failed to wait for transaction", log.MapFields{"call_type": "WaitFailure"},
			fields, account, outcome, asLoggable(err))
		return outcome, err
	}

	e.logger.Debug(ctx, "", log.MapFields{"call_type": "ExecuteSuccess"}, fields, account, outcome)
	return outcome, nil
}

// asLoggable returns err as a Loggable, wrapping errors that do not
// belong to the errors package
func asLoggable(err error) log.Loggable {
	if loggable, ok := err.(log.Loggable); ok {
		return loggable
	}
	return log.MapFields{"err": err.Error()}
}
