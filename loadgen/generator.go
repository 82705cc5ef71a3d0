package loadgen

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/pontem-network/flashloan-loadgen/concurrent"
	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/report"
	"github.com/pontem-network/flashloan-loadgen/stats"
	"github.com/pontem-network/flashloan-loadgen/tx"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

const (
	outcomeExecuted = "executed"

	defaultWindowSize uint32 = 1024
)

// Executor executes a single contract call
type Executor interface {
	Execute(ctx context.Context, account wallet.Account,
		payload ledger.EntryFunctionPayload, config tx.ExecuteConfig) (tx.Outcome, error)
}

type Services struct {
	Executor Executor
	Logger   log.Logger
	Sink     report.Sink
}

type Props struct {
	// Accounts send the transactions. Each account is driven by its own
	// worker, so its calls never overlap
	Accounts []wallet.Account

	Workload   Workload
	Iterations uint64

	// Rate is the target number of calls per second across all
	// accounts. Zero disables the limit
	Rate float64

	// Execute holds the options for every call
	Execute tx.ExecuteConfig

	// WindowSize is the number of latency samples kept
	WindowSize uint32
}

// Generator drives a load generation run
type Generator struct {
	executor   Executor
	logger     log.Logger
	sink       report.Sink
	accounts   []wallet.Account
	workload   Workload
	iterations uint64
	limiter    *rate.Limiter
	execute    tx.ExecuteConfig
	windowSize uint32
}

// NewGenerator creates a new Generator
func NewGenerator(services *Services, props *Props) (*Generator, error) {
	if len(props.Accounts) == 0 {
		return nil, errors.New(errors.ErrInvalidConfig, errNoAccounts)
	}
	if props.Workload == nil {
		return nil, errors.New(errors.ErrInvalidConfig, errNoWorkload)
	}

	var limiter *rate.Limiter
	if props.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(props.Rate), 1)
	}

	windowSize := props.WindowSize
	if windowSize == 0 {
		windowSize = defaultWindowSize
	}

	sink := services.Sink
	if sink == nil {
		sink = report.NewLogSink(services.Logger)
	}

	return &Generator{
		executor:   services.Executor,
		logger:     services.Logger.ForClass("loadgen", "Generator"),
		sink:       sink,
		accounts:   props.Accounts,
		workload:   props.Workload,
		iterations: props.Iterations,
		limiter:    limiter,
		execute:    props.Execute,
		windowSize: windowSize,
	}, nil
}

// Run performs Iterations calls and returns their summary. A run is
// identified by a new UUID which is attached to the context and to
// every record. Run returns early if ctx is done, with the summary of
// the calls that completed
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	runID := uuid.New().String()
	ctx = log.PutRunID(ctx, runID)

	g.logger.Info(ctx, "load generation started", log.MapFields{
		"call_type":  "RunStart",
		"runId":      runID,
		"accounts":   len(g.accounts),
		"iterations": g.iterations,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := concurrent.NewOwnerPool(runCtx, concurrent.OwnerPoolProps{
		Owners:  len(g.accounts),
		Handler: concurrent.OwnerHandlerFunc(g.handle),
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer pool.Close()
		g.produce(runCtx, pool)
	}()

	outcomes := stats.NewCounterGroup()
	latencies := stats.NewIntWindow(g.windowSize)
	var runErr, sinkErr error
	start := time.Now()

	for result := range pool.Results() {
		if result.Err != nil {
			// a call that could not be built stops the run
			if runErr == nil {
				runErr = result.Err
				cancel()
			}
			continue
		}

		record := result.Result.(report.Record)
		record.RunID = runID

		outcomes.Incr(outcomeKey(record))
		latencies.Add(record.LatencyMs)

		if err := g.sink.Write(ctx, record); err != nil && sinkErr == nil {
			sinkErr = err
			g.logger.Warn(ctx, "failed to write record", log.MapFields{
				"call_type": "ReportFailure",
			}, record, log.MapFields{"err": err.Error()})
		}
	}

	wg.Wait()
	duration := time.Since(start)

	summary := Summary{
		RunID:    runID,
		Calls:    outcomes.Total(),
		Outcomes: make(map[string]uint64),
		Latency:  latencyFromWindow(latencies),
		Duration: duration,
	}
	for key, value := range outcomes.Stats() {
		summary.Outcomes[key] = value.(uint64)
	}
	if duration > 0 {
		summary.Throughput = float64(summary.Calls) / duration.Seconds()
	}

	g.logger.Info(ctx, "load generation finished", log.MapFields{"call_type": "RunDone"}, summary)

	if runErr != nil {
		return summary, runErr
	}
	if sinkErr != nil {
		return summary, sinkErr
	}
	if ctx.Err() != nil {
		return summary, errors.New(errors.ErrCanceled, ctx.Err())
	}

	return summary, nil
}

// produce submits the call indexes until the iterations are done or
// ctx is done
func (g *Generator) produce(ctx context.Context, pool *concurrent.OwnerPool) {
	for i := uint64(0); i < g.iterations; i++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return
			}
		}

		if err := pool.Submit(ctx, i); err != nil {
			return
		}
	}
}

func (g *Generator) handle(ctx context.Context, owner int, job interface{}) (interface{}, error) {
	index := job.(uint64)
	account := g.accounts[owner]
	ctx = log.PutTraceID(ctx, int64(index))

	payload, err := g.workload.Payload(owner, index)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outcome, err := g.executor.Execute(ctx, account, payload, g.execute)
	latency := time.Since(start)

	record := report.Record{
		Index:          index,
		Sender:         account.Address().String(),
		Function:       payload.Function,
		Hash:           outcome.Hash,
		SequenceNumber: outcome.SequenceNumber,
		Version:        outcome.Version,
		GasUsed:        outcome.GasUsed,
		Status:         outcome.Status.String(),
		Reason:         outcome.Reason,
		LatencyMs:      latency.Milliseconds(),
		Timestamp:      start,
	}
	if err != nil {
		record.ErrorKind = errors.Kind(err)
		record.Error = err.Error()
	}

	return record, nil
}

// outcomeKey is the label under which a record is counted. A pending
// transaction is never counted as executed
func outcomeKey(record report.Record) string {
	if len(record.ErrorKind) > 0 {
		return record.ErrorKind
	}
	return record.Status
}
