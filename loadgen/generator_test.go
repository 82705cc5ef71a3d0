package loadgen

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pontem-network/flashloan-loadgen/contract"
	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/report"
	"github.com/pontem-network/flashloan-loadgen/tx"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

const testSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func testAccounts(t *testing.T, n int) []wallet.Account {
	signer, err := wallet.ParseEd25519Signer(testSeed)
	if err != nil {
		t.Fatal(err)
	}

	var accounts []wallet.Account
	for i := 0; i < n; i++ {
		addr := ledger.MustParseAddress(fmt.Sprintf("0xa%d", i+1))
		accounts = append(accounts, wallet.NewAccountWithAddress(addr, signer))
	}
	return accounts
}

func testWorkload(t *testing.T) IdentitySwapWorkload {
	env, err := contract.LookupEnvironment("local")
	if err != nil {
		t.Fatal(err)
	}
	return IdentitySwapWorkload{Flashloan: env.Flashloan(), Start: 100000, Step: 10}
}

// fakeExecutor records the calls it gets and fails the ones
// selected by fail
type fakeExecutor struct {
	mu       sync.Mutex
	active   map[ledger.Address]bool
	overlap  bool
	payloads []ledger.EntryFunctionPayload
	senders  []ledger.Address
	fail     func(i int) error
	calls    int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{active: make(map[ledger.Address]bool)}
}

func (e *fakeExecutor) Execute(
	ctx context.Context,
	account wallet.Account,
	payload ledger.EntryFunctionPayload,
	config tx.ExecuteConfig,
) (tx.Outcome, error) {
	e.mu.Lock()
	if e.active[account.Address()] {
		e.overlap = true
	}
	e.active[account.Address()] = true
	e.payloads = append(e.payloads, payload)
	e.senders = append(e.senders, account.Address())
	i := e.calls
	e.calls++
	e.mu.Unlock()

	time.Sleep(time.Millisecond)

	e.mu.Lock()
	e.active[account.Address()] = false
	e.mu.Unlock()

	if e.fail != nil {
		if err := e.fail(i); err != nil {
			return tx.Outcome{Hash: "0xaa", Status: tx.Pending}, err
		}
	}

	return tx.Outcome{Hash: "0xaa", Status: tx.Executed}, nil
}

type memorySink struct {
	records []report.Record
}

func (s *memorySink) Write(ctx context.Context, record report.Record) error {
	s.records = append(s.records, record)
	return nil
}

func (s *memorySink) Close() error {
	return nil
}

func newGenerator(t *testing.T, executor Executor, sink report.Sink, props Props) *Generator {
	g, err := NewGenerator(&Services{
		Executor: executor,
		Logger:   log.NewLogrus(log.LogrusLoggerProperties{}),
		Sink:     sink,
	}, &props)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestIdentitySwapWorkloadAmounts(t *testing.T) {
	workload := testWorkload(t)

	payload, err := workload.Payload(0, 3)

	assert.Nil(t, err)
	assert.Equal(t, uint64(100030), workload.Amount(3))
	assert.Equal(t, []interface{}{"100030"}, payload.Arguments)
}

func TestNewGeneratorRequiresAccounts(t *testing.T) {
	_, err := NewGenerator(&Services{
		Executor: newFakeExecutor(),
		Logger:   log.NewLogrus(log.LogrusLoggerProperties{}),
	}, &Props{Workload: testWorkload(t)})

	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestRunAllExecuted(t *testing.T) {
	executor := newFakeExecutor()
	sink := &memorySink{}
	g := newGenerator(t, executor, sink, Props{
		Accounts:   testAccounts(t, 3),
		Workload:   testWorkload(t),
		Iterations: 12,
	})

	summary, err := g.Run(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, uint64(12), summary.Calls)
	assert.Equal(t, uint64(12), summary.Succeeded())
	assert.Equal(t, map[string]uint64{"executed": 12}, summary.Outcomes)
	assert.NotEmpty(t, summary.RunID)
	assert.True(t, summary.Throughput > 0)
	assert.False(t, executor.overlap)

	assert.Len(t, sink.records, 12)
	for _, record := range sink.records {
		assert.Equal(t, summary.RunID, record.RunID)
	}
}

func TestRunAmountsIncrease(t *testing.T) {
	executor := newFakeExecutor()
	g := newGenerator(t, executor, &memorySink{}, Props{
		Accounts:   testAccounts(t, 1),
		Workload:   testWorkload(t),
		Iterations: 5,
	})

	_, err := g.Run(context.Background())
	assert.Nil(t, err)

	var amounts []interface{}
	for _, payload := range executor.payloads {
		amounts = append(amounts, payload.Arguments[0])
	}
	assert.Equal(t, []interface{}{"100000", "100010", "100020", "100030", "100040"}, amounts)
}

func TestRunCountsErrorKinds(t *testing.T) {
	executor := newFakeExecutor()
	executor.fail = func(i int) error {
		if i%2 == 1 {
			return errors.New(errors.ErrTimeout, nil)
		}
		return nil
	}

	sink := &memorySink{}
	g := newGenerator(t, executor, sink, Props{
		Accounts:   testAccounts(t, 1),
		Workload:   testWorkload(t),
		Iterations: 4,
	})

	summary, err := g.Run(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, map[string]uint64{"executed": 2, "timeout": 2}, summary.Outcomes)
	assert.Equal(t, uint64(2), summary.Succeeded())

	for _, record := range sink.records {
		if record.ErrorKind == "timeout" {
			assert.Equal(t, "pending", record.Status)
		}
	}
}

func TestRunRateLimited(t *testing.T) {
	g := newGenerator(t, newFakeExecutor(), &memorySink{}, Props{
		Accounts:   testAccounts(t, 2),
		Workload:   testWorkload(t),
		Iterations: 4,
		Rate:       50,
	})

	start := time.Now()
	summary, err := g.Run(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, uint64(4), summary.Calls)
	// the first call is free, the other three wait 20ms each
	assert.True(t, time.Since(start) >= 55*time.Millisecond)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGenerator(t, newFakeExecutor(), &memorySink{}, Props{
		Accounts:   testAccounts(t, 2),
		Workload:   testWorkload(t),
		Iterations: 100,
	})

	summary, err := g.Run(ctx)

	assert.True(t, errors.Is(err, errors.ErrCanceled))
	assert.True(t, summary.Calls < 100)
}

func TestMixedWorkloadTraders(t *testing.T) {
	loans := testWorkload(t)
	workload := MixedWorkload{
		Loans:   loans,
		Swaps:   SwapWorkload{Flashloan: loans.Flashloan, Amount: 100},
		Owners:  3,
		Traders: 1,
	}

	assert.False(t, workload.Trader(0))
	assert.False(t, workload.Trader(1))
	assert.True(t, workload.Trader(2))

	payload, err := workload.Payload(1, 0)
	assert.Nil(t, err)
	assert.True(t, strings.HasSuffix(payload.Function, "::flashloan_swap::identity_swap"))
	assert.Equal(t, []interface{}{"100000"}, payload.Arguments)

	payload, err = workload.Payload(2, 7)
	assert.Nil(t, err)
	assert.True(t, strings.HasSuffix(payload.Function, "::flashloan_swap::swap"))
	assert.Equal(t, []interface{}{"100"}, payload.Arguments)
}

func TestRunMixedWorkload(t *testing.T) {
	loans := testWorkload(t)
	accounts := testAccounts(t, 3)
	executor := newFakeExecutor()
	g := newGenerator(t, executor, &memorySink{}, Props{
		Accounts: accounts,
		Workload: MixedWorkload{
			Loans:   loans,
			Swaps:   SwapWorkload{Flashloan: loans.Flashloan, Amount: 100},
			Owners:  len(accounts),
			Traders: 1,
		},
		Iterations: 25,
	})

	summary, err := g.Run(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, uint64(25), summary.Calls)
	assert.False(t, executor.overlap)

	trader := accounts[2].Address()
	for i, payload := range executor.payloads {
		if executor.senders[i] == trader {
			assert.True(t, strings.HasSuffix(payload.Function, "::flashloan_swap::swap"))
			assert.Equal(t, []interface{}{"100"}, payload.Arguments)
		} else {
			assert.True(t, strings.HasSuffix(payload.Function, "::flashloan_swap::identity_swap"))
		}
	}
}

type failingWorkload struct{}

func (failingWorkload) Payload(owner int, i uint64) (ledger.EntryFunctionPayload, error) {
	return ledger.EntryFunctionPayload{}, errors.New(errors.ErrInvalidPayload, nil)
}

func TestRunStopsOnPayloadError(t *testing.T) {
	executor := newFakeExecutor()
	g := newGenerator(t, executor, &memorySink{}, Props{
		Accounts:   testAccounts(t, 2),
		Workload:   failingWorkload{},
		Iterations: 100,
	})

	summary, err := g.Run(context.Background())

	assert.True(t, errors.Is(err, errors.ErrInvalidPayload))
	assert.Equal(t, uint64(0), summary.Calls)
	assert.Equal(t, 0, executor.calls)
}
