package concurrent

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrPoolClosed is returned when submitting work to a pool that
// has already been closed
var ErrPoolClosed = errors.New("owner pool is closed")

// OwnerHandler handles the jobs of one owner. An owner is always
// served by the same goroutine, so a handler may keep state for an
// owner, such as an account and its transaction ordering, without
// locks
type OwnerHandler interface {
	Handle(ctx context.Context, owner int, job interface{}) (interface{}, error)
}

// OwnerHandlerFunc allows functions to act as an OwnerHandler
type OwnerHandlerFunc func(ctx context.Context, owner int, job interface{}) (interface{}, error)

// Handle implementation of OwnerHandler for OwnerHandlerFunc
func (f OwnerHandlerFunc) Handle(ctx context.Context, owner int, job interface{}) (interface{}, error) {
	return f(ctx, owner, job)
}

// Result is the result of a job handled by an owner
type Result struct {
	// Result is the value returned by the handler if any
	Result interface{}

	// Err is the error returned by the handler if any
	Err error

	// Owner is the index of the owner that handled the job
	Owner int

	// Index is the order in which the job was submitted to the pool
	Index uint64

	// TimeSubmitted is the time at which the job was submitted
	TimeSubmitted time.Time

	// TimeExecuted is the time at which an owner picked up the job
	TimeExecuted time.Time

	// TimeDone is the time at which the handler returned
	TimeDone time.Time
}

// Latency is the time the handler spent on the job
func (r Result) Latency() time.Duration {
	return r.TimeDone.Sub(r.TimeExecuted)
}

type ownerJob struct {
	Index         uint64
	Value         interface{}
	TimeSubmitted time.Time
}

// OwnerPoolProps are the properties used to create an OwnerPool
type OwnerPoolProps struct {
	// Owners is the number of owners, each running on its own
	// goroutine
	Owners int

	// Handler handles the jobs for all owners
	Handler OwnerHandler

	// ResultBuffer is the capacity of the results channel
	ResultBuffer int
}

// OwnerPool runs one goroutine per owner. Jobs are placed in a
// shared channel and whichever owner is available picks them up,
// but an owner never handles two jobs at the same time
type OwnerPool struct {
	handler OwnerHandler
	jobs    chan ownerJob
	results chan Result
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	counter uint64
}

// NewOwnerPool creates and starts an OwnerPool. The owners stop when
// ctx is done or the pool is closed
func NewOwnerPool(ctx context.Context, props OwnerPoolProps) *OwnerPool {
	if props.Owners <= 0 {
		props.Owners = 1
	}
	if props.ResultBuffer <= 0 {
		props.ResultBuffer = 64
	}

	pool := &OwnerPool{
		handler: props.Handler,
		jobs:    make(chan ownerJob),
		results: make(chan Result, props.ResultBuffer),
	}

	pool.wg.Add(props.Owners)
	for owner := 0; owner < props.Owners; owner++ {
		go pool.run(ctx, owner)
	}

	go func() {
		pool.wg.Wait()
		close(pool.results)
	}()

	return pool
}

func (p *OwnerPool) run(ctx context.Context, owner int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}

			executed := time.Now()
			v, err := p.handler.Handle(ctx, owner, job.Value)
			result := Result{
				Result:        v,
				Err:           err,
				Owner:         owner,
				Index:         job.Index,
				TimeSubmitted: job.TimeSubmitted,
				TimeExecuted:  executed,
				TimeDone:      time.Now(),
			}

			p.results <- result
		}
	}
}

// Submit hands a job to the next available owner. It blocks until
// an owner picks the job up or ctx is done
func (p *OwnerPool) Submit(ctx context.Context, job interface{}) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	index := p.counter
	p.counter++
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- ownerJob{Index: index, Value: job, TimeSubmitted: time.Now()}:
		return nil
	}
}

// Results returns the channel on which job results are delivered. The
// channel is closed once all owners have exited. Every job an owner
// picks up produces a result, also when ctx is done while it is being
// handled, so the channel must be drained until it is closed
func (p *OwnerPool) Results() <-chan Result {
	return p.results
}

// Close stops accepting jobs. Owners finish the job they are handling
// and exit. Close must not be called concurrently with Submit
func (p *OwnerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	close(p.jobs)
}
