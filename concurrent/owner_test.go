package concurrent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	mu     sync.Mutex
	active map[int]int
	max    map[int]int
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{active: make(map[int]int), max: make(map[int]int)}
}

func (h *recordingHandler) Handle(ctx context.Context, owner int, job interface{}) (interface{}, error) {
	h.mu.Lock()
	h.active[owner]++
	if h.active[owner] > h.max[owner] {
		h.max[owner] = h.active[owner]
	}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.active[owner]--
		h.mu.Unlock()
	}()

	n := job.(int)
	if n < 0 {
		return nil, errors.New("negative")
	}
	return n * 2, nil
}

func drain(pool *OwnerPool) []Result {
	var results []Result
	for r := range pool.Results() {
		results = append(results, r)
	}
	return results
}

func TestOwnerPoolHandlesAllJobs(t *testing.T) {
	ctx := context.Background()
	handler := newRecordingHandler()
	pool := NewOwnerPool(ctx, OwnerPoolProps{Owners: 4, Handler: handler, ResultBuffer: 100})

	for i := 0; i < 100; i++ {
		assert.Nil(t, pool.Submit(ctx, i))
	}
	pool.Close()

	results := drain(pool)
	assert.Len(t, results, 100)

	sum := 0
	for _, r := range results {
		assert.Nil(t, r.Err)
		assert.True(t, r.Owner >= 0 && r.Owner < 4)
		assert.False(t, r.TimeDone.Before(r.TimeExecuted))
		sum += r.Result.(int)
	}
	assert.Equal(t, 2*(99*100/2), sum)

	for owner, max := range handler.max {
		assert.Equal(t, 1, max, "owner %d handled jobs concurrently", owner)
	}
}

func TestOwnerPoolReportsErrors(t *testing.T) {
	ctx := context.Background()
	pool := NewOwnerPool(ctx, OwnerPoolProps{Owners: 1, Handler: newRecordingHandler()})

	assert.Nil(t, pool.Submit(ctx, -1))
	pool.Close()

	results := drain(pool)
	assert.Len(t, results, 1)
	assert.Equal(t, "negative", results[0].Err.Error())
	assert.Equal(t, uint64(0), results[0].Index)
}

func TestOwnerPoolSubmitAfterClose(t *testing.T) {
	ctx := context.Background()
	pool := NewOwnerPool(ctx, OwnerPoolProps{Owners: 2, Handler: newRecordingHandler()})
	pool.Close()
	pool.Close()

	assert.Equal(t, ErrPoolClosed, pool.Submit(ctx, 1))
	assert.Len(t, drain(pool), 0)
}

func TestOwnerPoolStopsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewOwnerPool(ctx, OwnerPoolProps{Owners: 2, Handler: OwnerHandlerFunc(
		func(ctx context.Context, owner int, job interface{}) (interface{}, error) {
			return nil, nil
		})})

	cancel()
	assert.Len(t, drain(pool), 0)

	err := pool.Submit(ctx, 1)
	assert.Equal(t, context.Canceled, err)
}

func TestOwnerPoolDeliversResultsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{}, 2)
	pool := NewOwnerPool(ctx, OwnerPoolProps{Owners: 2, ResultBuffer: 1, Handler: OwnerHandlerFunc(
		func(ctx context.Context, owner int, job interface{}) (interface{}, error) {
			started <- struct{}{}
			<-ctx.Done()
			return job, ctx.Err()
		})})

	assert.Nil(t, pool.Submit(ctx, 1))
	assert.Nil(t, pool.Submit(ctx, 2))
	<-started
	<-started
	cancel()

	results := drain(pool)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, context.Canceled, r.Err)
	}
}
