package stats

import (
	"sync"
	"sync/atomic"
)

// Counter is used to count how many times an event
// occurs
type Counter struct {
	value uint64
}

// Incr increments the counter by one
func (c *Counter) Incr() uint64 {
	return atomic.AddUint64(&c.value, 1)
}

// Value returns the current value of the counter
func (c *Counter) Value() uint64 {
	return atomic.LoadUint64(&c.value)
}

// CounterGroup implements a group of counters where counters
// can be added dynamically
type CounterGroup struct {
	mu    sync.RWMutex
	group map[string]*Counter
}

// NewCounterGroup creates a new counter group with the provided
// counters allocated upfront
func NewCounterGroup(names ...string) *CounterGroup {
	m := make(map[string]*Counter)

	for _, name := range names {
		m[name] = &Counter{}
	}

	return &CounterGroup{
		group: m,
	}
}

// Get retrieves the counter from the group, creating it if it
// does not exist yet
func (g *CounterGroup) Get(name string) *Counter {
	g.mu.RLock()
	counter, ok := g.group[name]
	g.mu.RUnlock()
	if ok {
		return counter
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	counter, ok = g.group[name]
	if !ok {
		counter = &Counter{}
		g.group[name] = counter
	}

	return counter
}

// Incr increments the required counter and if it
// does not exist it creates it
func (g *CounterGroup) Incr(name string) uint64 {
	return g.Get(name).Incr()
}

// Total is the sum of all the counters in the group
func (g *CounterGroup) Total() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var total uint64
	for _, counter := range g.group {
		total += counter.Value()
	}

	return total
}

// Stats implements Collector for CounterGroup
func (g *CounterGroup) Stats() Metrics {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := make(Metrics)
	for key, counter := range g.group {
		stats[key] = counter.Value()
	}

	return stats
}
