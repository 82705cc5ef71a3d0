package stats

import (
	"sort"
	"time"
)

// ResultTypeBool returns the string representation
// of a bool result used for tracking
func ResultTypeBool(ok bool) string {
	if ok {
		return "ok"
	}

	return "error"
}

// MethodTracker tracks method calls and latencies. It is
// useful to track all the calls within a single type, such as
// every endpoint a client talks to. The methods are defined at
// initialization time. If an unexpected method is tracked the
// result is stored in the special "undefined" category.
type MethodTracker struct {
	count     map[string]*CounterGroup
	latencies map[string]*IntWindow
}

// MethodTrackerProps are the properties used to define
// the behaviour of a MethodTracker
type MethodTrackerProps struct {
	Methods    []string
	WindowSize uint32
}

// NewMethodTrackerWithProps creates a new MethodTracker with
// the specified properties
func NewMethodTrackerWithProps(props *MethodTrackerProps) *MethodTracker {
	count := make(map[string]*CounterGroup)
	latencies := make(map[string]*IntWindow)

	for _, key := range append(props.Methods, "undefined") {
		count[key] = NewCounterGroup("ok", "error")
		latencies[key] = NewIntWindow(props.WindowSize)
	}

	return &MethodTracker{
		count:     count,
		latencies: latencies,
	}
}

// NewMethodTracker creates a new method tracker with a window
// of 64 latency samples per method
func NewMethodTracker(methods ...string) *MethodTracker {
	return NewMethodTrackerWithProps(&MethodTrackerProps{
		Methods:    methods,
		WindowSize: 64,
	})
}

// Methods returns the sorted list of methods tracked
func (t *MethodTracker) Methods() []string {
	methods := make([]string, 0, len(t.count))
	for method := range t.count {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Count returns the counter used to track the method
// calls. If the method is not found it return nil, false
func (t *MethodTracker) Count(method string) (*CounterGroup, bool) {
	group, ok := t.count[method]
	return group, ok
}

// Latencies returns the window used to track the method
// call latencies. If the method is not found it return nil, false
func (t *MethodTracker) Latencies(method string) (*IntWindow, bool) {
	window, ok := t.latencies[method]
	return window, ok
}

// Instrument instruments the call to a method collecting
// counts and latencies
func (t *MethodTracker) Instrument(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	t.StoreLatency(name, time.Since(start).Nanoseconds())
	t.AddCount(name, ResultTypeBool(err == nil))
	return err
}

// AddCount is a method to manually add a count to
// a method
func (t *MethodTracker) AddCount(name string, result string) {
	group, ok := t.count[name]
	if !ok {
		group = t.count["undefined"]
	}

	group.Incr(result)
}

// StoreLatency is a method to manually store a new latency
// sample for a method
func (t *MethodTracker) StoreLatency(name string, latency int64) {
	l, ok := t.latencies[name]
	if !ok {
		l = t.latencies["undefined"]
	}

	l.Add(latency)
}

// Stats is the implementation of Collector for MethodTracker
func (t *MethodTracker) Stats() Metrics {
	stats := make(Metrics)

	for method, count := range t.count {
		stats[method] = Metrics{
			"count":   count.Stats(),
			"latency": t.latencies[method].Stats(),
		}
	}

	return stats
}
