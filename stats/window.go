package stats

import "sync"

// IntWindow keeps a window of data based on the number
// of data it can hold. When the window is full, it discards
// the oldest data to leave space for new data. It is safe
// for concurrent use
type IntWindow struct {
	mu         sync.Mutex
	offset     uint32
	end        uint32
	maxSamples uint32
	window     []int64
}

// NewIntWindow creates a new window that samples at most
// maxSamples
func NewIntWindow(maxSamples uint32) *IntWindow {
	if maxSamples == 0 {
		maxSamples = 1
	}

	return &IntWindow{
		maxSamples: maxSamples,
		window:     make([]int64, maxSamples<<1),
	}
}

// Add a new sample to the window, shifting the window
// if maxSamples has been exceeded
func (w *IntWindow) Add(sample int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.window[w.end] = sample
	w.end++

	winlen := uint32(len(w.window))
	if w.end == winlen {
		// once w.end gets to the end of the window, copy
		// the last w.maxSamples to the beginning
		copy(w.window, w.window[winlen-w.maxSamples:])
		w.offset = 0
		w.end = w.maxSamples
	}

	if w.end-w.offset > w.maxSamples {
		w.offset = w.end - w.maxSamples
	}
}

// Samples returns a copy of the samples currently in the window,
// oldest first
func (w *IntWindow) Samples() []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	samples := make([]int64, w.end-w.offset)
	copy(samples, w.window[w.offset:w.end])
	return samples
}

// Len returns the number of samples in the window
func (w *IntWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return int(w.end - w.offset)
}

// Stats is the implementation of Collector for IntWindow
func (w *IntWindow) Stats() Metrics {
	samples := w.Samples()
	sorted := sortedCopy(samples)

	var min, max int64
	if len(sorted) > 0 {
		min = sorted[0]
		max = sorted[len(sorted)-1]
	}

	return Metrics{
		"avg": IntAverage(samples),
		"min": min,
		"max": max,
		"p50": IntPercentile(sorted, 50),
		"p95": IntPercentile(sorted, 95),
	}
}
