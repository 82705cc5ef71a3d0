package loadgen

import (
	"time"

	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/stats"
)

// Latency holds the latency statistics of the calls of a run, in
// milliseconds
type Latency struct {
	Avg float64
	Min int64
	Max int64
	P50 int64
	P95 int64
}

func latencyFromWindow(w *stats.IntWindow) Latency {
	s := w.Stats()
	return Latency{
		Avg: s["avg"].(float64),
		Min: s["min"].(int64),
		Max: s["max"].(int64),
		P50: s["p50"].(int64),
		P95: s["p95"].(int64),
	}
}

// Summary aggregates the results of a run
type Summary struct {
	RunID string

	// Calls is the number of calls that completed, whatever their
	// outcome
	Calls uint64

	// Outcomes counts calls by terminal status for calls without
	// error, and by error kind otherwise
	Outcomes map[string]uint64

	Latency    Latency
	Duration   time.Duration
	Throughput float64
}

// Succeeded returns the number of calls that were executed
func (s Summary) Succeeded() uint64 {
	return s.Outcomes[outcomeExecuted]
}

// Log implementation of log.Loggable
func (s Summary) Log(fields log.Fields) {
	fields.Add("runId", s.RunID)
	fields.Add("calls", s.Calls)
	fields.Add("outcomes", s.Outcomes)
	fields.Add("latencyAvgMs", s.Latency.Avg)
	fields.Add("latencyMinMs", s.Latency.Min)
	fields.Add("latencyMaxMs", s.Latency.Max)
	fields.Add("latencyP50Ms", s.Latency.P50)
	fields.Add("latencyP95Ms", s.Latency.P95)
	fields.Add("duration", s.Duration.String())
	fields.Add("throughput", s.Throughput)
}
