package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Labels to use for partitioning node requests.
	requestLabels = []string{"endpoint", "status", "cause"}

	// Labels to use for partitioning node request latencies.
	requestLatencyLabels = []string{"endpoint"}

	// Labels to use for partitioning executions.
	executionLabels = []string{"outcome", "kind"}
)

// ServiceMetrics are the prometheus collectors for the node client
// and the transaction executor
type ServiceMetrics struct {
	// Counts of requests made to each node endpoint.
	Requests *prometheus.CounterVec

	// Latencies of requests for each node endpoint.
	RequestLatencies *prometheus.SummaryVec

	// Counts of executions partitioned by terminal outcome and
	// error kind.
	Executions *prometheus.CounterVec

	// Latencies of complete executions, from sequence number to
	// terminal state.
	ExecutionLatencies prometheus.Summary
}

// NewServiceMetrics creates the collectors prefixed by namespace and
// registers them on reg. A nil reg skips registration.
func NewServiceMetrics(reg prometheus.Registerer, namespace string) *ServiceMetrics {
	objectives := map[float64]float64{0.5: 0.05, 0.95: 0.01, 0.99: 0.001}

	metrics := &ServiceMetrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_node_requests", namespace),
				Help: "How many node requests were made, partitioned by endpoint, status, and cause of failure.",
			},
			requestLabels,
		),
		RequestLatencies: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       fmt.Sprintf("%s_node_request_durations", namespace),
				Help:       "How long node requests take, partitioned by endpoint.",
				Objectives: objectives,
			},
			requestLatencyLabels,
		),
		Executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_executions", namespace),
				Help: "How many transactions were executed, partitioned by outcome and error kind.",
			},
			executionLabels,
		),
		ExecutionLatencies: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Name:       fmt.Sprintf("%s_execution_durations", namespace),
				Help:       "How long it takes for a transaction to reach a terminal state.",
				Objectives: objectives,
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			metrics.Requests,
			metrics.RequestLatencies,
			metrics.Executions,
			metrics.ExecutionLatencies,
		)
	}

	return metrics
}

func padLabels(labels []string, names []string) []string {
	if len(labels) > len(names) {
		labels = labels[:len(names)]
	}
	return append(labels, make([]string, len(names)-len(labels))...)
}

// RequestCounter returns the counter for the calling request.
// Provided labels should be endpoint, status, cause.
func (m *ServiceMetrics) RequestCounter(labels ...string) prometheus.Counter {
	return m.Requests.WithLabelValues(padLabels(labels, requestLabels)...)
}

// RequestTimer creates a new latency timer for the provided endpoint.
func (m *ServiceMetrics) RequestTimer(labels ...string) *prometheus.Timer {
	return prometheus.NewTimer(m.RequestLatencies.WithLabelValues(padLabels(labels, requestLatencyLabels)...))
}

// ObserveExecution records the terminal outcome of an execution.
// kind is empty for executions that did not fail.
func (m *ServiceMetrics) ObserveExecution(outcome, kind string, latency time.Duration) {
	m.Executions.WithLabelValues(outcome, kind).Inc()
	m.ExecutionLatencies.Observe(latency.Seconds())
}
