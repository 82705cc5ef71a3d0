package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pontem-network/flashloan-loadgen/log"
)

type runResult struct {
	RunID      string            `json:"run_id"`
	Calls      uint64            `json:"calls"`
	Outcomes   map[string]uint64 `json:"outcomes"`
	LatencyAvg float64           `json:"latency_avg_ms"`
	LatencyMin int64             `json:"latency_min_ms"`
	LatencyMax int64             `json:"latency_max_ms"`
	LatencyP50 int64             `json:"latency_p50_ms"`
	LatencyP95 int64             `json:"latency_p95_ms"`
	Duration   string            `json:"duration"`
	Throughput float64           `json:"throughput"`
	Error      string            `json:"error,omitempty"`
}

func runRun(c *command) error {
	a, err := c.setup()
	if err != nil {
		return err
	}

	accounts, err := a.Accounts()
	if err != nil {
		return err
	}

	generator, sink, err := a.NewGenerator(accounts)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	a.MetricsService.Start()
	defer a.MetricsService.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.Logger.Info(ctx, "configuration", log.MapFields{"call_type": "Config"}, a.Config)

	summary, err := generator.Run(ctx)
	result := runResult{
		RunID:      summary.RunID,
		Calls:      summary.Calls,
		Outcomes:   summary.Outcomes,
		LatencyAvg: summary.Latency.Avg,
		LatencyMin: summary.Latency.Min,
		LatencyMax: summary.Latency.Max,
		LatencyP50: summary.Latency.P50,
		LatencyP95: summary.Latency.P95,
		Duration:   summary.Duration.String(),
		Throughput: summary.Throughput,
	}
	if err != nil {
		result.Error = err.Error()
	}

	printJSON(result)
	return err
}

func bindRun(cmd *cobra.Command, c *command) {
	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "run a load generation",
		Long: "Sends loadgen.iterations identity swaps from the configured " +
			"accounts, one worker per account, and reports latencies and outcomes.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitOnError(runRun(c))
		},
	}

	cmd.AddCommand(runCmd)
}
