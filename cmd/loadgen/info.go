package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/stats"
)

type infoResult struct {
	Environment string                   `json:"environment"`
	Ledger      ledger.LedgerInfo        `json:"ledger"`
	LedgerTime  time.Time                `json:"ledger_time"`
	Services    map[string]stats.Metrics `json:"services"`
}

func runInfo(c *command) error {
	a, err := c.setup()
	if err != nil {
		return err
	}

	info, err := a.Client.LedgerInfo(context.Background())
	if err != nil {
		return err
	}

	printJSON(infoResult{
		Environment: a.Env.Name,
		Ledger:      info,
		LedgerTime:  time.Unix(0, int64(info.LedgerTimestamp)*int64(time.Microsecond)).UTC(),
		Services:    a.Services.Stats(),
	})
	return nil
}

func bindInfo(cmd *cobra.Command, c *command) {
	var infoCmd = &cobra.Command{
		Use:   "info",
		Short: "print the state of the ledger",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitOnError(runInfo(c))
		},
	}

	cmd.AddCommand(infoCmd)
}
