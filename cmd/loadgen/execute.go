package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/tx"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

type ExecuteProps struct {
	Amount  uint64
	Account uint
}

type executeResult struct {
	Sender         string `json:"sender"`
	Hash           string `json:"hash"`
	SequenceNumber uint64 `json:"sequence_number"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	Error          string `json:"error,omitempty"`
}

func runExecute(c *command, props ExecuteProps) error {
	a, err := c.setup()
	if err != nil {
		return err
	}

	account, err := a.Account(props.Account)
	if err != nil {
		return err
	}

	payload, err := a.Env.Flashloan().IdentitySwap(props.Amount)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a.Logger.Info(ctx, "executing identity swap", log.MapFields{
		"call_type": "Execute",
		"amount":    props.Amount,
	}, account)

	outcome, err := a.Executor.Execute(ctx, account, payload, a.Config.TxConfig.ExecuteConfig)
	printJSON(newExecuteResult(account, outcome, err))
	return err
}

func newExecuteResult(account wallet.Account, outcome tx.Outcome, err error) executeResult {
	result := executeResult{
		Sender:         account.Address().String(),
		Hash:           outcome.Hash,
		SequenceNumber: outcome.SequenceNumber,
		Status:         outcome.Status.String(),
		Reason:         outcome.Reason,
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func bindExecute(cmd *cobra.Command, c *command) {
	var props ExecuteProps

	var executeCmd = &cobra.Command{
		Use:   "execute",
		Short: "execute a single identity swap",
		Long: "Executes identity_swap on the flashloan test module from one of " +
			"the configured accounts and waits for its outcome.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitOnError(runExecute(c, props))
		},
	}

	executeCmd.Flags().Uint64Var(&props.Amount, "amount", 100000, "amount swapped")
	executeCmd.Flags().UintVar(&props.Account, "account", 0, "index of the configured account that sends the transaction")

	cmd.AddCommand(executeCmd)
}
