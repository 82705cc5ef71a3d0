package main

import (
	"context"

	"github.com/spf13/cobra"
)

type fundResult struct {
	Address string   `json:"address"`
	Hashes  []string `json:"hashes"`
	Error   string   `json:"error,omitempty"`
}

func runFund(c *command) error {
	a, err := c.setup()
	if err != nil {
		return err
	}

	accounts, err := a.Config.WalletConfig.Accounts()
	if err != nil {
		return err
	}

	ctx := context.Background()
	amount := a.Config.FaucetConfig.Amount

	var results []fundResult
	var firstErr error
	for _, account := range accounts {
		var hashes []string
		var err error
		if a.Config.FaucetConfig.Wait {
			hashes, err = a.Faucet.FundAndWait(ctx, a.Executor.Poller(), account.Address(), amount,
				a.Config.TxConfig.ExecuteConfig)
		} else {
			hashes, err = a.Faucet.Fund(ctx, account.Address(), amount)
		}

		result := fundResult{Address: account.Address().String(), Hashes: hashes}
		if err != nil {
			result.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		}
		results = append(results, result)
	}

	printJSON(results)
	return firstErr
}

func bindFund(cmd *cobra.Command, c *command) {
	var fundCmd = &cobra.Command{
		Use:   "fund",
		Short: "fund the configured accounts from the faucet",
		Long: "Mints faucet.amount coins to every configured account, creating " +
			"the accounts that do not exist yet.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitOnError(runFund(c))
		},
	}

	cmd.AddCommand(fundCmd)
}
