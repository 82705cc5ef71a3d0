package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pontem-network/flashloan-loadgen/contract"
)

type balanceResult struct {
	Address  string            `json:"address"`
	Balances map[string]uint64 `json:"balances"`
}

func runBalance(c *command) error {
	a, err := c.setup()
	if err != nil {
		return err
	}

	accounts, err := a.Config.WalletConfig.Accounts()
	if err != nil {
		return err
	}

	coins := []contract.TypeTag{a.Env.AptosCoin(), a.Env.BTC(), a.Env.USDT()}
	ctx := context.Background()

	var results []balanceResult
	for _, account := range accounts {
		result := balanceResult{
			Address:  account.Address().String(),
			Balances: make(map[string]uint64),
		}

		for _, coin := range coins {
			balance, err := a.Client.CoinBalance(ctx, account.Address(), coin.String())
			if err != nil {
				return err
			}
			result.Balances[coin.String()] = balance
		}

		results = append(results, result)
	}

	printJSON(results)
	return nil
}

func bindBalance(cmd *cobra.Command, c *command) {
	var balanceCmd = &cobra.Command{
		Use:   "balance",
		Short: "print the coin balances of the configured accounts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitOnError(runBalance(c))
		},
	}

	cmd.AddCommand(balanceCmd)
}
