package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pontem-network/flashloan-loadgen/loadgen"
)

type RegisterPoolProps struct {
	Account   uint
	Curve     string
	Liquidity loadgen.Liquidity
}

func runRegisterPool(c *command, props RegisterPoolProps) error {
	a, err := c.setup()
	if err != nil {
		return err
	}

	account, err := a.Account(props.Account)
	if err != nil {
		return err
	}

	setup := loadgen.PoolSetup{Env: a.Env, Curve: props.Curve}
	if props.Liquidity.X > 0 || props.Liquidity.Y > 0 {
		liquidity := props.Liquidity
		setup.Liquidity = &liquidity
	}

	outcome, err := loadgen.RegisterPool(context.Background(), &loadgen.Services{
		Executor: a.Executor,
		Logger:   a.Logger,
	}, account, setup, a.Config.TxConfig.ExecuteConfig)
	printJSON(newExecuteResult(account, outcome, err))
	return err
}

func bindRegisterPool(cmd *cobra.Command, c *command) {
	var props RegisterPoolProps

	var registerPoolCmd = &cobra.Command{
		Use:   "register-pool",
		Short: "register the BTC/USDT liquidswap pool",
		Long: "Registers the BTC/USDT pool the flashloan test module borrows from. " +
			"When liquidity is given the pool is registered with an initial deposit. " +
			"It has to be run once per deployment, from the liquidswap admin account.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitOnError(runRegisterPool(c, props))
		},
	}

	registerPoolCmd.Flags().UintVar(&props.Account, "account", 0, "index of the configured account that registers the pool")
	registerPoolCmd.Flags().StringVar(&props.Curve, "curve", loadgen.CurveUncorrelated, "curve of the pool, uncorrelated or stable")
	registerPoolCmd.Flags().Uint64Var(&props.Liquidity.X, "liquidity.x", 0, "BTC deposited, 0 to register an empty pool")
	registerPoolCmd.Flags().Uint64Var(&props.Liquidity.XMin, "liquidity.x_min", 0, "minimum BTC deposited")
	registerPoolCmd.Flags().Uint64Var(&props.Liquidity.Y, "liquidity.y", 0, "USDT deposited, 0 to register an empty pool")
	registerPoolCmd.Flags().Uint64Var(&props.Liquidity.YMin, "liquidity.y_min", 0, "minimum USDT deposited")

	cmd.AddCommand(registerPoolCmd)
}
