package loadgen

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/config"
	"github.com/pontem-network/flashloan-loadgen/log"
)

const (
	cfgLoadgenIterations  = "loadgen.iterations"
	cfgLoadgenStartAmount = "loadgen.start_amount"
	cfgLoadgenStep        = "loadgen.step"
	cfgLoadgenRate        = "loadgen.rate"
	cfgLoadgenWorkers     = "loadgen.workers"
	cfgLoadgenWindow      = "loadgen.window"
	cfgLoadgenTraders     = "loadgen.traders"
	cfgLoadgenSwapAmount  = "loadgen.swap_amount"
)

type Config struct {
	Iterations  uint64
	StartAmount uint64
	Step        uint64
	Rate        float64

	// Workers limits the number of configured accounts used by a
	// run. Zero uses all of them
	Workers uint

	Window uint32

	// Traders is the number of accounts, taken from the end of the
	// accounts of a run, that swap through the pool instead of
	// taking flash loans
	Traders    uint
	SwapAmount uint64
}

func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgLoadgenIterations, c.Iterations)
	fields.Add(cfgLoadgenStartAmount, c.StartAmount)
	fields.Add(cfgLoadgenStep, c.Step)
	fields.Add(cfgLoadgenRate, c.Rate)
	fields.Add(cfgLoadgenWorkers, c.Workers)
	fields.Add(cfgLoadgenWindow, c.Window)
	fields.Add(cfgLoadgenTraders, c.Traders)
	fields.Add(cfgLoadgenSwapAmount, c.SwapAmount)
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Iterations = v.GetUint64(cfgLoadgenIterations)
	c.StartAmount = v.GetUint64(cfgLoadgenStartAmount)
	c.Step = v.GetUint64(cfgLoadgenStep)
	c.Rate = v.GetFloat64(cfgLoadgenRate)
	c.Workers = v.GetUint(cfgLoadgenWorkers)
	c.Window = v.GetUint32(cfgLoadgenWindow)
	c.Traders = v.GetUint(cfgLoadgenTraders)
	c.SwapAmount = v.GetUint64(cfgLoadgenSwapAmount)

	if c.Rate < 0 {
		return config.ErrInvalidValue{Key: cfgLoadgenRate, InvalidValue: v.GetString(cfgLoadgenRate)}
	}

	if c.Traders > 0 && c.SwapAmount == 0 {
		return config.ErrInvalidValue{Key: cfgLoadgenSwapAmount, InvalidValue: v.GetString(cfgLoadgenSwapAmount)}
	}

	return nil
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().Uint64(cfgLoadgenIterations, 100, "number of calls of a run")
	cmd.PersistentFlags().Uint64(cfgLoadgenStartAmount, 100000, "amount swapped by the first call")
	cmd.PersistentFlags().Uint64(cfgLoadgenStep, 1, "amount added to the swap of every following call")
	cmd.PersistentFlags().Float64(cfgLoadgenRate, 0, "target calls per second, 0 for no limit")
	cmd.PersistentFlags().Uint(cfgLoadgenWorkers, 0, "number of accounts sending transactions, 0 for all")
	cmd.PersistentFlags().Uint32(cfgLoadgenWindow, uint32(defaultWindowSize), "latency samples kept for the summary")
	cmd.PersistentFlags().Uint(cfgLoadgenTraders, 0, "number of accounts that swap through the pool while the others take flash loans")
	cmd.PersistentFlags().Uint64(cfgLoadgenSwapAmount, 100, "amount swapped by every trader call")
	return nil
}
