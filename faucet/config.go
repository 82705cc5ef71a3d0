package faucet

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/log"
)

const (
	cfgFaucetURL     = "faucet.url"
	cfgFaucetAmount  = "faucet.amount"
	cfgFaucetTimeout = "faucet.timeout"
	cfgFaucetWait    = "faucet.wait"
)

type Config struct {
	URL     string
	Amount  uint64
	Timeout time.Duration
	Wait    bool
}

func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgFaucetURL, c.URL)
	fields.Add(cfgFaucetAmount, c.Amount)
	fields.Add(cfgFaucetTimeout, c.Timeout)
	fields.Add(cfgFaucetWait, c.Wait)
}

func (c *Config) Configure(v *viper.Viper) error {
	c.URL = v.GetString(cfgFaucetURL)
	c.Amount = v.GetUint64(cfgFaucetAmount)
	c.Timeout = v.GetDuration(cfgFaucetTimeout)
	c.Wait = v.GetBool(cfgFaucetWait)
	return nil
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(cfgFaucetURL, "http://0.0.0.0:8081", "base url of the faucet")
	cmd.PersistentFlags().Uint64(cfgFaucetAmount, 100000000, "amount minted to each account by fund")
	cmd.PersistentFlags().Duration(cfgFaucetTimeout, 30*time.Second, "timeout of a faucet request")
	cmd.PersistentFlags().Bool(cfgFaucetWait, true, "wait for the funding transactions to execute")
	return nil
}
