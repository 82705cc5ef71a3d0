package tx

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/log"
)

const (
	cfgTxMaxGasAmount     = "tx.max_gas_amount"
	cfgTxGasUnitPrice     = "tx.gas_unit_price"
	cfgTxExpirationWindow = "tx.expiration_window"
	cfgTxPollInterval     = "tx.poll_interval"
	cfgTxPollTimeout      = "tx.poll_timeout"
)

// Config holds the default ExecuteConfig of the executor
type Config struct {
	ExecuteConfig
}

// Log implementation of log.Loggable
func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgTxMaxGasAmount, c.MaxGasAmount)
	fields.Add(cfgTxGasUnitPrice, c.GasUnitPrice)
	fields.Add(cfgTxExpirationWindow, c.ExpirationWindow)
	fields.Add(cfgTxPollInterval, c.PollInterval)
	fields.Add(cfgTxPollTimeout, c.PollTimeout)
}

// Configure implementation of config.Binder
func (c *Config) Configure(v *viper.Viper) error {
	c.MaxGasAmount = v.GetUint64(cfgTxMaxGasAmount)
	c.GasUnitPrice = v.GetUint64(cfgTxGasUnitPrice)
	c.ExpirationWindow = v.GetDuration(cfgTxExpirationWindow)
	c.PollInterval = v.GetDuration(cfgTxPollInterval)
	c.PollTimeout = v.GetDuration(cfgTxPollTimeout)
	return nil
}

// Bind implementation of config.Binder
func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().Uint64(cfgTxMaxGasAmount, defaultMaxGasAmount, "maximum gas a transaction may use")
	cmd.PersistentFlags().Uint64(cfgTxGasUnitPrice, defaultGasUnitPrice, "price paid per unit of gas")
	cmd.PersistentFlags().Duration(cfgTxExpirationWindow, defaultExpirationWindow, "time after which a pending transaction expires")
	cmd.PersistentFlags().Duration(cfgTxPollInterval, defaultPollInterval, "interval between transaction status polls")
	cmd.PersistentFlags().Duration(cfgTxPollTimeout, defaultPollTimeout, "time to wait for a transaction before giving up")
	return nil
}
