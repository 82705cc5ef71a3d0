package ledger

import (
	"time"

	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cfgLedgerURL           = "ledger.url"
	cfgLedgerTimeout       = "ledger.timeout"
	cfgLedgerRetryAttempts = "ledger.retry_attempts"

	defaultLedgerURL = "http://0.0.0.0:8080/v1"
)

// Config is the configuration of the node client
type Config struct {
	URL           string
	Timeout       time.Duration
	RetryAttempts uint8
}

// Log implementation of log.Loggable
func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgLedgerURL, c.URL)
	fields.Add(cfgLedgerTimeout, c.Timeout)
	fields.Add(cfgLedgerRetryAttempts, c.RetryAttempts)
}

// Configure implementation of config.Binder
func (c *Config) Configure(v *viper.Viper) error {
	c.URL = v.GetString(cfgLedgerURL)
	c.Timeout = v.GetDuration(cfgLedgerTimeout)
	c.RetryAttempts = uint8(v.GetUint(cfgLedgerRetryAttempts))
	return nil
}

// Bind implementation of config.Binder
func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(cfgLedgerURL, defaultLedgerURL, "base url of the node rest api")
	cmd.PersistentFlags().Duration(cfgLedgerTimeout, 10*time.Second, "timeout of a single request to the node")
	cmd.PersistentFlags().Uint8(cfgLedgerRetryAttempts, 3, "attempts for idempotent node reads")
	return nil
}
