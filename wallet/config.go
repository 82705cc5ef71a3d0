package wallet

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/log"
)

const cfgWalletPrivateKeys = "wallet.private_keys"

// Config holds the private keys of the accounts that send
// transactions
type Config struct {
	PrivateKeys []string
}

// Log implementation of log.Loggable. Private keys are never logged,
// only how many there are
func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgWalletPrivateKeys, len(c.PrivateKeys))
}

// Configure implementation of config.Binder
func (c *Config) Configure(v *viper.Viper) error {
	c.PrivateKeys = v.GetStringSlice(cfgWalletPrivateKeys)
	return nil
}

// Bind implementation of config.Binder
func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().StringSlice(cfgWalletPrivateKeys, nil,
		"hex encoded ed25519 private keys of the sending accounts")
	return nil
}

// Accounts creates one account per configured private key
func (c *Config) Accounts() ([]Account, error) {
	if len(c.PrivateKeys) == 0 {
		return nil, errors.New(errors.ErrInvalidConfig, errNoPrivateKeys)
	}

	accounts := make([]Account, 0, len(c.PrivateKeys))
	for _, key := range c.PrivateKeys {
		signer, err := ParseEd25519Signer(key)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, NewAccount(signer))
	}

	return accounts, nil
}
