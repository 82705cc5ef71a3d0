package contract

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
)

const (
	cfgContractEnvironment   = "contract.environment"
	cfgContractLiquidswap    = "contract.liquidswap"
	cfgContractFlashloanTest = "contract.flashloan_test"
	cfgContractCoins         = "contract.coins"
)

// Config selects the environment and optionally overrides
// the addresses of its modules
type Config struct {
	Environment   string
	Liquidswap    string
	FlashloanTest string
	Coins         string
}

// Log implementation of log.Loggable
func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgContractEnvironment, c.Environment)
	fields.Add(cfgContractLiquidswap, c.Liquidswap)
	fields.Add(cfgContractFlashloanTest, c.FlashloanTest)
	fields.Add(cfgContractCoins, c.Coins)
}

// Configure implementation of config.Binder
func (c *Config) Configure(v *viper.Viper) error {
	c.Environment = strings.ToLower(v.GetString(cfgContractEnvironment))
	c.Liquidswap = v.GetString(cfgContractLiquidswap)
	c.FlashloanTest = v.GetString(cfgContractFlashloanTest)
	c.Coins = v.GetString(cfgContractCoins)
	return nil
}

// Bind implementation of config.Binder
func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(cfgContractEnvironment, "local",
		fmt.Sprintf("module addresses to use. Must be one of %s", strings.Join(EnvironmentNames(), ", ")))
	cmd.PersistentFlags().String(cfgContractLiquidswap, "", "overrides the address of the liquidswap modules")
	cmd.PersistentFlags().String(cfgContractFlashloanTest, "", "overrides the address of the flashloan test module")
	cmd.PersistentFlags().String(cfgContractCoins, "", "overrides the address of the test coins")
	return nil
}

// Env returns the configured environment with the overrides
// applied
func (c *Config) Env() (Environment, error) {
	env, err := LookupEnvironment(c.Environment)
	if err != nil {
		return Environment{}, errors.New(errors.ErrInvalidConfig, err)
	}

	for _, o := range []struct {
		value string
		addr  *ledger.Address
	}{
		{c.Liquidswap, &env.Liquidswap},
		{c.FlashloanTest, &env.FlashloanTest},
		{c.Coins, &env.Coins},
	} {
		if len(o.value) == 0 {
			continue
		}

		addr, err := ledger.ParseAddress(o.value)
		if err != nil {
			return Environment{}, errors.New(errors.ErrInvalidAddress, err)
		}
		*o.addr = addr
	}

	return env, nil
}
