package app

import (
	"github.com/pontem-network/flashloan-loadgen/config"
	"github.com/pontem-network/flashloan-loadgen/contract"
	"github.com/pontem-network/flashloan-loadgen/faucet"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/loadgen"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/metrics"
	"github.com/pontem-network/flashloan-loadgen/report"
	"github.com/pontem-network/flashloan-loadgen/tx"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

// Config is the general application's configuration
type Config struct {
	LoggingConfig  log.Config
	LedgerConfig   ledger.Config
	FaucetConfig   faucet.Config
	TxConfig       tx.Config
	ContractConfig contract.Config
	WalletConfig   wallet.Config
	LoadgenConfig  loadgen.Config
	MetricsConfig  metrics.Config
	ReportConfig   report.Config
}

func (c *Config) Use() string {
	return "loadgen"
}

func (c *Config) EnvPrefix() string {
	return "LOADGEN"
}

func (c *Config) sections() config.Sections {
	return config.Sections{
		&c.LoggingConfig,
		&c.LedgerConfig,
		&c.FaucetConfig,
		&c.TxConfig,
		&c.ContractConfig,
		&c.WalletConfig,
		&c.LoadgenConfig,
		&c.MetricsConfig,
		&c.ReportConfig,
	}
}

func (c *Config) Binders() []config.Binder {
	return c.sections().Binders()
}

func (c *Config) Log(fields log.Fields) {
	c.sections().Log(fields)
}
