package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pontem-network/flashloan-loadgen/concurrent"
	"github.com/pontem-network/flashloan-loadgen/contract"
	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/faucet"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/loadgen"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/metrics"
	"github.com/pontem-network/flashloan-loadgen/report"
	"github.com/pontem-network/flashloan-loadgen/tx"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

// App holds the components built from the configuration
type App struct {
	Config         *Config
	Logger         log.Logger
	Registry       *prometheus.Registry
	Metrics        *metrics.ServiceMetrics
	MetricsService metrics.Service
	Client         *ledger.NodeClient
	Executor       *tx.Executor
	Faucet         *faucet.Client
	Env            contract.Environment
	Services       Services
}

// New builds the application from the configuration. Accounts are not
// created here since some commands do not need them
func New(config *Config) (*App, error) {
	logger := log.New(&config.LoggingConfig)

	env, err := config.ContractConfig.Env()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	serviceMetrics := metrics.NewServiceMetrics(registry, config.MetricsConfig.Namespace)

	metricsService, err := metrics.New(&config.MetricsConfig, registry, logger)
	if err != nil {
		return nil, err
	}

	retryConfig := concurrent.DefaultRetryConfig
	retryConfig.Attempts = config.LedgerConfig.RetryAttempts

	client := ledger.NewClient(&ledger.Services{
		Logger:  logger,
		Metrics: serviceMetrics,
	}, &ledger.Props{
		URL:         config.LedgerConfig.URL,
		Timeout:     config.LedgerConfig.Timeout,
		RetryConfig: retryConfig,
	})

	executor := tx.NewExecutor(&tx.Services{
		Client:  client,
		Logger:  logger,
		Metrics: serviceMetrics,
	}, &tx.Props{
		Defaults: config.TxConfig.ExecuteConfig,
	})

	faucetClient := faucet.NewClient(&faucet.Services{Logger: logger}, &faucet.Props{
		URL:     config.FaucetConfig.URL,
		Timeout: config.FaucetConfig.Timeout,
	})

	services := NewServices()
	services.Add(client)
	services.Add(RuntimeService{})

	return &App{
		Config:         config,
		Logger:         logger,
		Registry:       registry,
		Metrics:        serviceMetrics,
		MetricsService: metricsService,
		Client:         client,
		Executor:       executor,
		Faucet:         faucetClient,
		Env:            env,
		Services:       services,
	}, nil
}

// Accounts returns the configured accounts, limited to the number of
// workers of the load generator when set
func (a *App) Accounts() ([]wallet.Account, error) {
	accounts, err := a.Config.WalletConfig.Accounts()
	if err != nil {
		return nil, err
	}

	workers := int(a.Config.LoadgenConfig.Workers)
	if workers > 0 && workers < len(accounts) {
		accounts = accounts[:workers]
	}

	return accounts, nil
}

// Account returns the configured account at index
func (a *App) Account(index uint) (wallet.Account, error) {
	accounts, err := a.Config.WalletConfig.Accounts()
	if err != nil {
		return wallet.Account{}, err
	}
	if int(index) >= len(accounts) {
		return wallet.Account{}, errors.New(errors.ErrInvalidConfig,
			fmt.Errorf("account %d is not configured, %d accounts available", index, len(accounts)))
	}

	return accounts[index], nil
}

// Workload returns the workload of a run over the given number of
// accounts. Traders are only mixed in when configured
func (a *App) Workload(accounts int) (loadgen.Workload, error) {
	c := a.Config.LoadgenConfig
	loans := loadgen.IdentitySwapWorkload{
		Flashloan: a.Env.Flashloan(),
		Start:     c.StartAmount,
		Step:      c.Step,
	}
	if c.Traders == 0 {
		return loans, nil
	}

	if int(c.Traders) > accounts {
		return nil, errors.New(errors.ErrInvalidConfig,
			fmt.Errorf("%d traders configured for %d accounts", c.Traders, accounts))
	}

	return loadgen.MixedWorkload{
		Loans:   loans,
		Swaps:   loadgen.SwapWorkload{Flashloan: a.Env.Flashloan(), Amount: c.SwapAmount},
		Owners:  accounts,
		Traders: int(c.Traders),
	}, nil
}

// NewGenerator creates the load generator of a run, with its own
// report sink. The caller must close the sink
func (a *App) NewGenerator(accounts []wallet.Account) (*loadgen.Generator, report.Sink, error) {
	c := a.Config.LoadgenConfig
	workload, err := a.Workload(len(accounts))
	if err != nil {
		return nil, nil, err
	}

	sink := report.NewSink(&a.Config.ReportConfig, a.Logger)

	generator, err := loadgen.NewGenerator(&loadgen.Services{
		Executor: a.Executor,
		Logger:   a.Logger,
		Sink:     sink,
	}, &loadgen.Props{
		Accounts:   accounts,
		Workload:   workload,
		Iterations: c.Iterations,
		Rate:       c.Rate,
		Execute:    a.Config.TxConfig.ExecuteConfig,
		WindowSize: c.Window,
	})
	if err != nil {
		_ = sink.Close()
		return nil, nil, err
	}

	return generator, sink, nil
}
