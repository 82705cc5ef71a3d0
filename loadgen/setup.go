package loadgen

import (
	"context"

	"github.com/pontem-network/flashloan-loadgen/contract"
	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/pontem-network/flashloan-loadgen/tx"
	"github.com/pontem-network/flashloan-loadgen/wallet"
)

const (
	CurveUncorrelated = "uncorrelated"
	CurveStable       = "stable"
)

// Liquidity is the deposit made when a pool is registered. Minimums
// bound the amounts the pool may actually take
type Liquidity struct {
	X    uint64
	XMin uint64
	Y    uint64
	YMin uint64
}

// PoolSetup describes the BTC/USDT liquidswap pool that the flashloan
// module borrows from. It has to be registered once per deployment
// before a run
type PoolSetup struct {
	Env   contract.Environment
	Curve string

	// Liquidity is deposited along with the registration when set
	Liquidity *Liquidity
}

// Pool returns the pool described by the setup
func (s PoolSetup) Pool() (contract.LiquidityPool, error) {
	pool := contract.LiquidityPool{X: s.Env.BTC(), Y: s.Env.USDT()}

	switch s.Curve {
	case CurveUncorrelated, "":
		pool.Curve = s.Env.Uncorrelated()
	case CurveStable:
		pool.Curve = s.Env.Stable()
	default:
		return contract.LiquidityPool{}, errors.New(errors.ErrInvalidConfig, errUnknownCurve(s.Curve))
	}

	return pool, nil
}

// Payload returns the payload that registers the pool
func (s PoolSetup) Payload() (ledger.EntryFunctionPayload, error) {
	pool, err := s.Pool()
	if err != nil {
		return ledger.EntryFunctionPayload{}, err
	}

	if s.Liquidity == nil {
		return s.Env.LiquidityPoolModule().Register(pool)
	}

	l := s.Liquidity
	return s.Env.Scripts().RegisterPoolAndAddLiquidity(pool, l.X, l.XMin, l.Y, l.YMin)
}

// RegisterPool registers the pool from account and waits for the
// outcome of the transaction
func RegisterPool(
	ctx context.Context,
	services *Services,
	account wallet.Account,
	setup PoolSetup,
	config tx.ExecuteConfig,
) (tx.Outcome, error) {
	logger := services.Logger.ForClass("loadgen", "PoolSetup")

	payload, err := setup.Payload()
	if err != nil {
		return tx.Outcome{}, err
	}

	details := log.LoggableFunc(func(fields log.Fields) {
		fields.Add("function", payload.Function)
		fields.Add("curve", setup.Curve)
		if setup.Liquidity != nil {
			fields.Add("x", setup.Liquidity.X)
			fields.Add("y", setup.Liquidity.Y)
		}
	})
	logger.Info(ctx, "registering pool", log.MapFields{"call_type": "RegisterPool"}, details, account)

	outcome, err := services.Executor.Execute(ctx, account, payload, config)
	if err != nil {
		logger.Warn(ctx, "pool registration failed", log.MapFields{
			"call_type": "RegisterPoolFailure",
			"err":       err.Error(),
		}, details, outcome)
		return outcome, err
	}

	logger.Info(ctx, "", log.MapFields{"call_type": "RegisterPoolSuccess"}, details, outcome)
	return outcome, nil
}
