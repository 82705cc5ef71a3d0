package contract

import "github.com/pontem-network/flashloan-loadgen/ledger"

// Flashloan builds calls to the flashloan_swap test module
type Flashloan struct {
	Module
}

// IdentitySwap takes a flash loan of amount and pays it back in the
// same transaction
func (f Flashloan) IdentitySwap(amount uint64) (ledger.EntryFunctionPayload, error) {
	return f.Call("identity_swap", nil, amount)
}

// Swap swaps amount through the flashloan pool
func (f Flashloan) Swap(amount uint64) (ledger.EntryFunctionPayload, error) {
	return f.Call("swap", nil, amount)
}

// Scripts builds calls to the liquidswap scripts module
type Scripts struct {
	Module
}

// RegisterPoolAndAddLiquidity creates the pool and deposits the
// initial liquidity
func (s Scripts) RegisterPoolAndAddLiquidity(
	pool LiquidityPool,
	xVal, xValMin, yVal, yValMin uint64,
) (ledger.EntryFunctionPayload, error) {
	return s.Call("register_pool_and_add_liquidity", pool.TypeArgs(), xVal, xValMin, yVal, yValMin)
}

// AddLiquidity deposits liquidity into an existing pool
func (s Scripts) AddLiquidity(
	pool LiquidityPool,
	xVal, xValMin, yVal, yValMin uint64,
) (ledger.EntryFunctionPayload, error) {
	return s.Call("add_liquidity", pool.TypeArgs(), xVal, xValMin, yVal, yValMin)
}

// Swap swaps xVal of the X coin for at least yValMin of the Y coin
func (s Scripts) Swap(pool LiquidityPool, xVal, yValMin uint64) (ledger.EntryFunctionPayload, error) {
	return s.Call("swap", pool.TypeArgs(), xVal, yValMin)
}

// LiquidityPoolModule builds calls to the liquidswap liquidity_pool
// module
type LiquidityPoolModule struct {
	Module
}

// Register registers a new pool
func (l LiquidityPoolModule) Register(pool LiquidityPool) (ledger.EntryFunctionPayload, error) {
	return l.Call("register", pool.TypeArgs())
}
