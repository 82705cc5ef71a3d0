package contract

import (
	"fmt"
	"sort"

	"github.com/pontem-network/flashloan-loadgen/ledger"
)

// FrameworkAddress is the address of the ledger framework modules
var FrameworkAddress = ledger.MustParseAddress("0x1")

// Environment holds the addresses at which the modules used by the
// load generator are published on a given network. Environments are
// values and never modified once created
type Environment struct {
	Name string

	// Liquidswap is the address of the liquidswap modules, including
	// scripts, liquidity_pool and curves
	Liquidswap ledger.Address

	// FlashloanTest is the address of the flashloan_swap test module
	FlashloanTest ledger.Address

	// Coins is the address of the test coins module
	Coins ledger.Address

	// ExtendedCoins is the address of the extended test coins
	ExtendedCoins ledger.Address
}

const (
	liquidswapAddr    = "0x43417434fd869edee76cca2a4d2301e528a1551b1d719b75c350c3c97d15b8b9"
	extendedCoinsAddr = "0xb4d7b2466d211c1f4629e8340bb1a9e75e7f8fb38cc145c54c5c9f9d5017a318"
	testnetFlashloan  = "0x09f85897f830d193f15d7232fa1c714daae3bf0215d7ad19d0c8afb7f35afb9e"
)

var environments = map[string]Environment{
	"local": {
		Name:          "local",
		Liquidswap:    ledger.MustParseAddress(liquidswapAddr),
		FlashloanTest: ledger.MustParseAddress(liquidswapAddr),
		Coins:         ledger.MustParseAddress(liquidswapAddr),
		ExtendedCoins: ledger.MustParseAddress(extendedCoinsAddr),
	},
	"devnet": {
		Name:          "devnet",
		Liquidswap:    ledger.MustParseAddress(liquidswapAddr),
		FlashloanTest: ledger.MustParseAddress(liquidswapAddr),
		Coins:         ledger.MustParseAddress(liquidswapAddr),
		ExtendedCoins: ledger.MustParseAddress(extendedCoinsAddr),
	},
	"testnet": {
		Name:          "testnet",
		Liquidswap:    ledger.MustParseAddress(liquidswapAddr),
		FlashloanTest: ledger.MustParseAddress(testnetFlashloan),
		Coins:         ledger.MustParseAddress(liquidswapAddr),
		ExtendedCoins: ledger.MustParseAddress(extendedCoinsAddr),
	},
}

// LookupEnvironment returns a known environment by name
func LookupEnvironment(name string) (Environment, error) {
	env, ok := environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("unknown environment %q, must be one of %v", name, EnvironmentNames())
	}
	return env, nil
}

// EnvironmentNames returns the sorted names of the known environments
func EnvironmentNames() []string {
	names := make([]string, 0, len(environments))
	for name := range environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AptosCoin is the native coin of the ledger
func (e Environment) AptosCoin() TypeTag {
	return NewTypeTag(FrameworkAddress, "aptos_coin", "AptosCoin")
}

// BTC is the test BTC coin
func (e Environment) BTC() TypeTag {
	return NewTypeTag(e.Coins, "coins", "BTC")
}

// USDT is the test USDT coin
func (e Environment) USDT() TypeTag {
	return NewTypeTag(e.Coins, "coins", "USDT")
}

// Uncorrelated is the curve of pools with uncorrelated coins
func (e Environment) Uncorrelated() TypeTag {
	return NewTypeTag(e.Liquidswap, "curves", "Uncorrelated")
}

// Stable is the curve of pools with stable coins
func (e Environment) Stable() TypeTag {
	return NewTypeTag(e.Liquidswap, "curves", "Stable")
}

// Scripts is the liquidswap scripts module
func (e Environment) Scripts() Scripts {
	return Scripts{Module{
		ID: ModuleID{Address: e.Liquidswap, Name: "scripts"},
		Functions: []EntryFunction{
			{Name: "register_pool_and_add_liquidity", TypeParams: 3, Args: []ArgKind{ArgU64, ArgU64, ArgU64, ArgU64}},
			{Name: "add_liquidity", TypeParams: 3, Args: []ArgKind{ArgU64, ArgU64, ArgU64, ArgU64}},
			{Name: "swap", TypeParams: 3, Args: []ArgKind{ArgU64, ArgU64}},
		},
	}}
}

// LiquidityPoolModule is the liquidswap liquidity_pool module
func (e Environment) LiquidityPoolModule() LiquidityPoolModule {
	return LiquidityPoolModule{Module{
		ID: ModuleID{Address: e.Liquidswap, Name: "liquidity_pool"},
		Functions: []EntryFunction{
			{Name: "register", TypeParams: 3},
		},
	}}
}

// Flashloan is the flashloan_swap test module
func (e Environment) Flashloan() Flashloan {
	return Flashloan{Module{
		ID: ModuleID{Address: e.FlashloanTest, Name: "flashloan_swap"},
		Functions: []EntryFunction{
			{Name: "identity_swap", Args: []ArgKind{ArgU64}},
			{Name: "swap", Args: []ArgKind{ArgU64}},
		},
	}}
}
