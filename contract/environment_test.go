package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
)

func TestLookupEnvironment(t *testing.T) {
	assert.Equal(t, []string{"devnet", "local", "testnet"}, EnvironmentNames())

	testnet, err := LookupEnvironment("testnet")
	assert.Nil(t, err)
	assert.Equal(t, "0x9f85897f830d193f15d7232fa1c714daae3bf0215d7ad19d0c8afb7f35afb9e::flashloan_swap",
		testnet.Flashloan().ID.String())

	_, err = LookupEnvironment("mainnet")
	assert.Error(t, err)
}

func TestConfigEnvOverrides(t *testing.T) {
	c := &Config{Environment: "local", FlashloanTest: "0x2"}

	env, err := c.Env()

	assert.Nil(t, err)
	assert.Equal(t, ledger.MustParseAddress("0x2"), env.FlashloanTest)
	assert.Equal(t, local.Liquidswap, env.Liquidswap)

	// the known environment is left untouched
	again, _ := LookupEnvironment("local")
	assert.Equal(t, local.FlashloanTest, again.FlashloanTest)
}

func TestConfigEnvInvalid(t *testing.T) {
	_, err := (&Config{Environment: "mainnet"}).Env()
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = (&Config{Environment: "local", Coins: "0xzz"}).Env()
	assert.True(t, errors.Is(err, errors.ErrInvalidAddress))
}
