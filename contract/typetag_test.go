package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTypeTag(t *testing.T) {
	tag, err := ParseTypeTag("0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>")

	assert.Nil(t, err)
	assert.Equal(t, "coin", tag.Module)
	assert.Equal(t, "CoinStore", tag.Name)
	assert.Len(t, tag.TypeArgs, 1)
	assert.Equal(t, local.AptosCoin(), tag.TypeArgs[0])
	assert.Equal(t, "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>", tag.String())
}

func TestParseTypeTagMultipleArgs(t *testing.T) {
	s := "0x2::pool::LP<0x1::aptos_coin::AptosCoin, 0x2::coins::USDT, 0x2::curves::Stable>"

	tag, err := ParseTypeTag(s)

	assert.Nil(t, err)
	assert.Len(t, tag.TypeArgs, 3)
	assert.Equal(t, s, tag.String())
}

func TestParseTypeTagInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"0x1::coin",
		"0xzz::coin::Coin",
		"0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin",
		"0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>>",
	} {
		_, err := ParseTypeTag(s)
		assert.Error(t, err, s)
	}
}
