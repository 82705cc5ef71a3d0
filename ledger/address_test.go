package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddressShort(t *testing.T) {
	addr, err := ParseAddress("0x1")

	assert.Nil(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", addr.String())
	assert.Equal(t, "0x1", addr.Short())
}

func TestParseAddressWithoutPrefix(t *testing.T) {
	addr, err := ParseAddress("a1")

	assert.Nil(t, err)
	assert.Equal(t, "0xa1", addr.Short())
}

func TestParseAddressOddLength(t *testing.T) {
	addr, err := ParseAddress("0x43417434fd869edee76cca2a4d2301e528a1551b1d719b75c350c3c97d15b8b9")

	assert.Nil(t, err)
	assert.Equal(t, "0x43417434fd869edee76cca2a4d2301e528a1551b1d719b75c350c3c97d15b8b9", addr.String())
}

func TestParseAddressInvalid(t *testing.T) {
	for _, s := range []string{"", "0x", "0xzz", "0x" + string(make([]byte, 65))} {
		_, err := ParseAddress(s)
		assert.Error(t, err, s)
	}
}

func TestAddressShortZero(t *testing.T) {
	assert.Equal(t, "0x0", Address{}.Short())
}

func TestAddressJSON(t *testing.T) {
	var v struct {
		Sender Address `json:"sender"`
	}

	err := json.Unmarshal([]byte(`{"sender":"0xa1"}`), &v)
	assert.Nil(t, err)
	assert.Equal(t, MustParseAddress("0xa1"), v.Sender)

	p, err := json.Marshal(v)
	assert.Nil(t, err)
	assert.Equal(t, `{"sender":"0x00000000000000000000000000000000000000000000000000000000000000a1"}`, string(p))
}
