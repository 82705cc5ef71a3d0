package ledger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressLength is the length in bytes of a ledger account address
const AddressLength = 32

// Address identifies an account on the ledger
type Address [AddressLength]byte

// ParseAddress parses a hex encoded address. The 0x prefix is
// optional, and short addresses such as 0x1 are left padded with
// zeros
func ParseAddress(s string) (Address, error) {
	var addr Address

	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h) == 0 || len(h) > 2*AddressLength {
		return addr, fmt.Errorf("address %q must have between 1 and %d hex digits", s, 2*AddressLength)
	}

	h = strings.Repeat("0", 2*AddressLength-len(h)) + h
	b, err := hexutil.Decode("0x" + h)
	if err != nil {
		return addr, fmt.Errorf("address %q is not valid hex: %w", s, err)
	}

	copy(addr[:], b)
	return addr, nil
}

// MustParseAddress is the same as ParseAddress but panics on
// failure. It is meant for address constants
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the long 0x prefixed form of the address
func (a Address) String() string {
	return hexutil.Encode(a[:])
}

// Short returns the address without leading zeros, which is the
// form used for well known framework addresses such as 0x1
func (a Address) Short() string {
	h := strings.TrimLeft(hexutil.Encode(a[:])[2:], "0")
	if len(h) == 0 {
		h = "0"
	}
	return "0x" + h
}

// MarshalJSON encodes the address as a JSON string
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the address from a JSON string
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}

	*a = addr
	return nil
}
