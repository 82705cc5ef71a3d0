package wallet

import (
	"golang.org/x/crypto/sha3"

	"github.com/pontem-network/flashloan-loadgen/ledger"
	"github.com/pontem-network/flashloan-loadgen/log"
)

// ed25519Scheme is the scheme identifier appended to single ed25519
// public keys when deriving authentication keys
const ed25519Scheme byte = 0x00

// AuthenticationKey derives the authentication key of a single ed25519
// public key. Accounts that never rotated their key use it as their
// address
func AuthenticationKey(publicKey []byte) ledger.Address {
	var addr ledger.Address

	hash := sha3.New256()
	_, _ = hash.Write(publicKey)
	_, _ = hash.Write([]byte{ed25519Scheme})
	copy(addr[:], hash.Sum(nil))

	return addr
}

// Account is an address on the ledger and, optionally, the signer that
// can send transactions on its behalf. An Account is immutable
type Account struct {
	address ledger.Address
	signer  Signer
}

// NewAccount creates an account whose address is derived from the
// public key of the signer
func NewAccount(signer Signer) Account {
	return Account{address: AuthenticationKey(signer.PublicKey()), signer: signer}
}

// NewAccountWithAddress creates an account for an address whose key
// was rotated to the one held by signer. signer may be nil for
// accounts that are only observed
func NewAccountWithAddress(address ledger.Address, signer Signer) Account {
	return Account{address: address, signer: signer}
}

// Address returns the address of the account
func (a Account) Address() ledger.Address {
	return a.address
}

// Signer returns the signer of the account, or nil
func (a Account) Signer() Signer {
	return a.signer
}

// CanSign returns true if the account holds a signer
func (a Account) CanSign() bool {
	return a.signer != nil
}

// Log implementation of log.Loggable
func (a Account) Log(fields log.Fields) {
	fields.Add("sender", a.address.String())
}
