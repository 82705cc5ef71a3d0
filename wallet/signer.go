package wallet

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pontem-network/flashloan-loadgen/errors"
)

// Signer is an interface for any type that holds a keypair and
// signs messages with it
type Signer interface {
	// Sign returns the signature of msg
	Sign(msg []byte) ([]byte, error)

	// PublicKey returns the public key that verifies the signatures
	PublicKey() []byte
}

// Ed25519Signer is an in memory ed25519 Signer
type Ed25519Signer struct {
	key ed25519.PrivateKey
}

// NewEd25519Signer creates a signer from a 32 byte seed or from a
// 64 byte private key. The public half of a 64 byte key must match
// the one derived from its seed
func NewEd25519Signer(key []byte) (*Ed25519Signer, error) {
	switch len(key) {
	case ed25519.SeedSize:
		return &Ed25519Signer{key: ed25519.NewKeyFromSeed(key)}, nil
	case ed25519.PrivateKeySize:
		priv := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
		if !bytes.Equal(priv, key) {
			return nil, errors.New(errors.ErrInvalidConfig,
				fmt.Errorf("ed25519 public key does not match the private key seed"))
		}
		return &Ed25519Signer{key: priv}, nil
	default:
		return nil, errors.New(errors.ErrInvalidConfig,
			fmt.Errorf("ed25519 private key must be %d or %d bytes, got %d",
				ed25519.SeedSize, ed25519.PrivateKeySize, len(key)))
	}
}

// ParseEd25519Signer creates a signer from a hex encoded private key
// with an optional 0x prefix
func ParseEd25519Signer(s string) (*Ed25519Signer, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	key, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.New(errors.ErrInvalidConfig, fmt.Errorf("private key is not valid hex: %w", err))
	}

	return NewEd25519Signer(key)
}

// Sign implementation of Signer for Ed25519Signer
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.key, msg), nil
}

// PublicKey implementation of Signer for Ed25519Signer
func (s *Ed25519Signer) PublicKey() []byte {
	return []byte(s.key.Public().(ed25519.PublicKey))
}
