package contract

import (
	"fmt"
	"strings"

	"github.com/pontem-network/flashloan-loadgen/ledger"
)

// TypeTag is a struct type on the ledger, such as a coin or a curve,
// used as a type argument of an entry function
type TypeTag struct {
	Address  ledger.Address
	Module   string
	Name     string
	TypeArgs []TypeTag
}

// NewTypeTag creates a TypeTag without type arguments
func NewTypeTag(addr ledger.Address, module, name string) TypeTag {
	return TypeTag{Address: addr, Module: module, Name: name}
}

// String returns the canonical form address::module::Name<Args>
func (t TypeTag) String() string {
	var b strings.Builder
	b.WriteString(t.Address.Short())
	b.WriteString("::")
	b.WriteString(t.Module)
	b.WriteString("::")
	b.WriteString(t.Name)

	if len(t.TypeArgs) > 0 {
		b.WriteString("<")
		for i, arg := range t.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteString(">")
	}

	return b.String()
}

// ParseTypeTag parses a struct type tag such as
// 0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>
func ParseTypeTag(s string) (TypeTag, error) {
	tag, rest, err := parseTypeTag(strings.TrimSpace(s))
	if err != nil {
		return TypeTag{}, err
	}
	if len(strings.TrimSpace(rest)) > 0 {
		return TypeTag{}, fmt.Errorf("type tag %q has trailing characters %q", s, rest)
	}
	return tag, nil
}

func parseTypeTag(s string) (TypeTag, string, error) {
	end := strings.IndexAny(s, "<>,")
	if end < 0 {
		end = len(s)
	}

	parts := strings.Split(strings.TrimSpace(s[:end]), "::")
	if len(parts) != 3 || len(parts[1]) == 0 || len(parts[2]) == 0 {
		return TypeTag{}, "", fmt.Errorf("type tag %q must have the form address::module::Name", s[:end])
	}

	addr, err := ledger.ParseAddress(parts[0])
	if err != nil {
		return TypeTag{}, "", err
	}

	tag := NewTypeTag(addr, parts[1], parts[2])
	rest := s[end:]
	if !strings.HasPrefix(rest, "<") {
		return tag, rest, nil
	}

	rest = rest[1:]
	for {
		arg, r, err := parseTypeTag(strings.TrimSpace(rest))
		if err != nil {
			return TypeTag{}, "", err
		}
		tag.TypeArgs = append(tag.TypeArgs, arg)

		r = strings.TrimSpace(r)
		switch {
		case strings.HasPrefix(r, ","):
			rest = r[1:]
		case strings.HasPrefix(r, ">"):
			return tag, r[1:], nil
		default:
			return TypeTag{}, "", fmt.Errorf("type tag %q has unterminated type arguments", s)
		}
	}
}

// LiquidityPool identifies a pool by its coin pair and curve. The
// three of them are the type arguments of every pool function
type LiquidityPool struct {
	X     TypeTag
	Y     TypeTag
	Curve TypeTag
}

// TypeArgs returns the pool as type arguments
func (p LiquidityPool) TypeArgs() []TypeTag {
	return []TypeTag{p.X, p.Y, p.Curve}
}
