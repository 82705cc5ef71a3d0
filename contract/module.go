package contract

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/ledger"
)

// ArgKind is the type of a value argument of an entry function
type ArgKind int

const (
	ArgU8 ArgKind = iota
	ArgU64
	ArgU128
	ArgBool
	ArgAddress
)

func (k ArgKind) String() string {
	switch k {
	case ArgU8:
		return "u8"
	case ArgU64:
		return "u64"
	case ArgU128:
		return "u128"
	case ArgBool:
		return "bool"
	case ArgAddress:
		return "address"
	default:
		return "unknown"
	}
}

// ModuleID identifies a module by the address that published it
// and its name
type ModuleID struct {
	Address ledger.Address
	Name    string
}

// String returns the canonical form address::name
func (m ModuleID) String() string {
	return m.Address.Short() + "::" + m.Name
}

// EntryFunction describes an entry function that transactions can call
type EntryFunction struct {
	Name       string
	TypeParams int
	Args       []ArgKind
}

// Module is a published module and the entry functions it exposes
type Module struct {
	ID        ModuleID
	Functions []EntryFunction
}

// Function returns the entry function with the provided name
func (m Module) Function(name string) (EntryFunction, bool) {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return EntryFunction{}, false
}

// Call builds the payload of a call to the entry function fn. It fails
// with ErrInvalidPayload if the function does not exist or the
// arguments do not match its definition
func (m Module) Call(fn string, typeArgs []TypeTag, args ...interface{}) (ledger.EntryFunctionPayload, error) {
	def, ok := m.Function(fn)
	if !ok {
		return ledger.EntryFunctionPayload{}, errors.New(errors.ErrInvalidPayload,
			fmt.Errorf("module %s has no entry function %s", m.ID, fn))
	}

	if len(typeArgs) != def.TypeParams {
		return ledger.EntryFunctionPayload{}, errors.New(errors.ErrInvalidPayload,
			fmt.Errorf("%s::%s expects %d type arguments, got %d", m.ID, fn, def.TypeParams, len(typeArgs)))
	}

	if len(args) != len(def.Args) {
		return ledger.EntryFunctionPayload{}, errors.New(errors.ErrInvalidPayload,
			fmt.Errorf("%s::%s expects %d arguments, got %d", m.ID, fn, len(def.Args), len(args)))
	}

	payload := ledger.EntryFunctionPayload{
		Type:          ledger.EntryFunctionPayloadType,
		Function:      m.ID.String() + "::" + fn,
		TypeArguments: make([]string, 0, len(typeArgs)),
		Arguments:     make([]interface{}, 0, len(args)),
	}

	for _, tag := range typeArgs {
		payload.TypeArguments = append(payload.TypeArguments, tag.String())
	}

	for i, arg := range args {
		v, err := encodeArg(def.Args[i], arg)
		if err != nil {
			return ledger.EntryFunctionPayload{}, errors.New(errors.ErrInvalidPayload,
				fmt.Errorf("%s::%s argument %d: %w", m.ID, fn, i, err))
		}
		payload.Arguments = append(payload.Arguments, v)
	}

	return payload, nil
}

// encodeArg converts a value to its JSON form. Integers wider than
// 32 bits travel as decimal strings
func encodeArg(kind ArgKind, arg interface{}) (interface{}, error) {
	switch kind {
	case ArgBool:
		b, ok := arg.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", arg)
		}
		return b, nil

	case ArgAddress:
		switch a := arg.(type) {
		case ledger.Address:
			return a.String(), nil
		case string:
			addr, err := ledger.ParseAddress(a)
			if err != nil {
				return nil, err
			}
			return addr.String(), nil
		default:
			return nil, fmt.Errorf("expected address, got %T", arg)
		}

	case ArgU8, ArgU64, ArgU128:
		n, err := toBigInt(arg)
		if err != nil {
			return nil, err
		}

		bits := map[ArgKind]int{ArgU8: 8, ArgU64: 64, ArgU128: 128}[kind]
		if n.Sign() < 0 || n.BitLen() > bits {
			return nil, fmt.Errorf("%s does not fit in %s", n, kind)
		}

		if kind == ArgU8 {
			return uint8(n.Uint64()), nil
		}
		return n.String(), nil

	default:
		return nil, fmt.Errorf("unsupported argument kind %d", kind)
	}
}

func toBigInt(arg interface{}) (*big.Int, error) {
	switch v := arg.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case ledger.U64:
		return new(big.Int).SetUint64(uint64(v)), nil
	case *big.Int:
		return new(big.Int).Set(v), nil
	case string:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("%s is not a decimal integer", strconv.Quote(v))
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", arg)
	}
}
