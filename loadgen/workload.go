package loadgen

import (
	"github.com/pontem-network/flashloan-loadgen/contract"
	"github.com/pontem-network/flashloan-loadgen/ledger"
)

// Workload produces the payload of the i-th call of a run, sent by
// the account of the given owner
type Workload interface {
	Payload(owner int, i uint64) (ledger.EntryFunctionPayload, error)
}

// IdentitySwapWorkload calls identity_swap with an amount that grows
// with every call, Start + i*Step, so that every transaction of a run
// is distinct
type IdentitySwapWorkload struct {
	Flashloan contract.Flashloan
	Start     uint64
	Step      uint64
}

// Amount returns the amount swapped by the i-th call
func (w IdentitySwapWorkload) Amount(i uint64) uint64 {
	return w.Start + i*w.Step
}

// Payload implementation of Workload for IdentitySwapWorkload
func (w IdentitySwapWorkload) Payload(owner int, i uint64) (ledger.EntryFunctionPayload, error) {
	return w.Flashloan.IdentitySwap(w.Amount(i))
}

// SwapWorkload trades a fixed amount through the liquidswap pool with
// flashloan_swap::swap
type SwapWorkload struct {
	Flashloan contract.Flashloan
	Amount    uint64
}

// Payload implementation of Workload for SwapWorkload
func (w SwapWorkload) Payload(owner int, i uint64) (ledger.EntryFunctionPayload, error) {
	return w.Flashloan.Swap(w.Amount)
}

// MixedWorkload splits the accounts of a run in loaners and traders.
// The last Traders of the Owners accounts run Swaps while the others
// run Loans, so traders compete with the flash loans for the pool
type MixedWorkload struct {
	Loans   Workload
	Swaps   Workload
	Owners  int
	Traders int
}

// Trader returns whether the account of owner is a trader
func (w MixedWorkload) Trader(owner int) bool {
	return owner >= w.Owners-w.Traders
}

// Payload implementation of Workload for MixedWorkload
func (w MixedWorkload) Payload(owner int, i uint64) (ledger.EntryFunctionPayload, error) {
	if w.Trader(owner) {
		return w.Swaps.Payload(owner, i)
	}
	return w.Loans.Payload(owner, i)
}
