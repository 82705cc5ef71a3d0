package tx

import (
	"github.com/pontem-network/flashloan-loadgen/log"
)

// Status is the state of a transaction as observed by the Poller
type Status int

const (
	// Pending transactions have not been executed yet. It is never
	// a terminal state
	Pending Status = iota

	// Executed transactions were committed and succeeded
	Executed

	// Failed transactions were committed but their execution aborted.
	// Their sequence number is consumed
	Failed

	// Expired transactions reached their expiration time before they
	// were executed and never will be
	Expired
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Executed:
		return "executed"
	case Failed:
		return "failed"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Terminal returns true if the status will not change anymore
func (s Status) Terminal() bool {
	return s != Pending
}

// Outcome is the result of a transaction
type Outcome struct {
	Hash           string
	Status         Status
	SequenceNumber uint64

	// Version and GasUsed are only known once the transaction was
	// committed
	Version uint64
	GasUsed uint64

	// Reason is the vm status reported by the node for executed and
	// failed transactions
	Reason string
}

// Log implementation of log.Loggable
func (o Outcome) Log(fields log.Fields) {
	fields.Add("hash", o.Hash)
	fields.Add("status", o.Status.String())
	fields.Add("sequenceNumber", o.SequenceNumber)
	if o.Status == Executed || o.Status == Failed {
		fields.Add("version", o.Version)
		fields.Add("gasUsed", o.GasUsed)
	}
	if len(o.Reason) > 0 {
		fields.Add("reason", o.Reason)
	}
}
