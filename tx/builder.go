package tx

import (
	"time"

	"github.com/pontem-network/flashloan-loadgen/ledger"
)

const (
	defaultMaxGasAmount     uint64        = 10000
	defaultGasUnitPrice     uint64        = 100
	defaultExpirationWindow time.Duration = 600 * time.Second
	defaultPollInterval     time.Duration = 200 * time.Millisecond
	defaultPollTimeout      time.Duration = 30 * time.Second
)

// ExecuteConfig holds the options of a single execution. Zero
// values are replaced by the defaults of the Executor
type ExecuteConfig struct {
	MaxGasAmount     uint64
	GasUnitPrice     uint64
	ExpirationWindow time.Duration
	PollInterval     time.Duration
	PollTimeout      time.Duration
}

// DefaultExecuteConfig is the configuration used when nothing is
// configured
var DefaultExecuteConfig = ExecuteConfig{
	MaxGasAmount:     defaultMaxGasAmount,
	GasUnitPrice:     defaultGasUnitPrice,
	ExpirationWindow: defaultExpirationWindow,
	PollInterval:     defaultPollInterval,
	PollTimeout:      defaultPollTimeout,
}

// Merge returns c with its zero values taken from defaults
func (c ExecuteConfig) Merge(defaults ExecuteConfig) ExecuteConfig {
	if c.MaxGasAmount == 0 {
		c.MaxGasAmount = defaults.MaxGasAmount
	}
	if c.GasUnitPrice == 0 {
		c.GasUnitPrice = defaults.GasUnitPrice
	}
	if c.ExpirationWindow == 0 {
		c.ExpirationWindow = defaults.ExpirationWindow
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = defaults.PollTimeout
	}
	return c
}

// Builder assembles unsigned transaction requests. It has no side
// effects and does not access the network, so the same inputs always
// produce the same request
type Builder struct {
	defaults ExecuteConfig
}

// NewBuilder creates a Builder that falls back to defaults for the
// gas parameters and expiration window
func NewBuilder(defaults ExecuteConfig) *Builder {
	return &Builder{defaults: defaults.Merge(DefaultExecuteConfig)}
}

// Build creates the request for sender to call payload with the
// sequence number seq. The request expires ExpirationWindow after now
func (b *Builder) Build(
	sender ledger.Address,
	payload ledger.EntryFunctionPayload,
	seq uint64,
	now time.Time,
	config ExecuteConfig,
) ledger.TransactionRequest {
	config = config.Merge(b.defaults)

	return ledger.TransactionRequest{
		Sender:                  sender,
		SequenceNumber:          ledger.U64(seq),
		MaxGasAmount:            ledger.U64(config.MaxGasAmount),
		GasUnitPrice:            ledger.U64(config.GasUnitPrice),
		ExpirationTimestampSecs: ledger.U64(now.Add(config.ExpirationWindow).Unix()),
		Payload:                 payload,
	}
}
