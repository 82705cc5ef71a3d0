package ledger

import (
	"encoding/json"
	"strconv"
)

const (
	// EntryFunctionPayloadType is the payload type of calls to an
	// entry function of a module
	EntryFunctionPayloadType = "entry_function_payload"

	// Ed25519SignatureType is the signature type for single ed25519
	// signers
	Ed25519SignatureType = "ed25519_signature"

	// PendingTransactionType is the type the node reports for
	// transactions that have not been executed yet
	PendingTransactionType = "pending_transaction"

	// UserTransactionType is the type the node reports for executed
	// user transactions
	UserTransactionType = "user_transaction"
)

// U64 is an unsigned 64 bit integer that the node serializes as
// a decimal string
type U64 uint64

// MarshalJSON encodes the value as a decimal string
func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

// UnmarshalJSON accepts both a decimal string and a JSON number
func (u *U64) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*u = U64(v)
	return nil
}

// EntryFunctionPayload is the payload of a call to an entry function.
// Function has the form address::module::function
type EntryFunctionPayload struct {
	Type          string        `json:"type"`
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// TransactionRequest is an unsigned transaction
type TransactionRequest struct {
	Sender                  Address              `json:"sender"`
	SequenceNumber          U64                  `json:"sequence_number"`
	MaxGasAmount            U64                  `json:"max_gas_amount"`
	GasUnitPrice            U64                  `json:"gas_unit_price"`
	ExpirationTimestampSecs U64                  `json:"expiration_timestamp_secs"`
	Payload                 EntryFunctionPayload `json:"payload"`
}

// Signature is the authenticator attached to a signed transaction
type Signature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

// SignedTransaction is a transaction request with its signature
type SignedTransaction struct {
	TransactionRequest
	Signature Signature `json:"signature"`
}

// PendingTransaction is returned by the node once it accepts a
// signed transaction
type PendingTransaction struct {
	Hash string `json:"hash"`
}

// Transaction is the state of a transaction as reported by the node
type Transaction struct {
	Type           string `json:"type"`
	Hash           string `json:"hash"`
	Version        U64    `json:"version,omitempty"`
	SequenceNumber U64    `json:"sequence_number,omitempty"`
	GasUsed        U64    `json:"gas_used,omitempty"`
	Success        bool   `json:"success"`
	VMStatus       string `json:"vm_status"`

	// LedgerTimestampUsec is the node's ledger time when the request
	// was served, taken from the response headers. It is zero if the
	// node did not report it
	LedgerTimestampUsec uint64 `json:"-"`
}

// Pending returns true if the transaction has not been executed yet
func (t Transaction) Pending() bool {
	return t.Type == PendingTransactionType
}

// AccountInfo is the on-chain state of an account
type AccountInfo struct {
	SequenceNumber    U64    `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

// LedgerInfo describes the state of the ledger served by the node
type LedgerInfo struct {
	ChainID             uint8  `json:"chain_id"`
	Epoch               U64    `json:"epoch"`
	LedgerVersion       U64    `json:"ledger_version"`
	OldestLedgerVersion U64    `json:"oldest_ledger_version"`
	LedgerTimestamp     U64    `json:"ledger_timestamp"`
	NodeRole            string `json:"node_role"`
	BlockHeight         U64    `json:"block_height"`
}

// NodeError is the body the node returns on failed requests
type NodeError struct {
	Message     string  `json:"message"`
	ErrorCode   string  `json:"error_code"`
	VMErrorCode *uint64 `json:"vm_error_code"`
}

type coinStore struct {
	Data struct {
		Coin struct {
			Value U64 `json:"value"`
		} `json:"coin"`
	} `json:"data"`
}
