package errors

import (
	"fmt"

	stderr "github.com/pkg/errors"

	"github.com/pontem-network/flashloan-loadgen/log"
)

type Err interface {
	Error() string
	log.Loggable
}

var (
	ErrInternalError = ErrorCode{
		category: InternalError,
		code:     1000,
		kind:     "internal",
		desc:     "Internal Error. Please check the status of the service.",
	}

	ErrHttpRequest = ErrorCode{
		category: InternalError,
		code:     1001,
		kind:     "transport",
		desc:     "Failed to deliver the http request to the node.",
	}

	ErrDeserializeResponse = ErrorCode{
		category: InternalError,
		code:     1002,
		kind:     "decode",
		desc:     "Failed to deserialize the response body returned by the node.",
	}

	ErrSignTransaction = ErrorCode{
		category: InternalError,
		code:     1003,
		kind:     "sign",
		desc:     "Failed to sign the transaction signing message.",
	}

	ErrInvalidSigningMessage = ErrorCode{
		category: InternalError,
		code:     1004,
		kind:     "signing_message",
		desc:     "Signing message returned by the node is not valid hex.",
	}

	ErrMetricsPush = ErrorCode{
		category: InternalError,
		code:     1005,
		kind:     "metrics_push",
		desc:     "Failed to push metrics to the prometheus push gateway.",
	}

	ErrReport = ErrorCode{
		category: InternalError,
		code:     1006,
		kind:     "report",
		desc:     "Failed to write the result to the report sink.",
	}

	ErrInvalidAddress = ErrorCode{
		category: InputError,
		code:     2001,
		kind:     "invalid_address",
		desc:     "Provided invalid address.",
	}

	ErrInvalidPayload = ErrorCode{
		category: InputError,
		code:     2002,
		kind:     "invalid_payload",
		desc:     "Contract call does not match the entry function definition.",
	}

	ErrInvalidConfig = ErrorCode{
		category: InputError,
		code:     2003,
		kind:     "invalid_config",
		desc:     "Provided configuration is not valid.",
	}

	ErrMissingSigner = ErrorCode{
		category: InputError,
		code:     2004,
		kind:     "missing_signer",
		desc:     "Account has no signer and cannot send transactions.",
	}

	ErrAccountNotFound = ErrorCode{
		category: NodeError,
		code:     3001,
		kind:     "account_not_found",
		desc:     "Account does not exist on the ledger. It may need to be funded first.",
	}

	ErrEncoding = ErrorCode{
		category: NodeError,
		code:     3002,
		kind:     "encoding",
		desc:     "Node rejected the unsigned transaction request.",
	}

	ErrSubmissionConflict = ErrorCode{
		category: StateConflict,
		code:     3003,
		kind:     "submission_conflict",
		desc:     "Node rejected the transaction because of a sequence number conflict.",
	}

	ErrSubmissionInsufficientFunds = ErrorCode{
		category: ResourceLimitReached,
		code:     3004,
		kind:     "submission_insufficient_funds",
		desc:     "Node rejected the transaction because the sender cannot pay for it.",
	}

	ErrSubmissionMalformedPayload = ErrorCode{
		category: NodeError,
		code:     3005,
		kind:     "submission_malformed_payload",
		desc:     "Node rejected the transaction because the payload is malformed.",
	}

	ErrSubmissionOther = ErrorCode{
		category: NodeError,
		code:     3006,
		kind:     "submission_other",
		desc:     "Node rejected the signed transaction.",
	}

	ErrNodeRequest = ErrorCode{
		category: NodeError,
		code:     3007,
		kind:     "node_request",
		desc:     "Node returned an unexpected status code.",
	}

	ErrTransactionNotFound = ErrorCode{
		category: NodeError,
		code:     3008,
		kind:     "transaction_not_found",
		desc:     "Node does not know about the transaction.",
	}

	ErrFaucet = ErrorCode{
		category: NodeError,
		code:     3009,
		kind:     "faucet",
		desc:     "Faucet failed to fund the account.",
	}

	ErrTimeout = ErrorCode{
		category: Timeout,
		code:     4001,
		kind:     "timeout",
		desc:     "Gave up waiting for the transaction. Its outcome is unknown and it may still execute.",
	}

	ErrExpired = ErrorCode{
		category: Timeout,
		code:     4002,
		kind:     "expired",
		desc:     "Transaction expired before it was executed.",
	}

	ErrCanceled = ErrorCode{
		category: Timeout,
		code:     4003,
		kind:     "canceled",
		desc:     "Operation was canceled by the caller.",
	}
)

// Category defines error categories that logically group them
type Category string

const (
	// InternalError refers to programming errors or other unexpected
	// errors, such as failing to reach the node on the network
	InternalError Category = "InternalError"

	// InputError refers to errors that are returned because the input
	// provided to execute an action is incorrect, malformed or could
	// not be parsed
	InputError Category = "InputError"

	// StateConflict refers to errors caused by the ledger state not
	// matching the expectations of the request, such as a stale
	// sequence number
	StateConflict Category = "StateConflict"

	// ResourceLimitReached refers to errors in which an account has
	// run out of a resource, typically funds
	ResourceLimitReached Category = "ResourceLimitReached"

	// NodeError refers to requests the node refused to serve
	NodeError Category = "NodeError"

	// Timeout refers to deadlines passing before a terminal state
	// was observed
	Timeout Category = "Timeout"
)

// Error is the implementation of an error for this package. It contains
// an instance of an ErrorCode which provides information about the error,
// a cause which might be nil, and the raw response body when the error
// originated at the node
type Error struct {
	Cause     error
	ErrorCode ErrorCode
	Body      string
}

// Error is the implementation of error for Error
func (e Error) Error() string {
	msg := fmt.Sprintf("[%d] %s: %s", e.ErrorCode.Code(), e.ErrorCode.Kind(), e.ErrorCode.Desc())
	if e.Cause != nil {
		msg += fmt.Sprintf(" cause: %s", e.Cause)
	}
	if len(e.Body) > 0 {
		msg += fmt.Sprintf(" body: %s", e.Body)
	}

	return msg
}

// Unwrap returns the cause of the error
func (e Error) Unwrap() error {
	return e.Cause
}

// Log implementation of log.Loggable
func (e Error) Log(fields log.Fields) {
	fields.Add("err", e.ErrorCode.Desc())
	fields.Add("errorCode", e.ErrorCode.Code())
	fields.Add("errorKind", e.ErrorCode.Kind())

	if e.Cause != nil {
		fields.Add("cause", e.Cause.Error())
	}
	if len(e.Body) > 0 {
		fields.Add("body", e.Body)
	}
}

// New creates a new instance of an error
func New(errorCode ErrorCode, cause error) Error {
	return Error{Cause: cause, ErrorCode: errorCode}
}

// NewWithBody creates a new error that keeps the response body
// returned by the node verbatim
func NewWithBody(errorCode ErrorCode, cause error, body string) Error {
	return Error{Cause: cause, ErrorCode: errorCode, Body: body}
}

// Is returns true if err is, or wraps, an Error with the
// provided error code
func Is(err error, code ErrorCode) bool {
	var e Error
	if !stderr.As(err, &e) {
		return false
	}

	return e.ErrorCode.Code() == code.Code()
}

// IsSubmission returns true if err was caused by the node rejecting
// a signed transaction, whatever the sub-kind
func IsSubmission(err error) bool {
	return Is(err, ErrSubmissionConflict) ||
		Is(err, ErrSubmissionInsufficientFunds) ||
		Is(err, ErrSubmissionMalformedPayload) ||
		Is(err, ErrSubmissionOther)
}

// Kind returns the short label of the error, used for reporting.
// Errors that do not belong to this package are reported as internal
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var e Error
	if !stderr.As(err, &e) {
		return ErrInternalError.Kind()
	}

	return e.ErrorCode.Kind()
}

// ErrorCode holds the necessary information to uniquely identify an error
type ErrorCode struct {
	// category is the type of the error
	category Category

	// code is a unique identifier for the error
	code int

	// kind is a short machine friendly label for the error
	kind string

	// desc is a human readable description of the error
	desc string
}

// Category getter for category
func (e ErrorCode) Category() Category {
	return e.category
}

// Code getter for code
func (e ErrorCode) Code() int {
	return e.code
}

// Kind getter for kind
func (e ErrorCode) Kind() string {
	return e.kind
}

// Desc getter for desc
func (e ErrorCode) Desc() string {
	return e.desc
}
