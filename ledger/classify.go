package ledger

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pontem-network/flashloan-loadgen/errors"
)

// vm status codes reported by the node in vm_error_code
const (
	vmSequenceNumberTooOld     uint64 = 3
	vmSequenceNumberTooNew     uint64 = 4
	vmInsufficientBalanceOnFee uint64 = 5
)

func parseNodeError(body []byte) NodeError {
	var nodeErr NodeError
	_ = json.Unmarshal(body, &nodeErr)
	return nodeErr
}

// classifySubmission maps a rejected submission to the error code
// of its sub kind
func classifySubmission(status int, body []byte) errors.ErrorCode {
	nodeErr := parseNodeError(body)
	message := strings.ToLower(nodeErr.Message)
	code := strings.ToLower(nodeErr.ErrorCode)

	if nodeErr.VMErrorCode != nil {
		switch *nodeErr.VMErrorCode {
		case vmSequenceNumberTooOld, vmSequenceNumberTooNew:
			return errors.ErrSubmissionConflict
		case vmInsufficientBalanceOnFee:
			return errors.ErrSubmissionInsufficientFunds
		}
	}

	switch {
	case status == http.StatusConflict,
		strings.Contains(code, "sequence_number"),
		strings.Contains(message, "sequence number"),
		strings.Contains(message, "sequence_number"):
		return errors.ErrSubmissionConflict

	case strings.Contains(message, "insufficient balance"),
		strings.Contains(message, "insufficient_balance"):
		return errors.ErrSubmissionInsufficientFunds

	case code == "invalid_input",
		code == "web_framework_error",
		strings.Contains(message, "deserialize"),
		strings.Contains(message, "failed to parse"),
		strings.Contains(message, "malformed"):
		return errors.ErrSubmissionMalformedPayload
	}

	return errors.ErrSubmissionOther
}
