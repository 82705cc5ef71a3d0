package ledger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pontem-network/flashloan-loadgen/errors"
)

func TestClassifySubmission(t *testing.T) {
	for _, c := range []struct {
		status int
		body   string
		code   errors.ErrorCode
	}{
		{http.StatusBadRequest, `{"message":"sequence number too old"}`, errors.ErrSubmissionConflict},
		{http.StatusBadRequest, `{"message":"Invalid transaction: Type: Validation Code: SEQUENCE_NUMBER_TOO_OLD","error_code":"vm_error","vm_error_code":3}`, errors.ErrSubmissionConflict},
		{http.StatusConflict, `{"message":"transaction already in mempool"}`, errors.ErrSubmissionConflict},
		{http.StatusBadRequest, `{"message":"Invalid transaction","error_code":"vm_error","vm_error_code":5}`, errors.ErrSubmissionInsufficientFunds},
		{http.StatusBadRequest, `{"message":"INSUFFICIENT_BALANCE_FOR_TRANSACTION_FEE"}`, errors.ErrSubmissionInsufficientFunds},
		{http.StatusBadRequest, `{"message":"failed to parse payload","error_code":"invalid_input"}`, errors.ErrSubmissionMalformedPayload},
		{http.StatusBadRequest, `{"message":"Failed to deserialize input into SubmitTransactionRequest"}`, errors.ErrSubmissionMalformedPayload},
		{http.StatusBadRequest, `{"message":"mempool is full","error_code":"mempool_is_full"}`, errors.ErrSubmissionOther},
		{http.StatusInternalServerError, `not json`, errors.ErrSubmissionOther},
	} {
		assert.Equal(t, c.code, classifySubmission(c.status, []byte(c.body)), c.body)
	}
}
