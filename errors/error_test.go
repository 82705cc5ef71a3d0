package errors

import (
	"fmt"
	"testing"

	stderr "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/pontem-network/flashloan-loadgen/log"
)

func TestErrorMessageWithBody(t *testing.T) {
	err := NewWithBody(ErrEncoding, nil, `{"message":"bad"}`)

	assert.Equal(t, `[3002] encoding: Node rejected the unsigned transaction request. body: {"message":"bad"}`,
		err.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	err := New(ErrHttpRequest, stderr.New("connection refused"))

	assert.Equal(t, "[1001] transport: Failed to deliver the http request to the node. cause: connection refused",
		err.Error())
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrSubmissionConflict, nil)

	assert.True(t, Is(err, ErrSubmissionConflict))
	assert.False(t, Is(err, ErrSubmissionOther))
	assert.True(t, IsSubmission(err))
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("execute failed: %w", New(ErrTimeout, nil))

	assert.True(t, Is(err, ErrTimeout))
	assert.False(t, Is(err, ErrExpired))
	assert.Equal(t, "timeout", Kind(err))
}

func TestKindForeignError(t *testing.T) {
	assert.Equal(t, "internal", Kind(stderr.New("boom")))
	assert.Equal(t, "", Kind(nil))
}

func TestIsSubmissionFalseForEncoding(t *testing.T) {
	assert.False(t, IsSubmission(New(ErrEncoding, nil)))
}

type fields map[string]interface{}

func (f fields) Add(key string, value interface{}) {
	f[key] = value
}

func TestErrorLog(t *testing.T) {
	var loggable log.Loggable = NewWithBody(ErrSubmissionInsufficientFunds, stderr.New("400"), "body")
	f := fields{}

	loggable.Log(f)

	assert.Equal(t, fields{
		"err":       ErrSubmissionInsufficientFunds.Desc(),
		"errorCode": 3004,
		"errorKind": "submission_insufficient_funds",
		"cause":     "400",
		"body":      "body",
	}, f)
}
