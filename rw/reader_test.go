package rw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyWithLimit(t *testing.T) {
	var w bytes.Buffer

	n, err := CopyWithLimit(&w, bytes.NewBufferString("some data"), ReadLimitProps{FailOnExceed: true, Limit: 16})

	assert.Nil(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "some data", w.String())
}

func TestCopyWithLimitExactLimit(t *testing.T) {
	var w bytes.Buffer

	n, err := CopyWithLimit(&w, bytes.NewBufferString("some data"), ReadLimitProps{FailOnExceed: true, Limit: 9})

	assert.Nil(t, err)
	assert.Equal(t, int64(9), n)
}

func TestCopyWithLimitErrExceed(t *testing.T) {
	var w bytes.Buffer

	_, err := CopyWithLimit(&w, bytes.NewBufferString("some data"), ReadLimitProps{FailOnExceed: true, Limit: 8})

	assert.Equal(t, ErrLimitExceeded, err)
}

func TestCopyWithLimitTruncates(t *testing.T) {
	var w bytes.Buffer
	r := bytes.NewBufferString("some data")

	n, err := CopyWithLimit(&w, r, ReadLimitProps{FailOnExceed: false, Limit: 8})

	assert.Nil(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "some dat", w.String())
	assert.Equal(t, 1, r.Len())
}

func TestCopyWithLimitNilReader(t *testing.T) {
	var w bytes.Buffer

	n, err := CopyWithLimit(&w, nil, ReadLimitProps{Limit: 8})

	assert.Nil(t, err)
	assert.Equal(t, int64(0), n)
}

func TestReadAllWithLimit(t *testing.T) {
	p, err := ReadAllWithLimit(bytes.NewBufferString(`{"sequence_number":"3"}`), 1<<10)

	assert.Nil(t, err)
	assert.Equal(t, `{"sequence_number":"3"}`, string(p))

	_, err = ReadAllWithLimit(bytes.NewBufferString(`{"sequence_number":"3"}`), 4)
	assert.Equal(t, ErrLimitExceeded, err)
}
