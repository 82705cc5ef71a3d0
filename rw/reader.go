package rw

import (
	"bytes"
	"errors"
	"io"
)

// ErrLimitExceeded signals that the underlying reader has more
// available bytes than the expected limit
var ErrLimitExceeded = errors.New("read limit exceeded")

// ReadLimitProps sets up the behaviour of the limited reads
type ReadLimitProps struct {
	// FailOnExceed defines whether reading should fail if the
	// underlying reader has more bytes than the limit. Otherwise
	// the extra bytes are left unread
	FailOnExceed bool

	// Limit is the maximum number of bytes that can be read from the
	// reader
	Limit int64
}

// CopyWithLimit copies at most props.Limit bytes from an io.Reader
// to an io.Writer
func CopyWithLimit(w io.Writer, r io.Reader, props ReadLimitProps) (int64, error) {
	if r == nil {
		return 0, nil
	}

	if w == nil {
		return 0, errors.New("writer cannot be nil")
	}

	readerLimit := props.Limit
	if props.FailOnExceed {
		// read one more byte than the limit, it is the only way to know
		// whether the reader has more data than allowed
		readerLimit++
	}

	n, err := io.CopyN(w, r, readerLimit)
	if err != nil && err != io.EOF {
		return 0, err
	}

	if n > props.Limit {
		return 0, ErrLimitExceeded
	}

	return n, nil
}

// ReadAllWithLimit reads r until EOF and fails with ErrLimitExceeded
// if it holds more than limit bytes
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := CopyWithLimit(&buf, r, ReadLimitProps{FailOnExceed: true, Limit: limit}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
