package concurrent

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	stderr "github.com/pkg/errors"
)

// ErrCannotRecover is an error that can be passed by clients to
// retry mechanisms so that the attempted action is not retried
type ErrCannotRecover struct {
	Cause error
}

// Error implementation of error for ErrCannotRecover
func (e ErrCannotRecover) Error() string {
	return e.Cause.Error()
}

// ErrMaxAttemptsReached is an error that is returned after attempting
// an action multiple times with failures
type ErrMaxAttemptsReached struct {
	Causes []error
}

// Error implementation of error for ErrMaxAttemptsReached
func (e ErrMaxAttemptsReached) Error() string {
	if len(e.Causes) == 0 {
		return "maximum number of attempts reached"
	}

	return fmt.Sprintf("maximum number of attempts %d reached, last error: %s",
		len(e.Causes), e.Causes[len(e.Causes)-1])
}

// Last returns the error of the last attempt
func (e ErrMaxAttemptsReached) Last() error {
	if len(e.Causes) == 0 {
		return nil
	}

	return e.Causes[len(e.Causes)-1]
}

const (
	defaultBaseTimeout     time.Duration = 100 * time.Millisecond
	defaultBaseExp         uint8         = 2
	defaultMaxRetryTimeout time.Duration = 2 * time.Second
	defaultAttempts        uint8         = 3
)

var DefaultRetryConfig = RetryConfig{
	BaseTimeout:     defaultBaseTimeout,
	BaseExp:         defaultBaseExp,
	MaxRetryTimeout: defaultMaxRetryTimeout,
	Attempts:        defaultAttempts,
	Random:          true,
}

// NoRetryConfig attempts the operation once
var NoRetryConfig = RetryConfig{
	BaseTimeout:     defaultBaseTimeout,
	BaseExp:         defaultBaseExp,
	MaxRetryTimeout: defaultMaxRetryTimeout,
	Attempts:        1,
}

// Supplier is an interface for a type that provides a value. It
// abstracts any operation so that Retry can run it without knowing
// any specifics of what the Supplier does. The preferred method to
// use it is through SupplierFunc with a closure
type Supplier interface {
	Supply() (interface{}, error)
}

// SupplierFunc allows functions and closures to be passed as a Supplier
type SupplierFunc func() (interface{}, error)

// Supply is the implementation of Supplier by calling the method
// itself
func (s SupplierFunc) Supply() (interface{}, error) {
	return s()
}

// RetryConfig is the configuration parameters for RetryWithConfig
type RetryConfig struct {
	// Random sets the retry to wait a random time based on the
	// exponential back off
	Random bool

	// UnlimitedAttempts when set to true, Attempts will be ignored
	// and the action will be retried until it succeeds or the context
	// is done
	UnlimitedAttempts bool

	// Attempts is the maximum number of attempts allowed
	Attempts uint8

	// BaseExp is the base exponent for the calculation of the next
	// time an attempt must be triggered using exponential backoff
	BaseExp uint8

	// BaseTimeout is the initial timeout used after the first
	// attempt fails
	BaseTimeout time.Duration

	// MaxRetryTimeout sets an upper bound into the time that
	// the retry will wait until attempting an operation again
	MaxRetryTimeout time.Duration
}

// RetryWithConfig is an implementation of an exponential back off
// retry operation for a supplier. It keeps retrying the operation
// until the maximum number of attempts has been reached, in which
// case it returns ErrMaxAttemptsReached, until it succeeds, or until
// the supplier returns ErrCannotRecover
func RetryWithConfig(
	ctx context.Context,
	supplier Supplier,
	config RetryConfig,
) (interface{}, error) {
	var errs []error
	timeout := config.BaseTimeout.Nanoseconds()
	exp := int64(config.BaseExp)
	maxTimeout := config.MaxRetryTimeout.Nanoseconds()
	attempts := 0
	maxAttempts := int(config.Attempts)
	timer := time.NewTimer(0)
	defer timer.Stop()

	if config.UnlimitedAttempts {
		maxAttempts = -1
	}

	for {
		select {
		case <-ctx.Done():
			return nil, stderr.WithStack(ctx.Err())

		case <-timer.C:
			v, err := supplier.Supply()
			if err == nil {
				return v, nil
			}

			if err, ok := err.(ErrCannotRecover); ok {
				return nil, err.Cause
			}

			errs = append(errs, err)
		}

		attempts++
		if attempts >= maxAttempts && maxAttempts >= 0 {
			return nil, ErrMaxAttemptsReached{Causes: errs}
		}

		timeout = timeout * exp
		multiplier := rand.Float64() + 0.5
		if timeout > maxTimeout {
			timeout = maxTimeout
			multiplier = rand.Float64() + 1
		}
		wait := timeout
		if config.Random {
			wait = int64(multiplier*float64(timeout)) + 1
		}
		timer.Reset(time.Duration(wait))
	}
}

// Retry is the same operation as RetryWithConfig using
// DefaultRetryConfig
func Retry(ctx context.Context, supplier Supplier) (interface{}, error) {
	return RetryWithConfig(ctx, supplier, DefaultRetryConfig)
}
