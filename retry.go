package ancore

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy retries a fallible operation with delay base*2^(attempt-1)
// between attempts, or constant base when Exponential is disabled. Errors
// matched by NonRetryable are returned immediately; after exhausting
// MaxAttempts the last error is wrapped in RetriesExhaustedError.
type RetryPolicy struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	Exponential  bool
	NonRetryable func(error) bool
}

// DefaultRetryPolicy returns the policy used by the client when none is
// supplied: three attempts, 500ms exponential base, with validation and
// restore-required errors marked non-retryable.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:  3,
		BaseDelay:    500 * time.Millisecond,
		Exponential:  true,
		NonRetryable: DefaultNonRetryable,
	}
}

// DefaultNonRetryable marks errors that retrying cannot fix: validation
// errors never reach the network, and retrying a restore-required outcome
// without out-of-band restoration is guaranteed to fail again.
func DefaultNonRetryable(err error) bool {
	if errors.Is(err, ErrRestoreRequired) {
		return true
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return true
	}
	var argument *ArgumentError
	if errors.As(err, &argument) {
		return true
	}
	var encoding *EncodingError
	return errors.As(err, &encoding)
}

// Do runs op until it succeeds, a non-retryable error occurs, the context
// is cancelled, or MaxAttempts is exhausted.
func (p *RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delays := p.newBackOff()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if p.NonRetryable != nil && p.NonRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		next := delays.NextBackOff()
		if next == backoff.Stop {
			break
		}
		select {
		case <-time.After(next):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return &RetriesExhaustedError{Attempts: attempts, Err: lastErr}
}

// newBackOff builds the delay source for one Do call.
func (p *RetryPolicy) newBackOff() backoff.BackOff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	if !p.Exponential {
		return backoff.NewConstantBackOff(base)
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = base
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	eb.MaxInterval = time.Hour
	eb.MaxElapsedTime = 0
	eb.Reset()
	return eb
}
