// Package poll provides a bounded fixed-delay retry executor for
// fetching resources that are generated asynchronously upstream.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultMaxAttempts bounds one polling session.
	DefaultMaxAttempts = 20
	// DefaultDelay is the fixed wait between failed attempts. There is
	// no exponential backoff; report generation latency upstream is
	// roughly constant, so a fixed cadence is the intended behavior.
	DefaultDelay = 1000 * time.Millisecond
)

// ErrExhausted is returned when every attempt in the budget failed.
var ErrExhausted = errors.New("retry budget exhausted")

// Config bounds a polling session. Zero values take the defaults.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	return c
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as non-retryable. Do fails immediately when
// the fetch function returns a permanent error instead of burning the
// remaining budget on a failure that cannot resolve itself.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Do invokes fetch until it succeeds or the attempt budget is
// exhausted, waiting cfg.Delay between failed attempts. Every error is
// treated as transient unless wrapped with Permanent; the upstream API
// signals "still generating" through ordinary fetch failures, so the
// retry-everything default is intentional even though it can mask
// genuine misconfiguration for the length of one session.
//
// Attempts are strictly sequential. The inter-attempt wait respects
// ctx; cancellation surfaces as ctx.Err.
func Do[T any](ctx context.Context, cfg Config, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := fetch(ctx)
		if err == nil {
			return result, nil
		}
		if IsPermanent(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		if err := wait(ctx, cfg.Delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, cfg.MaxAttempts, lastErr)
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
