// Package retry re-runs functions with exponential backoff.
//
// Retry schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms (with 30% jitter).
// A single delay never exceeds the max delay (default 5 s) plus its jitter.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/AntonStoeckl/domain-types-go/guard"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
	defaultMaxDelay     = 5 * time.Second

	logMsgRetrying = "retrying after failed attempt"

	logAttrAttempt = "attempt"
	logAttrDelayMS = "delay_ms"
	logAttrError   = "error"
	logAttrReason  = "reason"
)

var (
	// ErrRetriesExhausted is returned when the last attempt still asked for a retry.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidMaxDelay is returned when the max delay is not positive.
	ErrInvalidMaxDelay = errors.New("max delay must be positive")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")

	// ErrNilRetryable is returned when a nil predicate is provided to WithRetryable.
	ErrNilRetryable = errors.New("retryable predicate must not be nil")
)

// Logger is the subset of domaintypes.ContextualLogger the retry loop writes to.
type Logger interface {
	WarnContext(ctx context.Context, msg string, args ...any)
}

type config struct {
	maxAttempts  int
	baseDelay    time.Duration
	maxDelay     time.Duration
	jitterFactor float64
	retryable    func(error) bool
	logger       Logger
}

// Option configures retry behavior using the functional options pattern.
type Option func(*config) error

// WithMaxAttempts sets the maximum number of attempts, including the first one.
func WithMaxAttempts(attempts int) Option {
	return func(c *config) error {
		if err := guard.Positive("max attempts", attempts); err != nil {
			return errors.Join(ErrInvalidMaxAttempts, err)
		}

		c.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *config) error {
		if err := guard.NotNegative("base delay", delay); err != nil {
			return errors.Join(ErrNegativeBaseDelay, err)
		}

		c.baseDelay = delay

		return nil
	}
}

// WithMaxDelay caps the backoff delay before jitter is added.
func WithMaxDelay(delay time.Duration) Option {
	return func(c *config) error {
		if err := guard.Positive("max delay", delay); err != nil {
			return errors.Join(ErrInvalidMaxDelay, err)
		}

		c.maxDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter that is added as a share of the calculated backoff delay.
// Valid range: 0.0 (no jitter) to 1.0 (100% jitter).
func WithJitterFactor(factor float64) Option {
	return func(c *config) error {
		if err := guard.InRange("jitter factor", factor, 0.0, 1.0); err != nil {
			return errors.Join(ErrInvalidJitterFactor, err)
		}

		c.jitterFactor = factor

		return nil
	}
}

// WithRetryable sets the predicate that decides which errors are retried.
// The default retries every error except context cancellation and deadline expiry.
func WithRetryable(retryable func(error) bool) Option {
	return func(c *config) error {
		if retryable == nil {
			return ErrNilRetryable
		}

		c.retryable = retryable

		return nil
	}
}

// WithLogger sets a logger that receives one warning per retry.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithRetryOnError runs fn until it succeeds, fails with an error that is not retryable,
// or the attempts are used up. In the last case the error wraps ErrRetriesExhausted and the last error.
func WithRetryOnError[T any](ctx context.Context, fn func(ctx context.Context) (T, error), options ...Option) (T, error) {
	return run(ctx, fn, nil, options)
}

// WithRetryOnResult is WithRetryOnError that also retries successful results for which shouldRetry is true.
// When the attempts are used up it returns the last result together with ErrRetriesExhausted.
func WithRetryOnResult[T any](ctx context.Context, fn func(ctx context.Context) (T, error), shouldRetry func(T) bool, options ...Option) (T, error) {
	return run(ctx, fn, shouldRetry, options)
}

func run[T any](ctx context.Context, fn func(ctx context.Context) (T, error), shouldRetry func(T) bool, options []Option) (T, error) {
	var zero T

	c := &config{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		maxDelay:     defaultMaxDelay,
		jitterFactor: defaultJitterFactor,
		retryable:    isRetryableByDefault,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return zero, err
		}
	}

	var (
		result  T
		lastErr error
	)

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			c.logRetry(ctx, attempt, delay, lastErr)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, lastErr = fn(ctx)

		if lastErr != nil {
			if !c.retryable(lastErr) {
				return zero, lastErr
			}

			continue
		}

		if shouldRetry == nil || !shouldRetry(result) {
			return result, nil
		}
	}

	if lastErr != nil {
		return zero, errors.Join(ErrRetriesExhausted, lastErr)
	}

	return result, ErrRetriesExhausted
}

// backoff returns baseDelay * 2^(attempt-1), capped at maxDelay, plus jitter.
// The doubling stops at the cap, so large attempt numbers can not overflow.
func (c *config) backoff(attempt int) time.Duration {
	delay := min(c.baseDelay, c.maxDelay)

	for i := 1; i < attempt && delay < c.maxDelay; i++ {
		if delay > c.maxDelay/2 {
			delay = c.maxDelay
			break
		}

		delay *= 2
	}

	jitter := rand.Float64() * float64(delay) * c.jitterFactor //nolint:gosec //math/rand is sufficient for jitter

	return delay + time.Duration(jitter)
}

func (c *config) logRetry(ctx context.Context, attempt int, delay time.Duration, lastErr error) {
	if c.logger == nil {
		return
	}

	reason := "result"
	args := []any{logAttrAttempt, attempt + 1, logAttrDelayMS, delay.Milliseconds()}

	if lastErr != nil {
		reason = "error"
		args = append(args, logAttrError, lastErr.Error())
	}

	c.logger.WarnContext(ctx, logMsgRetrying, append(args, logAttrReason, reason)...)
}

// isRetryableByDefault refuses to retry canceled or timed-out work; retrying timeouts under load cascades.
func isRetryableByDefault(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
