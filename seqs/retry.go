package seqs

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"strand/clock"
)

const (
	DefaultRetryAttempts = 7
	DefaultRetryDelay    = 2 * time.Second
	DefaultRetryFactor   = 2.0
)

// BackoffFunc returns the pause before the next attempt.
// attempt is one-based: 1 is the pause after the first failure.
type BackoffFunc func(attempt int) time.Duration

// ConstantBackoff always waits delay.
func ConstantBackoff(delay time.Duration) BackoffFunc {
	return func(int) time.Duration { return delay }
}

// ExponentialBackoff waits initial * factor^(attempt-1), capped at maxDelay
// when maxDelay > 0. jitter in [0, 1] randomizes each pause by up to ±jitter,
// drawing from the source given with WithRand. The returned func is not safe
// for concurrent use when jitter > 0.
func ExponentialBackoff(initial time.Duration, factor float64, maxDelay time.Duration, jitter float64, opts ...TimeOption) BackoffFunc {
	jitter = min(max(jitter, 0), 1)
	rnd := newTimeConfig(opts).rand
	return func(attempt int) time.Duration {
		backoff := time.Duration(float64(initial) * math.Pow(factor, float64(attempt-1)))
		if maxDelay > 0 && backoff > maxDelay {
			backoff = maxDelay
		}
		if jitter > 0 {
			backoff = time.Duration(float64(backoff) * (1 + rnd.Float64()*2*jitter - jitter))
		}
		return backoff
	}
}

type retryConfig struct {
	attempts    int
	backoff     BackoffFunc
	clock       clock.Clock
	logger      *zap.Logger
	shouldRetry func(error) bool
}

type RetryOption func(*retryConfig)

// WithMaxAttempts bounds the number of calls per element, the first one included.
func WithMaxAttempts(n int) RetryOption {
	return func(cfg *retryConfig) {
		cfg.attempts = n
	}
}

func WithBackoff(b BackoffFunc) RetryOption {
	return func(cfg *retryConfig) {
		cfg.backoff = b
	}
}

func WithRetryClock(c clock.Clock) RetryOption {
	return func(cfg *retryConfig) {
		cfg.clock = c
	}
}

func WithRetryLogger(l *zap.Logger) RetryOption {
	return func(cfg *retryConfig) {
		cfg.logger = l
	}
}

// WithShouldRetry limits retries to the errors f accepts. Other errors fail
// the element immediately.
func WithShouldRetry(f func(error) bool) RetryOption {
	return func(cfg *retryConfig) {
		cfg.shouldRetry = f
	}
}

// RetryError is the element error of an element whose every attempt failed.
// It matches ErrRetryExhausted and each attempt's error.
type RetryError struct {
	Attempts int
	Causes   []error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrRetryExhausted, e.Attempts, e.Last())
}

// Last returns the error of the final attempt.
func (e *RetryError) Last() error {
	if len(e.Causes) == 0 {
		return nil
	}
	return e.Causes[len(e.Causes)-1]
}

func (e *RetryError) Unwrap() []error {
	return append([]error{ErrRetryExhausted}, e.Causes...)
}

// Retry maps every element with fn, calling it again with exponential
// backoff while it fails. The defaults are DefaultRetryAttempts attempts
// starting at DefaultRetryDelay and doubling. An element that never
// succeeds carries a *RetryError and the sequence moves on.
func Retry[T, R any](s Seq[T], fn func(T) (R, error), opts ...RetryOption) Seq[R] {
	cfg := retryConfig{
		attempts:    DefaultRetryAttempts,
		backoff:     ExponentialBackoff(DefaultRetryDelay, DefaultRetryFactor, 0, 0),
		clock:       clock.Real(),
		logger:      zap.NewNop(),
		shouldRetry: func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.attempts < 1 {
		cfg.attempts = 1
	}
	return TryMap(s, func(v T) (R, error) {
		var causes []error
		for attempt := 1; ; attempt++ {
			r, err := fn(v)
			if err == nil {
				return r, nil
			}
			causes = append(causes, err)
			if !cfg.shouldRetry(err) {
				return r, err
			}
			if attempt >= cfg.attempts {
				cfg.logger.Warn("retry attempts exhausted", zap.Int("attempts", attempt), zap.Error(err))
				return r, &RetryError{Attempts: attempt, Causes: causes}
			}
			wait := cfg.backoff(attempt)
			cfg.logger.Debug("attempt failed, backing off",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", wait),
				zap.Error(err),
			)
			cfg.clock.Sleep(wait)
		}
	})
}

// Recover replaces every failed element with fn(err).
func (s Seq[T]) Recover(fn func(error) T) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if err != nil {
				v, err = fn(err), nil
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// RecoverAs replaces the failed elements whose error matches E (per
// errors.As). Other failures are passed on.
func RecoverAs[E error, T any](s Seq[T], fn func(E) T) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			var target E
			if err != nil && errors.As(err, &target) {
				v, err = fn(target), nil
			}
			if !yield(v, err) {
				return
			}
		}
	})
}
