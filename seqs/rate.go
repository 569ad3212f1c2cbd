package seqs

import (
	"math/rand/v2"
	"time"

	"strand/clock"
	"strand/queues"
)

type timeConfig struct {
	clock clock.Clock
	rand  *rand.Rand
}

// TimeOption configures the clock and randomness of time-based operators.
type TimeOption func(*timeConfig)

// WithClock replaces the wall clock. Tests pass a *clock.Fake.
func WithClock(c clock.Clock) TimeOption {
	return func(cfg *timeConfig) {
		cfg.clock = c
	}
}

// WithRand sets the random source used by Jitter and Shuffle.
func WithRand(r *rand.Rand) TimeOption {
	return func(cfg *timeConfig) {
		cfg.rand = r
	}
}

func newTimeConfig(opts []TimeOption) timeConfig {
	cfg := timeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = clock.Real()
	}
	if cfg.rand == nil {
		cfg.rand = newRand()
	}
	return cfg
}

// Rate operators block the pulling goroutine. Failed elements are paced like
// any other element, except under Debounce, which always lets them through.

// XPer lets at most count elements through in any rolling window of length
// d, pausing before an element that would exceed it.
func (s Seq[T]) XPer(count int, d time.Duration, opts ...TimeOption) Seq[T] {
	if count <= 0 || d < 0 {
		invalidArgument("xPer(%d, %v)", count, d)
	}
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		// emission times of the last count elements
		stamps := queues.NewArrayQueue[time.Time](count)
		for v, err := range s.All() {
			if stamps.Size() == count {
				oldest, _ := stamps.Dequeue()
				if wait := oldest.Add(d).Sub(cfg.clock.Now()); wait > 0 {
					cfg.clock.Sleep(wait)
				}
			}
			stamps.Enqueue(cfg.clock.Now())
			if !yield(v, err) {
				return
			}
		}
	})
}

// OnePer paces the sequence to one element every d. Nothing is dropped.
func (s Seq[T]) OnePer(d time.Duration, opts ...TimeOption) Seq[T] {
	return s.XPer(1, d, opts...)
}

// Debounce lets the first element of every d-long window through and drops
// the others. A window opens with the element that passes.
func (s Seq[T]) Debounce(d time.Duration, opts ...TimeOption) Seq[T] {
	if d < 0 {
		invalidArgument("debounce(%v)", d)
	}
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		var opened time.Time
		started := false
		for v, err := range s.All() {
			if err == nil {
				now := cfg.clock.Now()
				if started && now.Sub(opened) < d {
					continue
				}
				started = true
				opened = now
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// FixedDelay pauses for d after every element, before pulling the next one.
func (s Seq[T]) FixedDelay(d time.Duration, opts ...TimeOption) Seq[T] {
	if d < 0 {
		invalidArgument("fixedDelay(%v)", d)
	}
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if !yield(v, err) {
				return
			}
			cfg.clock.Sleep(d)
		}
	})
}

// Jitter pauses for a random duration in [0, maxPause) after every element.
func (s Seq[T]) Jitter(maxPause time.Duration, opts ...TimeOption) Seq[T] {
	if maxPause <= 0 {
		invalidArgument("jitter(%v)", maxPause)
	}
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if !yield(v, err) {
				return
			}
			cfg.clock.Sleep(time.Duration(cfg.rand.Int64N(int64(maxPause))))
		}
	})
}

// LimitFor yields elements until d has passed since the first pull.
func (s Seq[T]) LimitFor(d time.Duration, opts ...TimeOption) Seq[T] {
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		start := cfg.clock.Now()
		for v, err := range s.All() {
			if cfg.clock.Now().Sub(start) >= d {
				return
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// SkipFor drops elements until d has passed since the first pull.
func (s Seq[T]) SkipFor(d time.Duration, opts ...TimeOption) Seq[T] {
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		start := cfg.clock.Now()
		for v, err := range s.All() {
			if cfg.clock.Now().Sub(start) < d {
				continue
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// Elapsed pairs every element with the time since the previous one (or since the first pull).
func Elapsed[T any](s Seq[T], opts ...TimeOption) Seq[Pair[T, time.Duration]] {
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(Pair[T, time.Duration], error) bool) {
		last := cfg.clock.Now()
		for v, err := range s.All() {
			now := cfg.clock.Now()
			if !yield(Pair[T, time.Duration]{v, now.Sub(last)}, err) {
				return
			}
			last = now
		}
	})
}

// Timestamp pairs every element with the time it was pulled.
func Timestamp[T any](s Seq[T], opts ...TimeOption) Seq[Pair[T, time.Time]] {
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(Pair[T, time.Time], error) bool) {
		for v, err := range s.All() {
			if !yield(Pair[T, time.Time]{v, cfg.clock.Now()}, err) {
				return
			}
		}
	})
}
