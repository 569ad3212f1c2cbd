package seqs_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"strand/clock"
	"strand/seqs"
)

// flaky fails the first n calls for every input.
func flaky(n int, cause error) func(int) (int, error) {
	calls := map[int]int{}
	return func(v int) (int, error) {
		calls[v]++
		if calls[v] <= n {
			return 0, cause
		}
		return v * 10, nil
	}
}

func TestRetry_Succeeds(t *testing.T) {
	fake := clock.NewFake(epoch)
	transient := errors.New("transient")
	got := collect(t, seqs.Retry(seqs.Of(1, 2), flaky(2, transient), seqs.WithRetryClock(fake)))
	if !slices.Equal(got, []int{10, 20}) {
		t.Errorf("expected [10 20], got %v", got)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 2 * time.Second, 4 * time.Second}
	if !slices.Equal(fake.Sleeps(), want) {
		t.Errorf("expected default backoff %v, got %v", want, fake.Sleeps())
	}
}

func TestRetry_Exhausted(t *testing.T) {
	fake := clock.NewFake(epoch)
	core, logs := observer.New(zapcore.DebugLevel)
	down := errors.New("down")

	s := seqs.Retry(seqs.Of(1), flaky(10, down),
		seqs.WithMaxAttempts(3),
		seqs.WithRetryClock(fake),
		seqs.WithRetryLogger(zap.New(core)),
	)
	_, err := s.ToSlice()

	var rerr *seqs.RetryError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected a RetryError, got %v", err)
	}
	if rerr.Attempts != 3 || len(rerr.Causes) != 3 || rerr.Last() != down {
		t.Errorf("unexpected retry error %+v", rerr)
	}
	if !errors.Is(err, seqs.ErrRetryExhausted) || !errors.Is(err, down) {
		t.Errorf("expected the error to match both ErrRetryExhausted and its cause: %v", err)
	}
	if fake.Slept() != 6*time.Second {
		t.Errorf("expected 2s+4s of backoff, got %v", fake.Slept())
	}
	if n := logs.FilterMessage("retry attempts exhausted").Len(); n != 1 {
		t.Errorf("expected one exhaustion warning, got %d", n)
	}
	if n := logs.FilterLevelExact(zapcore.DebugLevel).Len(); n != 2 {
		t.Errorf("expected a debug entry per backoff, got %d", n)
	}
}

func TestRetry_MovesOnAfterFailure(t *testing.T) {
	fake := clock.NewFake(epoch)
	bad := errors.New("bad")
	fn := func(v int) (int, error) {
		if v == 2 {
			return 0, bad
		}
		return v, nil
	}
	values, err := seqs.Retry(seqs.Of(1, 2, 3), fn, seqs.WithMaxAttempts(2), seqs.WithRetryClock(fake)).CollectAll()
	if !slices.Equal(values, []int{1, 3}) {
		t.Errorf("expected [1 3], got %v", values)
	}
	if !errors.Is(err, bad) {
		t.Errorf("expected bad, got %v", err)
	}
}

func TestRetry_ShouldRetry(t *testing.T) {
	fake := clock.NewFake(epoch)
	fatal := errors.New("fatal")
	calls := 0
	fn := func(int) (int, error) {
		calls++
		return 0, fatal
	}
	_, err := seqs.Retry(seqs.Of(1), fn,
		seqs.WithRetryClock(fake),
		seqs.WithShouldRetry(func(err error) bool { return !errors.Is(err, fatal) }),
	).ToSlice()

	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
	var rerr *seqs.RetryError
	if !errors.Is(err, fatal) || errors.As(err, &rerr) {
		t.Errorf("expected the raw error, got %v", err)
	}
	if len(fake.Sleeps()) != 0 {
		t.Errorf("expected no backoff, got %v", fake.Sleeps())
	}
}

func TestBackoffs(t *testing.T) {
	constant := seqs.ConstantBackoff(time.Second)
	if constant(1) != time.Second || constant(5) != time.Second {
		t.Error("constant backoff must not grow")
	}

	capped := seqs.ExponentialBackoff(time.Second, 2, 3*time.Second, 0)
	var got []time.Duration
	for attempt := 1; attempt <= 4; attempt++ {
		got = append(got, capped(attempt))
	}
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	jittered := seqs.ExponentialBackoff(time.Second, 1, 0, 0.5)
	for range 100 {
		if d := jittered(1); d < 500*time.Millisecond || d > 1500*time.Millisecond {
			t.Fatalf("jittered pause %v outside ±50%%", d)
		}
	}
}

func TestExponentialBackoff_SeededJitter(t *testing.T) {
	seeded := func() seqs.BackoffFunc {
		return seqs.ExponentialBackoff(time.Second, 2, 0, 0.3, seqs.WithRand(rand.New(rand.NewPCG(7, 11))))
	}
	a, b := seeded(), seeded()
	varied := false
	for attempt := 1; attempt <= 6; attempt++ {
		da, db := a(attempt), b(attempt)
		if da != db {
			t.Fatalf("attempt %d: expected equal pauses from equal seeds, got %v and %v", attempt, da, db)
		}
		base := time.Second << (attempt - 1)
		if da != base {
			varied = true
		}
	}
	if !varied {
		t.Error("expected jitter to move at least one pause off the base delay")
	}
}

func TestRecover(t *testing.T) {
	parsed := seqs.TryMap(seqs.Of("1", "x", "3"), strconv.Atoi)
	got := collect(t, parsed.Recover(func(error) int { return -1 }))
	if !slices.Equal(got, []int{1, -1, 3}) {
		t.Errorf("expected [1 -1 3], got %v", got)
	}
}

func TestRecoverAs(t *testing.T) {
	other := errors.New("other")
	src := seqs.FromTry(func(yield func(int, error) bool) {
		_, numErr := strconv.Atoi("x")
		_ = yield(1, nil) && yield(0, numErr) && yield(0, other)
	})

	var values []int
	var errs []error
	recovered := seqs.RecoverAs(src, func(err *strconv.NumError) int { return len(err.Num) })
	for v, err := range recovered.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values = append(values, v)
	}
	if !slices.Equal(values, []int{1, 1}) {
		t.Errorf("expected [1 1], got %v", values)
	}
	if len(errs) != 1 || !errors.Is(errs[0], other) {
		t.Errorf("expected the unmatched error to pass, got %v", errs)
	}
}
