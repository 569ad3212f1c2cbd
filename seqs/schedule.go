package seqs

import (
	"fmt"
	"iter"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Trigger computes fire times for a scheduled stream. cron.Schedule satisfies it.
type Trigger interface {
	// Next returns the first fire time after now.
	Next(now time.Time) time.Time
}

// fixedDelay fires immediately, then delay after each element was published.
type fixedDelay struct {
	delay   time.Duration
	started bool
}

func (t *fixedDelay) Next(now time.Time) time.Time {
	if !t.started {
		t.started = true
		return now
	}
	return now.Add(t.delay)
}

// fixedRate fires immediately, then every rate measured from the first fire,
// however long publishing takes. Missed fire times run back to back.
type fixedRate struct {
	rate time.Duration
	last time.Time
}

func (t *fixedRate) Next(now time.Time) time.Time {
	if t.last.IsZero() {
		t.last = now
	} else {
		t.last = t.last.Add(t.rate)
	}
	return t.last
}

// ScheduleWith runs s as a hot stream that pulls and publishes one element
// each time trigger fires. The stream completes when s is exhausted.
func ScheduleWith[T any](s Seq[T], trigger Trigger, opts ...HotOption) *Hot[T] {
	h, exec := newHot[T](opts)
	h.start(exec, func() {
		next, stop := iter.Pull2(s.All())
		defer stop()
		for {
			at := trigger.Next(h.clock.Now())
			if !h.waitUntil(at) {
				return
			}
			v, err, ok := next()
			if !ok {
				return
			}
			h.broadcast(item[T]{v, err})
		}
	})
	return h
}

// ScheduleFixedDelay publishes the first element right away and each next one
// delay after the previous one was published.
func ScheduleFixedDelay[T any](s Seq[T], delay time.Duration, opts ...HotOption) *Hot[T] {
	checkDuration("scheduleFixedDelay", delay)
	return ScheduleWith(s, &fixedDelay{delay: delay}, opts...)
}

// ScheduleFixedRate publishes one element every rate, starting right away.
func ScheduleFixedRate[T any](s Seq[T], rate time.Duration, opts ...HotOption) *Hot[T] {
	checkDuration("scheduleFixedRate", rate)
	return ScheduleWith(s, &fixedRate{rate: rate}, opts...)
}

// Schedule publishes one element at every fire time of a standard five-field
// cron expression ("0 20 * * *" is every day at 8 PM). Descriptors such as
// "@hourly" and "@every 1m" are accepted too.
func Schedule[T any](s Seq[T], expr string, opts ...HotOption) (*Hot[T], error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: cron expression %q: %w", ErrInvalidArgument, expr, err)
	}
	return ScheduleWith(s, sched, opts...), nil
}

// waitUntil sleeps on the stream's clock until at. It returns false if the
// stream was stopped first.
func (h *Hot[T]) waitUntil(at time.Time) bool {
	d := at.Sub(h.clock.Now())
	if d <= 0 {
		return !h.stopped()
	}
	h.log.Debug("waiting for next trigger", zap.Time("at", at), zap.Duration("in", d))
	select {
	case <-h.stopCh:
		return false
	case <-h.clock.After(d):
		return !h.stopped()
	}
}
