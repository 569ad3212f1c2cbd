package seqs

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"strand/clock"
	"strand/queues"
)

// DefaultSubscriberBuffer is the per-subscriber queue length of a hot stream.
const DefaultSubscriberBuffer = 128

// Executor runs a hot stream's publishing loop.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(task func())

func (f ExecutorFunc) Execute(task func()) { f(task) }

// GoExecutor runs every task on a new goroutine.
var GoExecutor Executor = ExecutorFunc(func(task func()) { go task() })

// LimitedExecutor runs at most n tasks at a time. Further tasks wait for a
// free slot on their own goroutine, so Execute never blocks.
type LimitedExecutor struct {
	sem *semaphore.Weighted
}

func NewLimitedExecutor(n int64) *LimitedExecutor {
	if n < 1 {
		n = 1
	}
	return &LimitedExecutor{sem: semaphore.NewWeighted(n)}
}

func (e *LimitedExecutor) Execute(task func()) {
	go func() {
		// cannot fail: the context is never done
		_ = e.sem.Acquire(context.Background(), 1)
		defer e.sem.Release(1)
		task()
	}()
}

// HotMonitor observes a hot stream. Callbacks run on the publishing goroutine
// (OnPublish, OnDrop) or the caller's goroutine (OnConnect, OnDisconnect) and
// must not block.
type HotMonitor interface {
	OnPublish(published int64)
	// OnDrop records an element evicted from a full subscriber queue.
	OnDrop(sub uuid.UUID)
	OnConnect(sub uuid.UUID)
	OnDisconnect(sub uuid.UUID)
}

type NoopHotMonitor struct{}

func (NoopHotMonitor) OnPublish(int64)        {}
func (NoopHotMonitor) OnDrop(uuid.UUID)       {}
func (NoopHotMonitor) OnConnect(uuid.UUID)    {}
func (NoopHotMonitor) OnDisconnect(uuid.UUID) {}

type hotConfig struct {
	executor Executor
	buffer   int
	logger   *zap.Logger
	monitor  HotMonitor
	clock    clock.Clock
}

type HotOption func(*hotConfig)

// WithExecutor sets where the publishing loop runs. The default is GoExecutor.
func WithExecutor(e Executor) HotOption {
	return func(cfg *hotConfig) {
		cfg.executor = e
	}
}

// WithBufferSize bounds every subscriber queue. When a subscriber falls
// behind, its oldest queued element is dropped; the publisher never waits.
func WithBufferSize(n int) HotOption {
	return func(cfg *hotConfig) {
		cfg.buffer = n
	}
}

func WithLogger(l *zap.Logger) HotOption {
	return func(cfg *hotConfig) {
		cfg.logger = l
	}
}

func WithMonitor(m HotMonitor) HotOption {
	return func(cfg *hotConfig) {
		cfg.monitor = m
	}
}

// WithHotClock sets the clock scheduled streams wait on.
func WithHotClock(c clock.Clock) HotOption {
	return func(cfg *hotConfig) {
		cfg.clock = c
	}
}

type hotState int

const (
	hotCreated hotState = iota
	hotRunning
	hotCompleted
	hotStopped
)

// Hot is a sequence running on a background worker and broadcasting every
// element to the subscribers connected at the time.
//
// A subscriber sees only elements published after it connected, in publish
// order. Delivery is at most once: each subscriber has a bounded queue and a
// slow one loses its oldest undelivered elements.
type Hot[T any] struct {
	id      uuid.UUID
	log     *zap.Logger
	monitor HotMonitor
	buffer  int
	clock   clock.Clock

	mu    sync.Mutex
	subs  map[uuid.UUID]*Subscription[T]
	state hotState
	err   error

	published atomic.Int64
	stopCh    chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

func newHot[T any](opts []HotOption) (*Hot[T], Executor) {
	cfg := hotConfig{
		executor: GoExecutor,
		buffer:   DefaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		// library code stays silent unless asked
		cfg.logger = zap.NewNop()
	}
	if cfg.monitor == nil {
		cfg.monitor = NoopHotMonitor{}
	}
	if cfg.clock == nil {
		cfg.clock = clock.Real()
	}
	if cfg.buffer < 1 {
		cfg.buffer = 1
	}
	id := uuid.New()
	return &Hot[T]{
		id:      id,
		log:     cfg.logger.With(zap.Stringer("stream", id)),
		monitor: cfg.monitor,
		buffer:  cfg.buffer,
		clock:   cfg.clock,
		subs:    make(map[uuid.UUID]*Subscription[T]),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}, cfg.executor
}

// HotStream starts pulling s on a background worker right away.
func HotStream[T any](s Seq[T], opts ...HotOption) *Hot[T] {
	h, exec := newHot[T](opts)
	h.start(exec, func() {
		for v, err := range s.All() {
			if h.stopped() {
				return
			}
			h.broadcast(item[T]{v, err})
		}
	})
	return h
}

func (h *Hot[T]) start(exec Executor, loop func()) {
	h.mu.Lock()
	h.state = hotRunning
	h.mu.Unlock()
	h.log.Debug("hot stream started")
	exec.Execute(func() {
		defer h.finish()
		defer h.recoverPanic()
		loop()
	})
}

func (h *Hot[T]) recoverPanic() {
	if r := recover(); r != nil {
		perr := &PanicError{Value: r, Stack: debug.Stack()}
		h.mu.Lock()
		h.err = multierr.Append(h.err, perr)
		h.mu.Unlock()
		h.log.Error("hot stream worker panicked", zap.Any("panic", r), zap.ByteString("stack", perr.Stack))
	}
}

func (h *Hot[T]) finish() {
	h.mu.Lock()
	h.state = hotCompleted
	if h.stopped() {
		h.state = hotStopped
		h.err = multierr.Append(h.err, ErrHotStreamStopped)
	}
	subs := h.subs
	h.subs = make(map[uuid.UUID]*Subscription[T])
	for _, sub := range subs {
		// subscribers still drain what is queued
		sub.q.Close()
	}
	h.mu.Unlock()
	close(h.done)
	h.log.Debug("hot stream finished",
		zap.Int64("published", h.published.Load()),
		zap.Int("subscribers", len(subs)),
	)
}

func (h *Hot[T]) broadcast(it item[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		dropped, err := sub.q.EnqueueDropOldest(it)
		if err != nil {
			// closed by the subscriber, unregistering is on its way
			continue
		}
		if dropped {
			sub.dropped.Add(1)
			h.monitor.OnDrop(id)
			h.log.Debug("subscriber queue full, dropped oldest element", zap.Stringer("subscription", id))
		}
	}
	h.monitor.OnPublish(h.published.Add(1))
}

func (h *Hot[T]) stopped() bool {
	select {
	case <-h.stopCh:
		return true
	default:
		return false
	}
}

// Connect registers a new subscriber. It receives the elements published from
// now on; nothing published earlier is replayed. Connecting to a finished
// stream returns an already exhausted subscription.
func (h *Hot[T]) Connect() *Subscription[T] {
	sub := &Subscription[T]{
		id:  uuid.New(),
		q:   queues.NewNotifyQueue[item[T]](min(h.buffer, DefaultSubscriberBuffer), h.buffer),
		hot: h,
	}
	h.mu.Lock()
	if h.state >= hotCompleted {
		h.mu.Unlock()
		sub.q.Close()
		return sub
	}
	h.subs[sub.id] = sub
	h.mu.Unlock()
	h.monitor.OnConnect(sub.id)
	h.log.Debug("subscriber connected", zap.Stringer("subscription", sub.id))
	return sub
}

func (h *Hot[T]) disconnect(sub *Subscription[T]) {
	h.mu.Lock()
	_, ok := h.subs[sub.id]
	delete(h.subs, sub.id)
	h.mu.Unlock()
	if ok {
		h.monitor.OnDisconnect(sub.id)
		h.log.Debug("subscriber disconnected",
			zap.Stringer("subscription", sub.id),
			zap.Int64("dropped", sub.dropped.Load()),
		)
	}
}

// Stop asks the worker to stop before pulling the next element. It does not
// wait; use Done or Wait for that. Connected subscribers receive what is
// already queued and then end.
//
// Stop is observed between pulls. A worker blocked inside the upstream, for
// example on FromChannel with nothing sent, only stops once that pull returns;
// close the channel or cancel the upstream to end it sooner.
func (h *Hot[T]) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		h.log.Debug("hot stream stop requested")
	})
}

// Done is closed once the worker has exited.
func (h *Hot[T]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the worker exits or ctx is done.
func (h *Hot[T]) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns why the worker ended: nil after upstream was exhausted, an
// error matching ErrHotStreamStopped after Stop, and a *PanicError if a
// callback panicked.
func (h *Hot[T]) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Published returns how many elements have been broadcast so far.
func (h *Hot[T]) Published() int64 {
	return h.published.Load()
}

func (h *Hot[T]) String() string {
	return fmt.Sprintf("Hot(%s)", h.id)
}

// Subscription is one subscriber of a hot stream.
type Subscription[T any] struct {
	id      uuid.UUID
	q       *queues.NotifyQueue[item[T]]
	hot     *Hot[T]
	dropped atomic.Int64
	once    sync.Once
}

func (s *Subscription[T]) ID() uuid.UUID { return s.id }

// Dropped counts the elements lost because this subscriber fell behind.
func (s *Subscription[T]) Dropped() int64 { return s.dropped.Load() }

// Seq returns the received elements. It blocks waiting for the publisher and
// ends when the stream finishes. Leaving the loop early closes the
// subscription.
func (s *Subscription[T]) Seq() Seq[T] {
	return s.SeqContext(context.Background())
}

// SeqContext is Seq that also ends when ctx is done.
func (s *Subscription[T]) SeqContext(ctx context.Context) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		defer s.Close()
		for {
			it, ok := s.q.DequeueOrWait(ctx)
			if !ok || !yield(it.v, it.err) {
				return
			}
		}
	})
}

// Close unsubscribes and discards anything still queued. The stream keeps running.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.q.Discard()
		s.hot.disconnect(s)
	})
}
