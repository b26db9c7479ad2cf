// Package deque provides a blocking double-ended queue for producer/consumer pipelines.
package deque

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ef-ds/deque"
	"github.com/rs/zerolog"

	"github.com/onflow/concurrent-deque/module"
	"github.com/onflow/concurrent-deque/module/metrics"
)

// ConcurrentDeque is an unbounded double-ended queue shared by any number of
// producers and consumers. Producers insert at either end, consumers always remove
// the element at the front and block while the deque is empty.
//
// All access to the underlying sequence happens under a single mutex. Every push
// signals one waiting consumer while still holding that mutex, so a consumer that
// found the deque empty is guaranteed to be woken by the next push. Consumers
// re-check the sequence after every wakeup, which makes spurious wakeups and
// consumers racing for the same element harmless.
//
// Removed elements are handed to the caller by value; the slot they occupied is
// cleared, so the deque holds no reference to an element once it has been popped.
//
// Each time the deque's length changes, the LengthObserver and the metrics collector's
// DequeSize are called with the new length outside the critical section. Under concurrent
// pushes and pops these calls are not ordered, so an observer may briefly see an older
// length after a newer one. Len is the authoritative length. The
// waiting-consumer count is reported under the lock and is always ordered. The
// LengthObserver and the metrics collector must be non-blocking.
type ConcurrentDeque[T any] struct {
	mu      sync.Mutex
	signal  *sync.Cond // bound to mu
	queue   deque.Deque
	closed  bool
	waiting uint // consumers suspended on signal

	log            zerolog.Logger
	metrics        module.DequeMetrics
	lengthObserver LengthObserver
}

// NewConcurrentDeque creates an empty, open deque.
// No errors are expected during normal operations; an error is only returned for invalid options.
func NewConcurrentDeque[T any](options ...ConstructorOption) (*ConcurrentDeque[T], error) {
	cfg := config{
		log:            zerolog.Nop(),
		metrics:        metrics.NewNoopCollector(),
		lengthObserver: func(int) { /* noop */ },
	}
	for _, opt := range options {
		err := opt(&cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to apply constructor option to concurrent deque: %w", err)
		}
	}

	d := &ConcurrentDeque[T]{
		log:            cfg.log.With().Str("component", "concurrent_deque").Logger(),
		metrics:        cfg.metrics,
		lengthObserver: cfg.lengthObserver,
	}
	d.signal = sync.NewCond(&d.mu)
	return d, nil
}

// PushFront inserts the given element at the front of the deque and wakes one
// waiting consumer. Pushing never fails, also not after Close.
func (d *ConcurrentDeque[T]) PushFront(item T) {
	length := d.push(d.queue.PushFront, item)
	d.onPushed(metrics.EndFront, length)
}

// PushBack inserts the given element at the back of the deque and wakes one
// waiting consumer. Pushing never fails, also not after Close.
func (d *ConcurrentDeque[T]) PushBack(item T) {
	length := d.push(d.queue.PushBack, item)
	d.onPushed(metrics.EndBack, length)
}

func (d *ConcurrentDeque[T]) push(insert func(interface{}), item T) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	insert(item)
	d.signal.Signal()
	return d.queue.Len()
}

func (d *ConcurrentDeque[T]) onPushed(end string, length int) {
	d.lengthObserver(length)
	d.metrics.ElementPushed(end)
	d.metrics.DequeSize(uint(length))
}

// TryPop removes and returns the element at the front of the deque, blocking
// while the deque is empty. It returns false only once the deque has been closed
// and all remaining elements have been consumed; on an open deque it blocks until
// an element arrives.
func (d *ConcurrentDeque[T]) TryPop() (T, bool) {
	item, err := d.pop(context.Background())
	return item, err == nil
}

// PopContext removes and returns the element at the front of the deque, blocking
// while the deque is empty. A context that is done before an element could be
// removed never consumes one.
// Expected errors during normal operations:
//   - ErrClosed if the deque has been closed and holds no more elements
//   - the context's error if it was cancelled or its deadline expired
func (d *ConcurrentDeque[T]) PopContext(ctx context.Context) (T, error) {
	item, err := d.pop(ctx)
	if err != nil && ctx.Err() != nil {
		d.log.Debug().Err(err).Msg("pop abandoned before an element became available")
	}
	return item, err
}

func (d *ConcurrentDeque[T]) pop(ctx context.Context) (T, error) {
	if ctx.Done() != nil {
		// the broadcast has to happen under the lock, otherwise a cancellation
		// landing between the consumer's context check and its Wait would be lost
		stop := context.AfterFunc(ctx, func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.signal.Broadcast()
		})
		defer stop()
	}

	item, length, waited, err := d.awaitFront(ctx)
	if waited > 0 {
		d.metrics.ConsumerWaited(waited)
	}
	if err != nil {
		return item, err
	}

	d.lengthObserver(length)
	d.metrics.ElementPopped()
	d.metrics.DequeSize(uint(length))
	return item, nil
}

// awaitFront waits on the signal until the front element can be removed, the deque
// is closed and drained, or ctx is done. It returns the removed element together with
// the remaining length and the time spent suspended.
func (d *ConcurrentDeque[T]) awaitFront(ctx context.Context) (item T, length int, waited time.Duration, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var start time.Time
	defer func() {
		if !start.IsZero() {
			waited = time.Since(start)
		}
	}()

	for {
		err = ctx.Err()
		if err != nil {
			return item, 0, 0, err
		}
		if d.queue.Len() > 0 {
			break
		}
		if d.closed {
			return item, 0, 0, ErrClosed
		}

		if start.IsZero() {
			start = time.Now()
		}
		d.waiting++
		d.metrics.ConsumersWaiting(d.waiting)
		d.signal.Wait()
		d.waiting--
		d.metrics.ConsumersWaiting(d.waiting)
	}

	v, _ := d.queue.PopFront()
	// comma-ok, as a nil interface value pushed into a deque of interface type fails a plain assertion
	item, _ = v.(T)
	return item, d.queue.Len(), 0, nil
}

// Empty returns whether the deque currently holds no elements. The result is a
// snapshot and may be stale by the time it is observed; it must not be used to
// decide whether TryPop would block.
func (d *ConcurrentDeque[T]) Empty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.queue.Len() == 0
}

// Len returns the current length of the deque. Like Empty, it is a snapshot.
func (d *ConcurrentDeque[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.queue.Len()
}

// Close wakes every blocked consumer and stops consumers from blocking in the
// future. Elements still held, or pushed later, remain available to TryPop and
// PopContext until the deque is drained. Close is idempotent.
func (d *ConcurrentDeque[T]) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	remaining := d.queue.Len()
	waiting := d.waiting
	d.signal.Broadcast()
	d.mu.Unlock()

	d.log.Info().
		Int("remaining_elements", remaining).
		Uint("waiting_consumers", waiting).
		Msg("deque closed")
}

// IsClosed returns whether Close has been called.
func (d *ConcurrentDeque[T]) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.closed
}
