package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the Queue
var (
	ErrQueueClosed  = errors.New("task queue is closed")
	ErrQueueFull    = errors.New("task queue is full")
	ErrInvalidSize  = errors.New("queue size must be positive")
	ErrInvalidCount = errors.New("worker count must be positive")
)

// QueueReader provides read-only access to queued items, so workers can
// consume without being able to enqueue.
type QueueReader[T any] interface {
	Channel() <-chan T
}

// Queue is a bounded FIFO backed by a buffered channel. Closing it is the
// end-of-input signal for every consumer: once the buffer drains, each
// receive on Channel reports the channel as closed.
type Queue[T any] struct {
	items  chan T
	logger *slog.Logger

	// mu guards closed; senders hold it shared so Close cannot close the
	// channel underneath them.
	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue that holds at most size items.
func NewQueue[T any](size int, logger *slog.Logger) (*Queue[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue[T]{
		items:  make(chan T, size),
		logger: logger,
	}, nil
}

// Enqueue adds an item without blocking. It returns ErrQueueFull when the
// buffer is full and ErrQueueClosed after Close.
func (q *Queue[T]) Enqueue(item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- item:
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.items))
	}
}

// Put adds an item, blocking while the queue is full. It returns ctx.Err()
// if ctx ends first.
func (q *Queue[T]) Put(ctx context.Context, item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close prevents further submissions. Items already queued remain readable.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.items)
		q.logger.Debug("task queue closed", slog.Int("remaining", len(q.items)))
	}
}

// Channel returns a read-only channel for consuming items.
func (q *Queue[T]) Channel() <-chan T {
	return q.items
}

// Len is the number of buffered items.
func (q *Queue[T]) Len() int { return len(q.items) }

// Cap is the queue capacity.
func (q *Queue[T]) Cap() int { return cap(q.items) }
