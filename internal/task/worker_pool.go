package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Handler processes one item. workerID identifies the calling worker in
// [0, WorkerCount), so handlers can keep per-worker state without locking.
type Handler[T any] func(ctx context.Context, workerID int, item T) error

// WorkerPool runs a fixed number of goroutines that drain a queue.
type WorkerPool[T any] struct {
	// queue provides read access to the items to be processed
	queue QueueReader[T]

	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// cancel stops the workers; set by Start
	cancel context.CancelFunc

	logger *slog.Logger

	// errorHandler is called when a handler fails or panics.
	// If nil, errors are only logged.
	errorHandler func(item T, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, defaults to 1.
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 4,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool[T any](queue QueueReader[T], config WorkerPoolConfig, logger *slog.Logger) *WorkerPool[T] {
	if logger == nil {
		logger = slog.Default()
	}
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	return &WorkerPool[T]{
		queue:       queue,
		workerCount: workerCount,
		logger:      logger,
	}
}

// SetErrorHandler sets a callback for failed items. It must be called before Start.
func (p *WorkerPool[T]) SetErrorHandler(handler func(item T, err error)) {
	p.errorHandler = handler
}

// WorkerCount is the number of workers Start launches.
func (p *WorkerPool[T]) WorkerCount() int { return p.workerCount }

// Start launches the workers. They run until the queue is closed and
// drained, or until ctx is cancelled or Stop is called.
func (p *WorkerPool[T]) Start(ctx context.Context, handle Handler[T]) {
	ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i, handle)
	}
	p.logger.Debug("worker pool started", slog.Int("worker_count", p.workerCount))
}

// Wait blocks until every worker has exited.
func (p *WorkerPool[T]) Wait() {
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
}

// Stop cancels the workers and waits for them to exit. Items still queued
// are not processed.
func (p *WorkerPool[T]) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *WorkerPool[T]) worker(ctx context.Context, id int, handle Handler[T]) {
	defer p.wg.Done()

	logger := p.logger.With(slog.Int("worker_id", id))
	logger.Debug("starting worker")

	items := p.queue.Channel()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("stopping worker")
			return

		case item, ok := <-items:
			if !ok {
				logger.Debug("task queue closed, stopping worker")
				return
			}
			p.process(ctx, logger, id, item, handle)
		}
	}
}

// process runs one item, turning a panic into an error.
func (p *WorkerPool[T]) process(ctx context.Context, logger *slog.Logger, id int, item T, handle Handler[T]) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		err = handle(ctx, id, item)
	}()

	if err == nil {
		return
	}
	logger.Error("task execution failed", slog.String("error", err.Error()))
	if p.errorHandler != nil {
		p.errorHandler(item, err)
	}
}
