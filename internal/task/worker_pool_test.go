package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	logger := setupTestLogger()
	q, err := NewQueue[int](10, logger)
	require.NoError(t, err)

	pool := NewWorkerPool[int](q, WorkerPoolConfig{WorkerCount: 5}, logger)
	assert.Equal(t, 5, pool.WorkerCount())
	assert.Nil(t, pool.errorHandler)

	// invalid counts fall back to one worker
	pool = NewWorkerPool[int](q, WorkerPoolConfig{WorkerCount: 0}, logger)
	assert.Equal(t, 1, pool.WorkerCount())
	pool = NewWorkerPool[int](q, WorkerPoolConfig{WorkerCount: -5}, logger)
	assert.Equal(t, 1, pool.WorkerCount())

	assert.Equal(t, 4, DefaultWorkerPoolConfig().WorkerCount)
}

func TestWorkerPool_DrainsUntilClosed(t *testing.T) {
	logger := setupTestLogger()
	q, err := NewQueue[int](100, logger)
	require.NoError(t, err)

	var sum atomic.Int64
	seen := make([]atomic.Int64, 3)
	pool := NewWorkerPool[int](q, WorkerPoolConfig{WorkerCount: 3}, logger)
	pool.Start(context.Background(), func(_ context.Context, workerID int, item int) error {
		seen[workerID].Add(1)
		sum.Add(int64(item))
		return nil
	})

	for i := 1; i <= 100; i++ {
		require.NoError(t, q.Put(context.Background(), i))
	}
	q.Close()
	pool.Wait()

	assert.Equal(t, int64(5050), sum.Load())
	var total int64
	for i := range seen {
		total += seen[i].Load()
	}
	assert.Equal(t, int64(100), total)
}

func TestWorkerPool_ErrorAndPanic(t *testing.T) {
	logger := setupTestLogger()
	q, err := NewQueue[string](4, logger)
	require.NoError(t, err)

	expectedErr := errors.New("test error")
	errs := make(chan error, 2)

	pool := NewWorkerPool[string](q, WorkerPoolConfig{WorkerCount: 1}, logger)
	pool.SetErrorHandler(func(item string, err error) { errs <- err })
	pool.Start(context.Background(), func(_ context.Context, _ int, item string) error {
		if item == "panic" {
			panic("test panic")
		}
		return expectedErr
	})

	require.NoError(t, q.Enqueue("fail"))
	require.NoError(t, q.Enqueue("panic"))
	q.Close()
	pool.Wait()

	require.Len(t, errs, 2)
	assert.Equal(t, expectedErr, <-errs)
	assert.Contains(t, (<-errs).Error(), "test panic")
}

func TestWorkerPool_Stop(t *testing.T) {
	logger := setupTestLogger()
	q, err := NewQueue[int](10, logger)
	require.NoError(t, err)

	pool := NewWorkerPool[int](q, WorkerPoolConfig{WorkerCount: 2}, logger)
	pool.Start(context.Background(), func(context.Context, int, int) error { return nil })

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	q.Close()
}
