package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueue(t *testing.T) {
	q, err := NewQueue[int](10, setupTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 10, q.Cap())
	assert.Equal(t, 0, q.Len())

	_, err = NewQueue[int](0, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestQueue_Enqueue(t *testing.T) {
	q, err := NewQueue[string](2, setupTestLogger())
	require.NoError(t, err)

	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)
	assert.Equal(t, 2, q.Len())

	q.Close()
	q.Close()
	assert.ErrorIs(t, q.Enqueue("d"), ErrQueueClosed)

	var got []string
	for item := range q.Channel() {
		got = append(got, item)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestQueue_PutBlocksUntilSpace(t *testing.T) {
	q, err := NewQueue[int](1, setupTestLogger())
	require.NoError(t, err)
	require.NoError(t, q.Put(context.Background(), 1))

	done := make(chan error, 1)
	go func() { done <- q.Put(context.Background(), 2) }()

	select {
	case <-done:
		t.Fatal("Put returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, 1, <-q.Channel())
	require.NoError(t, <-done)
	assert.Equal(t, 2, <-q.Channel())
	q.Close()
}

func TestQueue_PutHonorsContext(t *testing.T) {
	q, err := NewQueue[int](1, setupTestLogger())
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Put(ctx, 2), context.DeadlineExceeded)

	q.Close()
	assert.ErrorIs(t, q.Put(context.Background(), 3), ErrQueueClosed)
}
