package collections

// Queue is a FIFO queue.
type Queue[T any] struct {
	data []T
}

func (q *Queue[T]) Enqueue(v T) { q.data = append(q.data, v) }

// Dequeue removes and returns the front element.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if len(q.data) == 0 {
		return zero, ErrEmpty
	}
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v, nil
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if len(q.data) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.data[0], nil
}

func (q *Queue[T]) IsEmpty() bool { return len(q.data) == 0 }
func (q *Queue[T]) Len() int      { return len(q.data) }
