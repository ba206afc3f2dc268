package collections

// Stack is a LIFO stack.
type Stack[T any] struct {
	data []T
}

func (s *Stack[T]) Push(v T) { s.data = append(s.data, v) }

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.data) == 0 {
		return zero, ErrEmpty
	}
	v := s.data[len(s.data)-1]
	s.data[len(s.data)-1] = zero
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, error) {
	if len(s.data) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.data[len(s.data)-1], nil
}

func (s *Stack[T]) IsEmpty() bool { return len(s.data) == 0 }
func (s *Stack[T]) Len() int      { return len(s.data) }
func (s *Stack[T]) Clear()        { s.data = nil }

// Items returns a copy of the elements, bottom first.
func (s *Stack[T]) Items() []T {
	return append([]T(nil), s.data...)
}
