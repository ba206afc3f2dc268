package collections

type listNode[T comparable] struct {
	value T
	next  *listNode[T]
}

// LinkedList is a singly linked list with head and tail pointers.
type LinkedList[T comparable] struct {
	head, tail *listNode[T]
	size       int
}

// InsertHead prepends a value.
func (l *LinkedList[T]) InsertHead(v T) {
	n := &listNode[T]{value: v, next: l.head}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// InsertTail appends a value.
func (l *LinkedList[T]) InsertTail(v T) {
	n := &listNode[T]{value: v}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

// DeleteValue removes the first node holding v and reports whether one was found.
func (l *LinkedList[T]) DeleteValue(v T) bool {
	var prev *listNode[T]
	for cur := l.head; cur != nil; prev, cur = cur, cur.next {
		if cur.value != v {
			continue
		}
		if prev == nil {
			l.head = cur.next
		} else {
			prev.next = cur.next
		}
		if cur == l.tail {
			l.tail = prev
		}
		l.size--
		return true
	}
	return false
}

// Values returns the values from head to tail.
func (l *LinkedList[T]) Values() []T {
	out := make([]T, 0, l.size)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.value)
	}
	return out
}

func (l *LinkedList[T]) Len() int { return l.size }
