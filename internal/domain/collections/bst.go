// Package collections holds small generic containers.
package collections

import (
	"cmp"
	"errors"
	"fmt"
)

// DuplicatePolicy decides what Insert does with a key already in the tree.
type DuplicatePolicy string

const (
	DuplicateIgnore DuplicatePolicy = "ignore"
	DuplicateError  DuplicatePolicy = "error"
	DuplicateCount  DuplicatePolicy = "count"
)

var (
	// ErrDuplicateKey is returned by Insert under DuplicateError.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownPolicy is returned for a policy other than ignore, error or count.
	ErrUnknownPolicy = errors.New("on_duplicate must be 'ignore', 'error', or 'count'")
	// ErrEmpty is returned when reading from an empty stack or queue.
	ErrEmpty = errors.New("collection is empty")
)

// ParseDuplicatePolicy accepts "", "ignore", "error" and "count".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case "":
		return DuplicateIgnore, nil
	case DuplicateIgnore, DuplicateError, DuplicateCount:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

type bstNode[K cmp.Ordered] struct {
	key         K
	count       int
	left, right *bstNode[K]
}

// KeyCount pairs a key with the number of times it was inserted.
type KeyCount[K cmp.Ordered] struct {
	Key   K
	Count int
}

// BST is an unbalanced binary search tree.
type BST[K cmp.Ordered] struct {
	root   *bstNode[K]
	policy DuplicatePolicy
	size   int
}

// NewBST returns an empty tree using the given duplicate policy.
func NewBST[K cmp.Ordered](policy DuplicatePolicy) (*BST[K], error) {
	p, err := ParseDuplicatePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	return &BST[K]{policy: p}, nil
}

// Insert adds key, applying the duplicate policy if it is already present.
func (t *BST[K]) Insert(key K) error {
	link := &t.root
	for *link != nil {
		n := *link
		switch c := cmp.Compare(key, n.key); {
		case c < 0:
			link = &n.left
		case c > 0:
			link = &n.right
		default:
			switch t.policy {
			case DuplicateError:
				return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
			case DuplicateCount:
				n.count++
			}
			return nil
		}
	}
	*link = &bstNode[K]{key: key, count: 1}
	t.size++
	return nil
}

// Search reports whether key is in the tree.
func (t *BST[K]) Search(key K) bool {
	n := t.root
	for n != nil {
		switch c := cmp.Compare(key, n.key); {
		case c == 0:
			return true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return false
}

// Len is the number of distinct keys.
func (t *BST[K]) Len() int { return t.size }

// InOrder returns the keys in ascending order.
func (t *BST[K]) InOrder() []K {
	out := make([]K, 0, t.size)
	walk(t.root, func(n *bstNode[K]) { out = append(out, n.key) })
	return out
}

// InOrderWithCounts returns the keys in ascending order with their counts.
func (t *BST[K]) InOrderWithCounts() []KeyCount[K] {
	out := make([]KeyCount[K], 0, t.size)
	walk(t.root, func(n *bstNode[K]) { out = append(out, KeyCount[K]{Key: n.key, Count: n.count}) })
	return out
}

func walk[K cmp.Ordered](n *bstNode[K], visit func(*bstNode[K])) {
	if n == nil {
		return
	}
	walk(n.left, visit)
	visit(n)
	walk(n.right, visit)
}
