package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBST_Policies(t *testing.T) {
	t.Parallel()

	t.Run("ignore", func(t *testing.T) {
		bst, err := NewBST[int]("")
		require.NoError(t, err)
		for _, k := range []int{5, 3, 7, 1, 4, 6, 8, 4} {
			require.NoError(t, bst.Insert(k))
		}
		assert.True(t, bst.Search(4))
		assert.False(t, bst.Search(10))
		assert.Equal(t, []int{1, 3, 4, 5, 6, 7, 8}, bst.InOrder())
		assert.Equal(t, 7, bst.Len())
	})

	t.Run("count", func(t *testing.T) {
		bst, err := NewBST[int](DuplicateCount)
		require.NoError(t, err)
		for _, k := range []int{2, 2, 2, 1} {
			require.NoError(t, bst.Insert(k))
		}
		assert.Equal(t, []KeyCount[int]{{Key: 1, Count: 1}, {Key: 2, Count: 3}}, bst.InOrderWithCounts())
	})

	t.Run("error", func(t *testing.T) {
		bst, err := NewBST[string](DuplicateError)
		require.NoError(t, err)
		require.NoError(t, bst.Insert("b"))
		assert.ErrorIs(t, bst.Insert("b"), ErrDuplicateKey)
		assert.Equal(t, []string{"b"}, bst.InOrder())
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := NewBST[int]("merge")
		assert.ErrorIs(t, err, ErrUnknownPolicy)
	})
}

func TestStack(t *testing.T) {
	t.Parallel()

	var st Stack[int]
	assert.True(t, st.IsEmpty())
	_, err := st.Pop()
	assert.ErrorIs(t, err, ErrEmpty)

	st.Push(1)
	st.Push(2)
	assert.Equal(t, []int{1, 2}, st.Items())
	top, err := st.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, top)
	v, err := st.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, st.Len())

	st.Clear()
	assert.True(t, st.IsEmpty())
}

func TestQueue(t *testing.T) {
	t.Parallel()

	var q Queue[string]
	_, err := q.Peek()
	assert.ErrorIs(t, err, ErrEmpty)

	q.Enqueue("a")
	q.Enqueue("b")
	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	front, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "b", front)
	assert.Equal(t, 1, q.Len())
}

func TestLinkedList(t *testing.T) {
	t.Parallel()

	var ll LinkedList[int]
	ll.InsertTail(1)
	ll.InsertTail(2)
	ll.InsertHead(0)
	assert.Equal(t, []int{0, 1, 2}, ll.Values())
	assert.Equal(t, 3, ll.Len())

	assert.True(t, ll.DeleteValue(1))
	assert.Equal(t, []int{0, 2}, ll.Values())
	assert.False(t, ll.DeleteValue(42))

	assert.True(t, ll.DeleteValue(2))
	ll.InsertTail(9)
	assert.Equal(t, []int{0, 9}, ll.Values())
}
