package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[string](2)
	assert.True(t, rq.IsEmpty())

	_, err := rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = rq.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	require.NoError(t, rq.Enqueue("a"))
	require.NoError(t, rq.Enqueue("b"))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue("c"), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// wraps around the backing slice
	require.NoError(t, rq.Enqueue("c"))
	assert.Equal(t, 2, rq.Len())
	v, _ = rq.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = rq.Dequeue()
	assert.Equal(t, "c", v)
}

func TestRingQueuePushDropsOldest(t *testing.T) {
	rq := NewRingQueue[int](3)
	for i := 1; i <= 5; i++ {
		rq.Push(i)
	}
	var got []int
	for !rq.IsEmpty() {
		v, _ := rq.Dequeue()
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 4, 5}, got)

	empty := NewRingQueue[int](0)
	empty.Push(1)
	assert.True(t, empty.IsEmpty())
}
