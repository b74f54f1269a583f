package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedQueueFIFOSingleProducerConsumer(t *testing.T) {
	q := NewBoundedQueue[int](4)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			require.True(t, q.Push(i))
		}
		q.Close()
	}()

	var got []int
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	<-done

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v, "pop %d out of order", i)
	}
}

func TestBoundedQueuePushFailsAfterClose(t *testing.T) {
	q := NewBoundedQueue[int](2)
	q.Close()
	assert.False(t, q.Push(1))
}

func TestBoundedQueueCloseIsIdempotent(t *testing.T) {
	q := NewBoundedQueue[int](2)
	q.Close()
	q.Close() // must not panic or block
}

func TestBoundedQueueDrainsBeforeReportingClosed(t *testing.T) {
	q := NewBoundedQueue[int](4)
	require.True(t, q.Push(1))
	require.True(t, q.Push(2))
	q.Close()

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Pop()
	assert.False(t, ok)
}
