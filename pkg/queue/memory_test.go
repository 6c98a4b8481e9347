package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue[string](2)

	require.NoError(t, q.Enqueue("up"))
	require.NoError(t, q.Enqueue("left"))
	assert.ErrorIs(t, q.Enqueue("down"), ErrQueueFull)
	assert.Equal(t, 2, q.Size())

	item, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "up", item)

	messages, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []string{"left"}, messages)

	_, ok = q.Dequeue()
	assert.False(t, ok)

	messages, err = q.ReadAllMessages()
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestInMemoryQueue_Clear(t *testing.T) {
	q := NewInMemoryQueue[int](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	q.ClearQueue()
	assert.Equal(t, 0, q.Size())
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	q := NewInMemoryQueue[int](100)
	wg := &sync.WaitGroup{}
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				assert.NoError(t, q.Enqueue(p*25+i))
			}
		}(p)
	}
	wg.Wait()

	messages, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Len(t, messages, 100)
}
