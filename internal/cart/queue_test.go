package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsJobsInOrder(t *testing.T) {
	q := NewQueue(8)

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		require.NoError(t, q.Enqueue(func() {
			defer wg.Done()
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	wg.Wait()
	q.Close()

	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestQueueCloseDrainsPendingJobs(t *testing.T) {
	q := NewQueue(8)

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		}))
	}

	q.Close()
	assert.Equal(t, 5, ran)
}

func TestQueueRejectsAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	assert.ErrorIs(t, q.Enqueue(func() {}), errQueueClosed)
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	q.Close()
}
