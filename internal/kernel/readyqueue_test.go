package kernel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueuePushPopOrder(t *testing.T) {
	q := newReadyQueue()

	a1 := &actor{name: "1"}
	a2 := &actor{name: "2"}
	q.push(a1)
	q.push(a2)

	got, ok := q.pop()
	require.True(t, ok)
	assert.Same(t, a1, got)

	got, ok = q.pop()
	require.True(t, ok)
	assert.Same(t, a2, got)

	_, ok = q.pop()
	assert.False(t, ok)
}

func TestReadyQueueConcurrentPopClaimsExactlyOnce(t *testing.T) {
	q := newReadyQueue()

	const n = 500
	for i := 0; i < n; i++ {
		q.push(&actor{})
	}

	var mu sync.Mutex
	claimed := 0

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, ok := q.pop()
				if !ok {
					return
				}
				mu.Lock()
				claimed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n, claimed)
}

func TestReadyQueueLen(t *testing.T) {
	q := newReadyQueue()
	assert.Equal(t, 0, q.len())

	q.push(&actor{})
	q.push(&actor{})
	assert.Equal(t, 2, q.len())

	q.pop()
	assert.Equal(t, 1, q.len())
}
