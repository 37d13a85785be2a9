package telegram

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQueueCollapsesRequests(t *testing.T) {
	q := newRenderQueue()
	release := make(chan struct{})
	var mu sync.Mutex
	renders := map[int64]int{}

	render := func(chatID int64) {
		mu.Lock()
		renders[chatID]++
		first := renders[chatID] == 1
		mu.Unlock()
		if chatID == 1 && first {
			<-release
		}
	}
	count := func(chatID int64) int {
		mu.Lock()
		defer mu.Unlock()
		return renders[chatID]
	}

	start := time.Now()
	q.request(1, render)
	require.Eventually(t, func() bool { return count(1) == 1 }, time.Second, time.Millisecond)

	for i := 0; i < 5; i++ {
		q.request(1, render)
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond, "request must not wait for a render")

	q.request(2, render)
	require.Eventually(t, func() bool { return count(2) == 1 }, time.Second, time.Millisecond,
		"another chat is not blocked by a slow render")

	close(release)
	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return len(q.chats) == 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, 2, count(1), "queued requests collapse into one render")
}

func TestRenderQueueNeverOverlapsOneChat(t *testing.T) {
	q := newRenderQueue()
	var active, maxActive, total atomic.Int32

	render := func(int64) {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
		total.Add(1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.request(7, render)
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return len(q.chats) == 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), maxActive.Load())
	assert.GreaterOrEqual(t, total.Load(), int32(1))
}
