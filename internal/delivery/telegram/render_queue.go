package telegram

import "sync"

// renderQueue serializes quiz message renders per chat without blocking the caller.
// Requests that arrive while a chat is rendering collapse into one more render.
type renderQueue struct {
	mu    sync.Mutex
	chats map[int64]bool // chat is rendering; true when another render was requested meanwhile
}

func newRenderQueue() *renderQueue {
	return &renderQueue{chats: make(map[int64]bool)}
}

// request schedules render(chatID). Renders of one chat never overlap; different chats
// render in parallel.
func (q *renderQueue) request(chatID int64, render func(chatID int64)) {
	q.mu.Lock()
	if _, running := q.chats[chatID]; running {
		q.chats[chatID] = true
		q.mu.Unlock()
		return
	}
	q.chats[chatID] = false
	q.mu.Unlock()

	go func() {
		for {
			render(chatID)

			q.mu.Lock()
			if !q.chats[chatID] {
				delete(q.chats, chatID)
				q.mu.Unlock()
				return
			}
			q.chats[chatID] = false
			q.mu.Unlock()
		}
	}()
}
