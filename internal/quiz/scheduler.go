package quiz

import (
	"sync"
	"time"
)

// Task is a scheduled callback that can be cancelled.
type Task interface {
	// Stop cancels the task. It reports whether the call stopped a pending run.
	Stop() bool
}

// Scheduler creates cancellable scheduled tasks.
type Scheduler interface {
	// Every runs fn every d until the task is stopped.
	Every(d time.Duration, fn func()) Task
	// After runs fn once after d unless the task is stopped first.
	After(d time.Duration, fn func()) Task
}

// ClockScheduler schedules tasks on the wall clock.
type ClockScheduler struct{}

// NewClockScheduler returns a Scheduler backed by time.Ticker and time.AfterFunc.
func NewClockScheduler() ClockScheduler {
	return ClockScheduler{}
}

// Every implements Scheduler.
func (ClockScheduler) Every(d time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				// A tick buffered before Stop must not run after it.
				select {
				case <-t.done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

// After implements Scheduler.
func (ClockScheduler) After(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
