package tview

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs periodic callbacks on the UI event loop. Ticks are never
// delivered concurrently with input handling.
type Scheduler interface {
	// Every calls tick every interval until the returned timer is cancelled.
	Every(interval time.Duration, tick func()) Timer
}

// Timer is a handle to a periodic callback. Cancel is synchronous: once it
// returns, tick is not called again, even if a tick was already queued.
type Timer interface {
	Cancel()
}

// loopTimer posts ticks into an event loop's update queue from a ticker
// goroutine. The cancelled flag is checked on the loop itself, so a tick that
// was queued before Cancel is dropped.
type loopTimer struct {
	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

func startLoopTimer(interval time.Duration, post func(f func(), stop <-chan struct{}) bool, tick func()) *loopTimer {
	t := &loopTimer{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				if !post(t.fire(tick), t.stop) {
					return
				}
			}
		}
	}()
	return t
}

func (t *loopTimer) fire(tick func()) func() {
	return func() {
		if t.cancelled.Load() {
			return
		}
		tick()
	}
}

func (t *loopTimer) Cancel() {
	t.cancelled.Store(true)
	t.once.Do(func() { close(t.stop) })
}
