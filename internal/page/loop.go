package page

import "sync"

// Loop serialises page callbacks. Network work runs on its own goroutine,
// but whatever it hands back only ever runs inside Flush, on the caller's
// goroutine, so handlers never race each other over the document.
type Loop struct {
	mu       sync.Mutex
	queue    []func()
	inflight sync.WaitGroup
}

func NewLoop() *Loop {
	return &Loop{}
}

// Go runs work off the loop. A non-nil func returned by work is queued and
// later run by Flush. Go must be called from the loop goroutine.
func (l *Loop) Go(work func() func()) {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		if cb := work(); cb != nil {
			l.Post(cb)
		}
	}()
}

// Post queues cb to run on the loop.
func (l *Loop) Post(cb func()) {
	if cb == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, cb)
	l.mu.Unlock()
}

// Flush waits for in-flight work and runs queued callbacks, repeating until
// nothing is left. Callbacks may start more work; Flush picks that up too.
func (l *Loop) Flush() {
	for {
		l.inflight.Wait()

		l.mu.Lock()
		q := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(q) == 0 {
			return
		}
		for _, cb := range q {
			cb()
		}
	}
}

// Pending returns the number of queued, not yet run callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}
