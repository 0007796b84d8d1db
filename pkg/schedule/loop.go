package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop executes scheduled tasks one at a time on a dedicated goroutine.
// Tasks scheduled with the same delay run in the order they were scheduled.
// Loop is safe for concurrent use.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	quit   chan struct{}
	done   chan struct{}
	closed sync.Once
}

// NewLoop starts a loop goroutine. Call Close to stop it.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Schedule runs fn on the loop after delay. A delay of zero or less queues fn
// behind the tasks already waiting. The returned function cancels fn if it
// has not started yet.
func (l *Loop) Schedule(delay time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	task := func() {
		if !cancelled.Load() {
			fn()
		}
	}
	if delay <= 0 {
		l.post(task)
		return func() { cancelled.Store(true) }
	}
	t := time.AfterFunc(delay, func() { l.post(task) })
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

// Post queues fn to run on the loop as soon as possible.
func (l *Loop) Post(fn func()) {
	l.post(fn)
}

// Do runs fn on the loop and waits for it to return. It returns false without
// running fn when the loop is already closed.
func (l *Loop) Do(fn func()) bool {
	ran := make(chan struct{})
	l.post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Stop tells the loop to exit after the task it is running, without waiting.
// Tasks still queued are dropped. Stop may be called from inside a task.
func (l *Loop) Stop() {
	l.closed.Do(func() { close(l.quit) })
}

// Close stops the loop and waits for it to exit. It must not be called from
// inside a task.
func (l *Loop) Close() {
	l.Stop()
	<-l.done
}

func (l *Loop) post(fn func()) {
	select {
	case <-l.quit:
		return
	default:
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}
		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			select {
			case <-l.quit:
				return
			default:
			}
			fn()
		}
	}
}
