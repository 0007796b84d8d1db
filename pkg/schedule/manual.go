package schedule

import (
	"sync"
	"time"
)

// maxFlush bounds the number of tasks a single Flush or Advance call runs, so
// a task that keeps rescheduling itself at zero delay cannot hang a test.
const maxFlush = 100000

// Manual is a scheduler with a virtual clock. Nothing runs until Flush or
// Advance is called; tasks then run synchronously on the caller's goroutine
// in (due time, scheduling order) order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// NewManual returns a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule registers fn to run once the virtual clock reaches now+delay.
func (m *Manual) Schedule(delay time.Duration, fn func()) func() {
	if delay < 0 {
		delay = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{due: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return func() {
		m.mu.Lock()
		t.cancelled = true
		m.mu.Unlock()
	}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of tasks that are scheduled and not cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Flush runs every task that is due at the current virtual time, including
// tasks those tasks schedule with zero delay. It returns the number of tasks
// run.
func (m *Manual) Flush() int {
	return m.runUntil(m.Now())
}

// Advance moves the virtual clock forward by d, running due tasks in order as
// the clock passes them. It returns the number of tasks run.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	return m.runUntil(target)
}

func (m *Manual) runUntil(target time.Duration) int {
	ran := 0
	for ran < maxFlush {
		t := m.next(target)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}
	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()
	return ran
}

// next removes and returns the earliest live task due at or before target,
// advancing the clock to its due time.
func (m *Manual) next(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	best := -1
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live

	for i, t := range m.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < m.tasks[best].due || (t.due == m.tasks[best].due && t.seq < m.tasks[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := m.tasks[best]
	m.tasks = append(m.tasks[:best], m.tasks[best+1:]...)
	if t.due > m.now {
		m.now = t.due
	}
	return t
}
