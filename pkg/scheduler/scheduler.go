package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Handle is a pending scheduled callback.
type Handle interface {
	// Cancel prevents the callback from running. It returns false if the
	// callback has already run or been canceled.
	Cancel() bool
}

type Scheduler interface {
	Schedule(after time.Duration, fn func()) Handle
}

type timerScheduler struct{}

// New returns a scheduler backed by runtime timers. Callbacks run on their own
// goroutine.
func New() *timerScheduler {
	return &timerScheduler{}
}

func (timerScheduler) Schedule(after time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(after, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Cancel() bool {
	return h.timer.Stop()
}

// Manual is a deterministic scheduler driven by Advance. Callbacks run on the
// goroutine calling Advance, ordered by due time then by schedule order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualHandle
}

func NewManual() *Manual {
	return &Manual{}
}

type manualHandle struct {
	m        *Manual
	due      time.Duration
	seq      uint64
	fn       func()
	finished bool
}

func (h *manualHandle) Cancel() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()

	if h.finished {
		return false
	}

	h.finished = true
	return true
}

func (m *Manual) Schedule(after time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if after < 0 {
		after = 0
	}

	m.seq++
	h := &manualHandle{m: m, due: m.now + after, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, h)
	return h
}

// Pending returns the number of callbacks not yet run nor canceled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.finished {
			n++
		}
	}
	return n
}

// Advance moves the clock forward and runs every callback becoming due,
// including the ones scheduled by callbacks during this call.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		h := m.popDue(target)
		if h == nil {
			break
		}

		h.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) popDue(target time.Duration) *manualHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.finished {
			live = append(live, t)
		}
	}
	m.tasks = live

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})

	if len(m.tasks) == 0 || m.tasks[0].due > target {
		return nil
	}

	h := m.tasks[0]
	h.finished = true
	if h.due > m.now {
		m.now = h.due
	}
	return h
}
