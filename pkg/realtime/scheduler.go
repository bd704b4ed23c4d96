package realtime

import (
	"context"
	"sync"
	"time"
)

// Task is a running repeating job.
type Task interface {
	// Cancel stops the task. It is safe to call more than once and from
	// inside the task's own callback.
	Cancel()
	// Done is closed once the callback can no longer be invoked.
	Done() <-chan struct{}
}

// Scheduler starts repeating tasks.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// Every starts fn every interval until the returned task is cancelled.
func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	t := &tickerTask{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A cancel racing with the tick wins.
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()
	return t
}

type tickerTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (t *tickerTask) Cancel() { t.cancel() }

func (t *tickerTask) Done() <-chan struct{} { return t.done }

// ManualScheduler delivers ticks only when Fire is called. Tests use it to
// drive countdowns deterministically.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

// NewManualScheduler creates a scheduler with no tasks.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every registers fn; it runs once per Fire until cancelled.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	t := &manualTask{fn: fn, interval: interval, done: make(chan struct{})}
	m.mu.Lock()
	m.tasks = append(m.tasks, t)
	m.mu.Unlock()
	return t
}

// Fire delivers one tick to every live task and returns how many ran.
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	live := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.cancelled() {
			live = append(live, t)
		}
	}
	m.tasks = live
	m.mu.Unlock()

	fired := 0
	for _, t := range live {
		if t.cancelled() {
			continue
		}
		t.fn()
		fired++
	}
	return fired
}

// FireN calls Fire n times and returns the total number of callbacks run.
func (m *ManualScheduler) FireN(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += m.Fire()
	}
	return total
}

// Live returns the number of tasks that have not been cancelled.
func (m *ManualScheduler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled() {
			n++
		}
	}
	return n
}

type manualTask struct {
	fn       func()
	interval time.Duration
	once     sync.Once
	done     chan struct{}
}

func (t *manualTask) Cancel() {
	t.once.Do(func() { close(t.done) })
}

func (t *manualTask) Done() <-chan struct{} { return t.done }

func (t *manualTask) cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
