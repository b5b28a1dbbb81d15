// Package loop provides a single-goroutine cooperative task queue.
//
// A [Loop] runs every task on the goroutine that drives it ([Loop.Run] or
// [Loop.Drain]), so state owned by those tasks needs no locking. It offers
// three ways to schedule work:
//
//   - [Loop.Post] defers a task to the next tick, after everything already queued.
//     Several Posts issued from one task therefore run back to back, after it.
//   - [Loop.AfterFunc] schedules a task on the loop's [Clock].
//   - [Loop.Go] runs work on its own goroutine and posts the continuation it
//     returns back onto the loop.
//
// With a [VirtualClock] a drained loop never sleeps, which makes timer-driven
// code (animations) deterministic in tests and in headless rendering.
//
//	l := loop.New(loop.WithClock(loop.NewVirtualClock(time.Unix(0, 0))))
//	l.Post(func() { fmt.Println("tick") })
//	_ = l.Drain(ctx)
package loop

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Loop is a cooperative task queue. Post, AfterFunc, Go and Call are safe
// for concurrent use; Run and Drain must only be driven by one goroutine at
// a time.
type Loop struct {
	clock Clock

	mu     sync.Mutex
	tasks  []func()
	timers timerHeap
	seq    uint64
	busy   int // Go work in flight
	wake   chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the loop's clock. Defaults to [System].
func WithClock(c Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		clock: System,
		wake:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Clock returns the loop's clock.
func (l *Loop) Clock() Clock {
	return l.clock
}

// Post queues fn to run on the next tick.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// AfterFunc schedules fn to run on the loop once d has elapsed on the loop clock.
// Timers due at the same instant fire in scheduling order.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	l.mu.Lock()
	l.seq++
	t := &Timer{
		loop:  l,
		due:   l.clock.Now().Add(max(d, 0)),
		seq:   l.seq,
		fn:    fn,
		index: -1,
	}
	heap.Push(&l.timers, t)
	l.mu.Unlock()
	l.signal()
	return t
}

// Go runs work on a new goroutine. The function work returns, if non-nil,
// is posted back onto the loop. Drain waits for outstanding work.
func (l *Loop) Go(work func() func()) {
	l.mu.Lock()
	l.busy++
	l.mu.Unlock()

	go func() {
		cont := work()
		l.mu.Lock()
		l.busy--
		if cont != nil {
			l.tasks = append(l.tasks, cont)
		}
		l.mu.Unlock()
		l.signal()
	}()
}

// Call posts fn and blocks until it has run on the loop or ctx is done.
// It must not be called from a loop task.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks until ctx is done and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	return l.run(ctx, false)
}

// Drain processes tasks until no task, timer or Go work remains.
// With a [VirtualClock] pending timers are fast-forwarded instead of awaited.
func (l *Loop) Drain(ctx context.Context) error {
	return l.run(ctx, true)
}

// Idle reports whether nothing is queued, scheduled or in flight.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) == 0 && len(l.timers) == 0 && l.busy == 0
}

func (l *Loop) run(ctx context.Context, untilIdle bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fn := l.next(); fn != nil {
			fn()
			continue
		}

		l.mu.Lock()
		hasTimer := len(l.timers) > 0
		var due time.Time
		if hasTimer {
			due = l.timers[0].due
		}
		busy := l.busy
		l.mu.Unlock()

		if untilIdle && !hasTimer && busy == 0 {
			return nil
		}
		if hasTimer && busy == 0 {
			if vc, ok := l.clock.(*VirtualClock); ok {
				vc.advanceTo(due)
				continue
			}
		}
		l.wait(ctx, hasTimer, due)
	}
}

// next pops the next runnable task: queued tasks first, then due timers.
func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) > 0 {
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		return fn
	}
	if len(l.timers) > 0 && !l.timers[0].due.After(l.clock.Now()) {
		t := heap.Pop(&l.timers).(*Timer)
		return t.fn
	}
	return nil
}

func (l *Loop) wait(ctx context.Context, hasTimer bool, due time.Time) {
	var timeout <-chan time.Time
	if _, virtual := l.clock.(*VirtualClock); hasTimer && !virtual {
		t := time.NewTimer(due.Sub(l.clock.Now()))
		defer t.Stop()
		timeout = t.C
	}
	select {
	case <-ctx.Done():
	case <-l.wake:
	case <-timeout:
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Timer is a task scheduled with [Loop.AfterFunc].
type Timer struct {
	loop  *Loop
	due   time.Time
	seq   uint64
	fn    func()
	index int // position in the heap, -1 once fired or stopped
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	l := t.loop
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.index < 0 {
		return false
	}
	heap.Remove(&l.timers, t.index)
	return true
}

// timerHeap orders timers by due time, then by scheduling order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
