package reveal

import (
	"sync"
	"time"
)

// Clock schedules periodic callbacks. Callbacks for one schedule never
// overlap and run in order.
type Clock interface {
	Every(d time.Duration, fn func()) (stop func())
}

// SystemClock runs each schedule on its own goroutine driven by a
// time.Ticker. Stop may be called from inside the callback.
type SystemClock struct{}

// Every implements Clock.
func (SystemClock) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		d = time.Millisecond
	}
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// ManualClock fires schedules only when advanced. It is deterministic and
// runs callbacks on the goroutine calling Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers map[uint64]*manualTimer
}

type manualTimer struct {
	every time.Duration
	next  time.Duration
	fn    func()
}

// NewManualClock returns a clock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{timers: make(map[uint64]*manualTimer)}
}

// Every implements Clock.
func (c *ManualClock) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		d = time.Millisecond
	}
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.timers[id] = &manualTimer{every: d, next: c.now + d, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()
	}
}

// Active reports the number of running schedules.
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves time forward by d, firing every due callback in time
// order. Callbacks stopped during the advance do not fire again.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due *manualTimer
		for _, id := range sortedKeys(c.timers) {
			t := c.timers[id]
			if t.next <= end && (due == nil || t.next < due.next) {
				due = t
			}
		}
		if due == nil {
			c.now = end
			c.mu.Unlock()
			return
		}
		c.now = due.next
		due.next += due.every
		fn := due.fn
		c.mu.Unlock()

		fn()
	}
}
