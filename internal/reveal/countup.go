package reveal

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultCountUpDuration is used when a count-up is given no duration.
	DefaultCountUpDuration = 2 * time.Second
	// CountUpTick is the count-up timer period, roughly 60 steps a second.
	CountUpTick = 16 * time.Millisecond

	countUpThreshold = 0.5
)

// CountUp acquires a handle whose displayed number climbs from 0 to target
// once its element is half visible. It never repeats.
func (c *Controller) CountUp(target int, duration time.Duration) (*CountUpHandle, error) {
	if target < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeTarget, target)
	}
	if duration <= 0 {
		duration = DefaultCountUpDuration
	}
	h := &CountUpHandle{id: uuid.New(), ctrl: c, target: target, duration: duration}
	if err := c.register(h.id, h); err != nil {
		return nil, err
	}
	return h, nil
}

// CountUpHandle animates a number from 0 to its target.
type CountUpHandle struct {
	id       uuid.UUID
	ctrl     *Controller
	target   int
	duration time.Duration

	mu        sync.Mutex
	state     State
	acc       float64
	step      float64
	value     int
	done      bool
	cancelObs func()
	stopTimer func()
}

// Attach starts observing el.
func (h *CountUpHandle) Attach(el Element) error {
	h.mu.Lock()
	switch h.state {
	case Released:
		h.mu.Unlock()
		return ErrReleased
	case Observing, Triggered:
		h.mu.Unlock()
		return ErrAlreadyObserving
	}
	h.state = Observing
	h.mu.Unlock()

	cancel := h.ctrl.src.Observe(el, countUpThreshold, Margin{}, h.onEntry)

	h.mu.Lock()
	retired := h.state != Observing
	if !retired {
		h.cancelObs = cancel
	}
	h.mu.Unlock()
	if retired {
		cancel()
	}
	return nil
}

func (h *CountUpHandle) onEntry(e Entry) {
	if !e.Reached {
		return
	}

	h.mu.Lock()
	if h.state != Observing {
		h.mu.Unlock()
		return
	}
	h.state = Triggered
	cancel := h.cancelObs
	h.cancelObs = nil
	if h.target == 0 {
		h.done = true
	} else {
		h.step = float64(h.target) / (float64(h.duration) / float64(CountUpTick))
	}
	start := !h.done
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if !start {
		return
	}

	stop := h.ctrl.clock.Every(CountUpTick, h.tick)

	h.mu.Lock()
	finished := h.done || h.state == Released
	if !finished {
		h.stopTimer = stop
	}
	h.mu.Unlock()
	if finished {
		stop()
	}
}

func (h *CountUpHandle) tick() {
	h.mu.Lock()
	if h.done || h.state == Released {
		h.mu.Unlock()
		return
	}
	h.acc += h.step
	var stop func()
	if h.acc >= float64(h.target) {
		h.value = h.target
		h.done = true
		stop, h.stopTimer = h.stopTimer, nil
	} else if v := int(math.Floor(h.acc)); v > h.value {
		h.value = v
	}
	h.mu.Unlock()

	if stop != nil {
		stop()
		h.ctrl.logger.Debug("count-up finished", zap.String("region", h.id.String()), zap.Int("target", h.target))
	}
}

// Value returns the number currently displayed.
func (h *CountUpHandle) Value() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Display returns the displayed number as text.
func (h *CountUpHandle) Display() string {
	return strconv.Itoa(h.Value())
}

// Done reports whether the count has reached its target.
func (h *CountUpHandle) Done() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Target returns the final value.
func (h *CountUpHandle) Target() int { return h.target }

// Release stops observation and any running timer.
func (h *CountUpHandle) Release() {
	h.mu.Lock()
	if h.state == Released {
		h.mu.Unlock()
		return
	}
	h.state = Released
	cancel, stop := h.cancelObs, h.stopTimer
	h.cancelObs, h.stopTimer = nil, nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stop != nil {
		stop()
	}
	h.ctrl.forget(h.id)
}

func (h *CountUpHandle) live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelObs != nil || h.stopTimer != nil
}
