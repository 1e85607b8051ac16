package reveal

import (
	"sync"

	"github.com/google/uuid"
)

// Parallax acquires a handle translating its element by scroll offset
// times speed. Typical speeds are between -1 and 1.
func (c *Controller) Parallax(speed float64) (*ParallaxHandle, error) {
	h := &ParallaxHandle{id: uuid.New(), ctrl: c, speed: speed}
	if err := c.register(h.id, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ParallaxHandle tracks the vertical translation of one element. The
// translation is visual only; the element's bounds never change.
type ParallaxHandle struct {
	id    uuid.UUID
	ctrl  *Controller
	speed float64

	mu        sync.Mutex
	el        Element
	translate float64
	cancel    func()
	released  bool
}

// Attach binds el and starts listening for scroll events.
func (h *ParallaxHandle) Attach(el Element) error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return ErrReleased
	}
	if h.el != nil {
		h.mu.Unlock()
		return ErrAlreadyObserving
	}
	h.el = el
	h.translate = h.ctrl.src.Offset() * h.speed
	h.mu.Unlock()

	cancel := h.ctrl.src.OnScroll(h.onScroll)

	h.mu.Lock()
	released := h.released
	if !released {
		h.cancel = cancel
	}
	h.mu.Unlock()
	if released {
		cancel()
	}
	return nil
}

func (h *ParallaxHandle) onScroll(offset float64) {
	h.mu.Lock()
	if !h.released {
		h.translate = offset * h.speed
	}
	h.mu.Unlock()
}

// Translate returns the current vertical translation.
func (h *ParallaxHandle) Translate() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.translate
}

// Painted returns where the element is drawn: its bounds shifted by the
// current translation.
func (h *ParallaxHandle) Painted() Rect {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.el == nil {
		return Rect{}
	}
	r := h.el.Bounds()
	r.Y += h.translate
	return r
}

// Release removes the scroll listener. It is safe to call more than once.
func (h *ParallaxHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.ctrl.forget(h.id)
}

func (h *ParallaxHandle) live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}
