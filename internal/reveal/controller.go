package reveal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the visible area ratio that reveals a region.
	DefaultThreshold = 0.15
	// DefaultRootMargin shrinks the viewport bottom by 50 units so regions
	// reveal slightly after they scroll into view.
	DefaultRootMargin = "0px 0px -50px 0px"
)

var (
	ErrAlreadyObserving = errors.New("reveal: region is already observed")
	ErrReleased         = errors.New("reveal: handle released")
	ErrClosed           = errors.New("reveal: controller closed")
	ErrInvalidThreshold = errors.New("reveal: threshold must be between 0 and 1")
	ErrInvalidMargin    = errors.New("reveal: invalid root margin")
	ErrNegativeTarget   = errors.New("reveal: count-up target must not be negative")
)

// State is the lifecycle position of a region.
type State int

const (
	Unobserved State = iota
	Observing
	Triggered
	Released
)

func (s State) String() string {
	switch s {
	case Unobserved:
		return "unobserved"
	case Observing:
		return "observing"
	case Triggered:
		return "triggered"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Config configures a reveal region. A zero Threshold or empty
// RootMargin selects the default.
type Config struct {
	Threshold  float64
	RootMargin string
	Repeat     bool
}

type handle interface {
	Release()
	live() bool
}

// Controller hands out reveal, parallax and count-up handles for one page
// mount. Close releases everything the page still holds.
type Controller struct {
	src    Source
	clock  Clock
	logger *zap.Logger

	mu      sync.Mutex
	handles map[uuid.UUID]handle
	closed  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock driving count-up ticks.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// NewController returns a controller observing through src.
func NewController(src Source, opts ...Option) *Controller {
	c := &Controller{
		src:     src,
		clock:   SystemClock{},
		logger:  zap.NewNop(),
		handles: make(map[uuid.UUID]handle),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) register(id uuid.UUID, h handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.handles[id] = h
	return nil
}

func (c *Controller) forget(id uuid.UUID) {
	c.mu.Lock()
	delete(c.handles, id)
	c.mu.Unlock()
}

// Live reports how many handles still hold a subscription, listener or
// timer.
func (c *Controller) Live() int {
	c.mu.Lock()
	hs := make([]handle, 0, len(c.handles))
	for _, h := range c.handles {
		hs = append(hs, h)
	}
	c.mu.Unlock()

	n := 0
	for _, h := range hs {
		if h.live() {
			n++
		}
	}
	return n
}

// Close releases every handle and rejects further acquisitions.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	hs := make([]handle, 0, len(c.handles))
	for _, h := range c.handles {
		hs = append(hs, h)
	}
	c.mu.Unlock()

	for _, h := range hs {
		h.Release()
	}
	c.logger.Debug("reveal controller closed", zap.Int("handles", len(hs)))
}

// Reveal acquires a handle for one region.
func (c *Controller) Reveal(cfg Config) (*RevealHandle, error) {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if !(threshold >= 0 && threshold <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	rootMargin := cfg.RootMargin
	if rootMargin == "" {
		rootMargin = DefaultRootMargin
	}
	margin, err := ParseMargin(rootMargin)
	if err != nil {
		return nil, err
	}

	h := &RevealHandle{
		id:        uuid.New(),
		ctrl:      c,
		threshold: threshold,
		margin:    margin,
		repeat:    cfg.Repeat,
	}
	if err := c.register(h.id, h); err != nil {
		return nil, err
	}
	return h, nil
}

// RevealHandle flips a visibility flag as its element enters and leaves
// the viewport.
type RevealHandle struct {
	id        uuid.UUID
	ctrl      *Controller
	threshold float64
	margin    Margin
	repeat    bool

	mu      sync.Mutex
	state   State
	visible bool
	cancel  func()
}

// ID returns the region's opaque identifier.
func (h *RevealHandle) ID() string { return h.id.String() }

// Visible reports whether the region has been revealed.
func (h *RevealHandle) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// State returns the region's lifecycle state.
func (h *RevealHandle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Attach starts observing el. A handle observes at most one element at a
// time.
func (h *RevealHandle) Attach(el Element) error {
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

	cancel := h.ctrl.src.Observe(el, h.threshold, h.margin, h.onEntry)

	h.mu.Lock()
	retired := h.state == Released || (h.state == Triggered && !h.repeat)
	if !retired {
		h.cancel = cancel
	}
	h.mu.Unlock()
	if retired {
		cancel()
	}
	return nil
}

func (h *RevealHandle) onEntry(e Entry) {
	h.mu.Lock()
	if h.state == Released {
		h.mu.Unlock()
		return
	}
	var cancel func()
	if e.Reached {
		h.visible = true
		h.state = Triggered
		if !h.repeat {
			cancel, h.cancel = h.cancel, nil
		}
	} else if h.repeat && !e.Intersecting {
		h.visible = false
		h.state = Observing
	}
	h.mu.Unlock()

	if cancel != nil {
		cancel()
		h.ctrl.logger.Debug("region revealed", zap.String("region", h.id.String()))
	}
}

// Release stops observation. It is safe to call more than once.
func (h *RevealHandle) Release() {
	h.mu.Lock()
	if h.state == Released {
		h.mu.Unlock()
		return
	}
	cancel := h.cancel
	h.cancel = nil
	h.state = Released
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.ctrl.forget(h.id)
}

func (h *RevealHandle) live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}
