package reveal

import (
	"slices"
	"sync"
)

// Element is anything the viewport can measure. Bounds are in document
// coordinates, independent of the current scroll offset.
type Element interface {
	Bounds() Rect
}

// Entry is one intersection notification for an observed element.
// Reached reports that the visible ratio is at or above the observer's
// threshold. Intersecting reports any overlap with the root at all.
type Entry struct {
	Ratio        float64
	Reached      bool
	Intersecting bool
	Bounds       Rect
}

// Source delivers intersection and scroll events to handles.
type Source interface {
	Observe(el Element, threshold float64, margin Margin, fn func(Entry)) (cancel func())
	OnScroll(fn func(offset float64)) (cancel func())
	Offset() float64
}

type subscription struct {
	el           Element
	threshold    float64
	margin       Margin
	fn           func(Entry)
	seen         bool
	reached      bool
	intersecting bool
}

// Viewport is a scrollable window over a document. It implements Source.
//
// Observe only registers a subscription; the first entry for it is
// delivered on the next Refresh, ScrollTo or Resize. After that, entries
// are delivered only when the element crosses its threshold or starts or
// stops overlapping the viewport. Callbacks
// run on the caller's goroutine after the viewport lock is released, so a
// callback may cancel its own subscription.
type Viewport struct {
	mu     sync.Mutex
	width  float64
	height float64
	offset float64
	nextID uint64
	subs   map[uint64]*subscription
	scroll map[uint64]func(float64)
}

// NewViewport returns a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		width:  width,
		height: height,
		subs:   make(map[uint64]*subscription),
		scroll: make(map[uint64]func(float64)),
	}
}

// Observe implements Source.
func (v *Viewport) Observe(el Element, threshold float64, margin Margin, fn func(Entry)) func() {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs[id] = &subscription{el: el, threshold: threshold, margin: margin, fn: fn}
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// OnScroll implements Source.
func (v *Viewport) OnScroll(fn func(offset float64)) func() {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.scroll[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.scroll, id)
			v.mu.Unlock()
		})
	}
}

// Offset implements Source.
func (v *Viewport) Offset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// Size returns the viewport's width and height.
func (v *Viewport) Size() (float64, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Subscriptions reports the number of live intersection subscriptions
// and scroll listeners.
func (v *Viewport) Subscriptions() (observers, listeners int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs), len(v.scroll)
}

// ScrollTo moves the viewport to the given vertical offset, notifies
// scroll listeners and re-evaluates intersections.
func (v *Viewport) ScrollTo(offset float64) {
	if offset < 0 {
		offset = 0
	}

	v.mu.Lock()
	changed := offset != v.offset
	v.offset = offset
	var listeners []func(float64)
	if changed {
		for _, id := range sortedKeys(v.scroll) {
			listeners = append(listeners, v.scroll[id])
		}
	}
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(offset)
	}
	v.Refresh()
}

// Resize changes the viewport size and re-evaluates intersections.
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
	v.Refresh()
}

// Refresh re-evaluates every subscription, typically after layout changes.
func (v *Viewport) Refresh() {
	type delivery struct {
		fn    func(Entry)
		entry Entry
	}

	v.mu.Lock()
	root := Rect{X: 0, Y: v.offset, W: v.width, H: v.height}
	var out []delivery
	for _, id := range sortedKeys(v.subs) {
		s := v.subs[id]
		bounds := s.el.Bounds()
		r := ratio(bounds, s.margin.Apply(root))
		in := r > 0
		reached := in && r >= s.threshold
		if s.seen && in == s.intersecting && reached == s.reached {
			continue
		}
		s.seen = true
		s.intersecting, s.reached = in, reached
		out = append(out, delivery{fn: s.fn, entry: Entry{Ratio: r, Reached: reached, Intersecting: in, Bounds: bounds}})
	}
	v.mu.Unlock()

	for _, d := range out {
		d.fn(d.entry)
	}
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
