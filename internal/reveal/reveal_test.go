package reveal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type box Rect

func (b box) Bounds() Rect { return Rect(b) }

// newPage returns a 100x500 viewport and a controller on a manual clock.
func newPage(t *testing.T) (*Viewport, *Controller, *ManualClock) {
	t.Helper()
	vp := NewViewport(100, 500)
	clock := NewManualClock()
	ctrl := NewController(vp, WithClock(clock))
	t.Cleanup(ctrl.Close)
	return vp, ctrl, clock
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		in   string
		want Margin
	}{
		{"10px", Margin{10, 10, 10, 10}},
		{"0px 5px", Margin{0, 5, 0, 5}},
		{"1 2 3", Margin{1, 2, 3, 2}},
		{"0px 0px -50px 0px", Margin{0, 0, -50, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMargin(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "1 2 3 4 5", "abc", "10em", "NaN", "0 Inf", "-Infpx"} {
		_, err := ParseMargin(bad)
		assert.ErrorIs(t, err, ErrInvalidMargin, bad)
	}
}

func TestRevealDefaults(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	h, err := ctrl.Reveal(Config{})
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID())
	assert.Equal(t, Unobserved, h.State())

	// 100 units tall, top at 430: 70 units sit inside the viewport but the
	// default margin trims the bottom 50, leaving 20% visible.
	require.NoError(t, h.Attach(box{Y: 430, W: 100, H: 100}))
	vp.Refresh()
	assert.True(t, h.Visible())

	// 10% visible is below the default threshold.
	h2, err := ctrl.Reveal(Config{})
	require.NoError(t, err)
	require.NoError(t, h2.Attach(box{Y: 440, W: 100, H: 100}))
	vp.Refresh()
	assert.False(t, h2.Visible())
}

func TestRevealInvalidConfig(t *testing.T) {
	_, ctrl, _ := newPage(t)

	_, err := ctrl.Reveal(Config{Threshold: 1.5})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = ctrl.Reveal(Config{Threshold: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = ctrl.Reveal(Config{Threshold: -0.1})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = ctrl.Reveal(Config{RootMargin: "wide"})
	assert.ErrorIs(t, err, ErrInvalidMargin)

	_, err = ctrl.Reveal(Config{RootMargin: "NaN"})
	assert.ErrorIs(t, err, ErrInvalidMargin)
}

func TestRevealOneShot(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	h, err := ctrl.Reveal(Config{Threshold: 0.5, RootMargin: "0"})
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 1000, W: 100, H: 100}))

	vp.Refresh()
	assert.False(t, h.Visible())
	assert.Equal(t, Observing, h.State())
	assert.Equal(t, 1, ctrl.Live())

	vp.ScrollTo(700)
	assert.True(t, h.Visible())
	assert.Equal(t, Triggered, h.State())
	// Released within the same delivery.
	assert.Equal(t, 0, ctrl.Live())
	observers, _ := vp.Subscriptions()
	assert.Equal(t, 0, observers)

	for _, y := range []float64{0, 2000, 0, 700} {
		vp.ScrollTo(y)
		assert.True(t, h.Visible(), "offset %v", y)
	}
}

func TestRevealRepeat(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	h, err := ctrl.Reveal(Config{Threshold: 0.5, RootMargin: "0", Repeat: true})
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 1000, W: 100, H: 100}))
	vp.Refresh()

	for i := 0; i < 5; i++ {
		vp.ScrollTo(700)
		assert.True(t, h.Visible(), "enter %d", i)
		assert.Equal(t, Triggered, h.State())

		vp.ScrollTo(0)
		assert.False(t, h.Visible(), "exit %d", i)
		assert.Equal(t, Observing, h.State())
	}
	assert.Equal(t, 1, ctrl.Live())
}

func TestRevealRepeatHidesOnlyOnceOffScreen(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	h, err := ctrl.Reveal(Config{Threshold: 0.5, RootMargin: "0", Repeat: true})
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 1000, W: 100, H: 100}))
	vp.Refresh()

	// Partly visible but below the threshold: not revealed yet.
	vp.ScrollTo(540)
	assert.False(t, h.Visible())

	vp.ScrollTo(700)
	require.True(t, h.Visible())

	// 10 units of the region remain inside the viewport.
	vp.ScrollTo(1090)
	assert.True(t, h.Visible())
	assert.Equal(t, Triggered, h.State())

	vp.ScrollTo(1100)
	assert.False(t, h.Visible())
	assert.Equal(t, Observing, h.State())

	// Coming back in at a sliver does not re-reveal.
	vp.ScrollTo(1090)
	assert.False(t, h.Visible())
	vp.ScrollTo(1000)
	assert.True(t, h.Visible())
}

func TestRevealAttachTwice(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	h, err := ctrl.Reveal(Config{})
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 1000, W: 10, H: 10}))
	assert.ErrorIs(t, h.Attach(box{Y: 1000, W: 10, H: 10}), ErrAlreadyObserving)

	observers, _ := vp.Subscriptions()
	assert.Equal(t, 1, observers)
}

func TestRevealReleaseBeforeTrigger(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	h, err := ctrl.Reveal(Config{})
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 1000, W: 10, H: 10}))

	h.Release()
	h.Release()
	assert.Equal(t, Released, h.State())
	assert.False(t, h.Visible())
	assert.ErrorIs(t, h.Attach(box{}), ErrReleased)

	vp.ScrollTo(1000)
	assert.False(t, h.Visible())
	observers, _ := vp.Subscriptions()
	assert.Equal(t, 0, observers)
}

func TestParallax(t *testing.T) {
	vp, ctrl, _ := newPage(t)

	el := box{Y: 200, W: 100, H: 300}
	h, err := ctrl.Parallax(-0.5)
	require.NoError(t, err)
	require.NoError(t, h.Attach(el))
	assert.ErrorIs(t, h.Attach(el), ErrAlreadyObserving)

	vp.ScrollTo(120)
	assert.InDelta(t, -60, h.Translate(), 1e-9)
	assert.InDelta(t, 140, h.Painted().Y, 1e-9)
	assert.Equal(t, Rect{Y: 200, W: 100, H: 300}, el.Bounds())

	vp.ScrollTo(40)
	assert.InDelta(t, -20, h.Translate(), 1e-9)

	h.Release()
	_, listeners := vp.Subscriptions()
	assert.Equal(t, 0, listeners)
	vp.ScrollTo(500)
	assert.InDelta(t, -20, h.Translate(), 1e-9)
}

func TestCountUpZeroTarget(t *testing.T) {
	vp, ctrl, clock := newPage(t)

	h, err := ctrl.CountUp(0, 0)
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 0, W: 100, H: 100}))
	vp.Refresh()

	assert.Equal(t, "0", h.Display())
	assert.True(t, h.Done())
	assert.Equal(t, 0, clock.Active())
	assert.Equal(t, 0, ctrl.Live())
}

func TestCountUpReachesTarget(t *testing.T) {
	vp, ctrl, clock := newPage(t)

	h, err := ctrl.CountUp(500, 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 800, W: 100, H: 100}))
	vp.Refresh()
	assert.Equal(t, 0, clock.Active())

	vp.ScrollTo(500)
	require.Equal(t, 1, clock.Active())
	observers, _ := vp.Subscriptions()
	assert.Equal(t, 0, observers)

	prev := 0
	for !h.Done() {
		clock.Advance(CountUpTick)
		v := h.Value()
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 500)
		prev = v
	}
	assert.Equal(t, "500", h.Display())
	assert.Equal(t, 0, clock.Active())
	assert.Equal(t, 0, ctrl.Live())

	// Never re-triggers.
	vp.ScrollTo(0)
	vp.ScrollTo(500)
	assert.Equal(t, 0, clock.Active())
}

func TestCountUpHalfVisibleThreshold(t *testing.T) {
	vp, ctrl, clock := newPage(t)

	h, err := ctrl.CountUp(10, time.Second)
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{Y: 460, W: 100, H: 100}))
	vp.Refresh()
	assert.Equal(t, 0, clock.Active(), "40%% visible must not trigger")

	vp.ScrollTo(20)
	assert.Equal(t, 1, clock.Active())
}

func TestCountUpNegativeTarget(t *testing.T) {
	_, ctrl, _ := newPage(t)
	_, err := ctrl.CountUp(-1, time.Second)
	assert.ErrorIs(t, err, ErrNegativeTarget)
}

func TestControllerCloseReleasesEverything(t *testing.T) {
	vp, ctrl, clock := newPage(t)

	r, err := ctrl.Reveal(Config{Repeat: true})
	require.NoError(t, err)
	require.NoError(t, r.Attach(box{Y: 0, W: 100, H: 100}))
	p, err := ctrl.Parallax(0.3)
	require.NoError(t, err)
	require.NoError(t, p.Attach(box{Y: 0, W: 100, H: 100}))
	c, err := ctrl.CountUp(1000, time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Attach(box{Y: 0, W: 100, H: 100}))
	vp.Refresh()

	clock.Advance(5 * CountUpTick)
	assert.Equal(t, 3, ctrl.Live())
	assert.Equal(t, 1, clock.Active())

	ctrl.Close()
	assert.Equal(t, 0, ctrl.Live())
	assert.Equal(t, 0, clock.Active())
	observers, listeners := vp.Subscriptions()
	assert.Equal(t, 0, observers)
	assert.Equal(t, 0, listeners)

	_, err = ctrl.Reveal(Config{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCountUpSystemClockStops(t *testing.T) {
	vp := NewViewport(100, 100)
	ctrl := NewController(vp)

	h, err := ctrl.CountUp(30, 100*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{W: 100, H: 100}))
	vp.Refresh()

	require.Eventually(t, h.Done, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 30, h.Value())
	ctrl.Close()
}

func TestCountUpSystemClockReleasedMidway(t *testing.T) {
	vp := NewViewport(100, 100)
	ctrl := NewController(vp)

	h, err := ctrl.CountUp(1_000_000, time.Hour)
	require.NoError(t, err)
	require.NoError(t, h.Attach(box{W: 100, H: 100}))
	vp.Refresh()

	time.Sleep(3 * CountUpTick)
	ctrl.Close()
	assert.False(t, h.Done())
	assert.Equal(t, 0, ctrl.Live())
}
