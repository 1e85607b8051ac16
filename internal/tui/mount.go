package tui

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Zachkp/magnus-site/internal/config"
	"github.com/Zachkp/magnus-site/internal/content"
	"github.com/Zachkp/magnus-site/internal/reveal"
)

// mount is one rendered page: its sections, the viewport they scroll in
// and the controller owning their effects. Closing the mount releases
// every effect.
type mount struct {
	gen      int
	kind     pageKind
	viewport *reveal.Viewport
	ctrl     *reveal.Controller
	sections []*section
	posts    []content.Blog
	selected int

	width, height int
	contentHeight int
	offset        int
}

func newMount(gen int, d pageData, width, height int, info config.Site, clock reveal.Clock, logger *zap.Logger) (*mount, error) {
	blocks, posts, err := layout(d, width, info)
	if err != nil {
		return nil, err
	}

	vp := reveal.NewViewport(float64(width), float64(height))
	ctrl := reveal.NewController(vp, reveal.WithClock(clock), reveal.WithLogger(logger))
	m := &mount{
		gen:      gen,
		kind:     d.kind,
		viewport: vp,
		ctrl:     ctrl,
		posts:    posts,
		width:    width,
		height:   height,
	}

	y := 0
	for _, b := range blocks {
		sec := newSection(b, y, width)
		if err := m.bind(sec); err != nil {
			ctrl.Close()
			return nil, err
		}
		m.sections = append(m.sections, sec)
		y += sec.height + sectionGap
	}
	m.contentHeight = max(y-sectionGap, 0)

	// Observation only registers; the first evaluation happens here.
	vp.Refresh()
	return m, nil
}

func (m *mount) bind(sec *section) error {
	switch sec.effect {
	case effectFadeIn:
		h, err := m.ctrl.Reveal(revealConfig)
		if err != nil {
			return err
		}
		if err := h.Attach(sec); err != nil {
			return err
		}
		sec.hidden = func() bool { return !h.Visible() }
	case effectParallax:
		p, err := m.ctrl.Parallax(heroParallaxSpeed)
		if err != nil {
			return err
		}
		if err := p.Attach(sec); err != nil {
			return err
		}
		sec.paintedY = paintedRow(p)
	case effectCountUp:
		for _, st := range sec.stats {
			h, err := m.ctrl.CountUp(st.Target, 0)
			if err != nil {
				return err
			}
			if err := h.Attach(sec); err != nil {
				return err
			}
			sec.counts = append(sec.counts, h)
		}
	}
	return nil
}

func (m *mount) maxOffset() int {
	return max(m.contentHeight-m.height, 0)
}

func (m *mount) scrollTo(offset int) {
	offset = min(max(offset, 0), m.maxOffset())
	if offset == m.offset {
		return
	}
	m.offset = offset
	m.viewport.ScrollTo(float64(offset))
}

func (m *mount) scrollBy(delta int) { m.scrollTo(m.offset + delta) }

func (m *mount) resize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Resize(float64(width), float64(height))
	m.scrollTo(m.offset)
}

// selectPost moves the post selection and scrolls the selected card
// into view.
func (m *mount) selectPost(delta int) {
	if len(m.posts) == 0 {
		return
	}
	n := len(m.posts)
	m.selected = ((m.selected+delta)%n + n) % n
	for _, s := range m.sections {
		if s.post != m.selected {
			continue
		}
		switch {
		case s.y < m.offset:
			m.scrollTo(s.y)
		case s.y+s.height > m.offset+m.height:
			m.scrollTo(s.y + s.height - m.height)
		}
	}
}

func (m *mount) selectedPost() (content.Blog, bool) {
	if m.selected < 0 || m.selected >= len(m.posts) {
		return content.Blog{}, false
	}
	return m.posts[m.selected], true
}

// view paints the sections visible at the current offset. Later sections
// paint over earlier ones, so the hero slides under the content that
// follows it.
func (m *mount) view() string {
	canvas := make([]string, m.height)
	for _, s := range m.sections {
		top := s.top() - m.offset
		if top >= m.height || top+s.height <= 0 {
			continue
		}
		for i, line := range s.lines(m.selected) {
			if row := top + i; row >= 0 && row < m.height {
				canvas[row] = line
			}
		}
	}
	return strings.Join(canvas, "\n")
}

func (m *mount) close() {
	m.ctrl.Close()
}
