package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/magnus-site/internal/content"
	"github.com/Zachkp/magnus-site/internal/reveal"
)

const (
	sectionGap        = 1
	heroParallaxSpeed = 0.4
)

// Terminal rows are the unit here, so the web's 50px bottom inset becomes
// a single row.
var revealConfig = reveal.Config{RootMargin: "0 0 -1 0"}

type effect int

const (
	effectNone effect = iota
	effectFadeIn
	effectParallax
	effectCountUp
)

// block is one piece of page content before layout.
type block struct {
	effect   effect
	text     string
	selected string // text when the block is the selected post
	post     int    // index into the page's selectable posts, or -1
	stats    []content.Stat
}

func textBlock(e effect, text string) block {
	return block{effect: e, text: text, post: -1}
}

// section is a laid-out block. It is the element the reveal layer
// observes: its bounds are its rows on the page.
type section struct {
	block
	y, width, height int

	hidden   func() bool
	paintedY func() int
	counts   []*reveal.CountUpHandle
}

func newSection(b block, y, width int) *section {
	s := &section{block: b, y: y, width: width}
	if b.effect == effectCountUp {
		s.height = 2
	} else {
		s.height = lipgloss.Height(b.text)
	}
	return s
}

func (s *section) Bounds() reveal.Rect {
	return reveal.Rect{X: 0, Y: float64(s.y), W: float64(s.width), H: float64(s.height)}
}

func (s *section) top() int {
	if s.paintedY != nil {
		return s.paintedY()
	}
	return s.y
}

func (s *section) lines(selected int) []string {
	if s.hidden != nil && s.hidden() {
		return nil
	}
	if s.effect == effectCountUp {
		return strings.Split(s.renderStats(), "\n")
	}
	if s.post >= 0 && s.post == selected && s.selected != "" {
		return strings.Split(s.selected, "\n")
	}
	return strings.Split(s.text, "\n")
}

func (s *section) renderStats() string {
	if len(s.stats) == 0 {
		return ""
	}
	colWidth := s.width / len(s.stats)
	cols := make([]string, len(s.stats))
	for i, st := range s.stats {
		value := "0"
		if i < len(s.counts) {
			value = s.counts[i].Display()
		}
		cols[i] = statStyle.Width(colWidth).Render(
			statNumStyle.Render(value+st.Suffix) + "\n" + mutedStyle.Render(st.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func paintedRow(p *reveal.ParallaxHandle) func() int {
	return func() int { return int(math.Round(p.Painted().Y)) }
}
