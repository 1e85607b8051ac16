// Package tui is the terminal rendition of the site. Each page is laid out
// as a column of sections inside a reveal.Viewport, so scrolling drives
// the same fade-in, count-up and parallax effects the web pages use.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Zachkp/magnus-site/internal/config"
	"github.com/Zachkp/magnus-site/internal/reveal"
	"github.com/Zachkp/magnus-site/internal/site"
)

const (
	frameInterval = 50 * time.Millisecond
	chromeLines   = 3
	defaultWidth  = 80
	defaultHeight = 24
)

// Loader fetches page data. *site.Loader satisfies it.
type Loader interface {
	Home(ctx context.Context) site.HomePage
	Services(ctx context.Context, identifier string) site.ServicesPage
	Blog(ctx context.Context, identifier, search, category string) site.BlogPage
}

var _ Loader = (*site.Loader)(nil)

type loadedMsg struct {
	gen  int
	data pageData
}

type frameMsg time.Time

// Model is the bubbletea model for the terminal site.
type Model struct {
	ctx    context.Context
	loader Loader
	clock  reveal.Clock
	logger *zap.Logger
	info   config.Site

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width, height int
	kind          pageKind
	postID        string
	gen           int
	loading       bool
	mount         *mount
	err           error
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock driving count-ups.
func WithClock(c reveal.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// WithLogger sets the logger. The terminal is owned by the UI, so it
// should write to a file.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithSite sets the site copy shown in the chrome and on the contact page.
func WithSite(s config.Site) Option {
	return func(m *Model) { m.info = s }
}

// WithContext sets the context content loads run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New returns a model that starts on the home page.
func New(loader Loader, opts ...Option) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	m := &Model{
		ctx:     context.Background(),
		loader:  loader,
		clock:   reveal.SystemClock{},
		logger:  zap.NewNop(),
		info:    config.Default().Site,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
		kind:    pageHome,
		gen:     1,
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(m.gen, m.kind, m.postID), m.spinner.Tick, frame())
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// load fetches a page off the UI goroutine. The result carries the mount
// generation it was requested for.
func (m *Model) load(gen int, kind pageKind, postID string) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		d := pageData{kind: kind}
		switch kind {
		case pageHome:
			d.home = loader.Home(ctx)
		case pageServices:
			d.services = loader.Services(ctx, "")
		case pageBlog:
			d.blog = loader.Blog(ctx, "", "", "")
		case pagePost:
			d.blog = loader.Blog(ctx, postID, "", "")
		}
		return loadedMsg{gen: gen, data: d}
	}
}

func (m *Model) bodyHeight() int {
	return max(m.height-chromeLines, 1)
}

func (m *Model) navigate(kind pageKind, postID string) tea.Cmd {
	m.unmount()
	m.gen++
	m.kind, m.postID = kind, postID
	m.loading = true
	m.err = nil
	return tea.Batch(m.load(m.gen, kind, postID), m.spinner.Tick)
}

func (m *Model) unmount() {
	if m.mount != nil {
		m.mount.close()
		m.mount = nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.mount != nil {
			m.mount.resize(m.width, m.bodyHeight())
		}
		return m, nil

	case loadedMsg:
		if msg.gen != m.gen {
			m.logger.Debug("dropping late page load",
				zap.Stringer("page", msg.data.kind), zap.Int("gen", msg.gen), zap.Int("current", m.gen))
			return m, nil
		}
		m.loading = false
		mt, err := newMount(msg.gen, msg.data, m.width, m.bodyHeight(), m.info, m.clock, m.logger)
		if err != nil {
			m.logger.Error("mount page", zap.Stringer("page", msg.data.kind), zap.Error(err))
			m.err = err
			return m, nil
		}
		m.mount = mt
		m.logger.Debug("page mounted", zap.Stringer("page", mt.kind), zap.Int("sections", len(mt.sections)))
		return m, nil

	case frameMsg:
		return m, frame()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unmount()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.NextPage):
		return m.navigate(m.kind.step(1), "")
	case key.Matches(msg, m.keys.PrevPage):
		return m.navigate(m.kind.step(-1), "")
	}

	if m.kind == pagePost && key.Matches(msg, m.keys.Back) {
		return m.navigate(pageBlog, "")
	}
	if m.mount == nil {
		return nil
	}

	page := m.bodyHeight()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.mount.scrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.mount.scrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.mount.scrollBy(page)
	case key.Matches(msg, m.keys.PageUp):
		m.mount.scrollBy(-page)
	case key.Matches(msg, m.keys.Top):
		m.mount.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.mount.scrollTo(m.mount.maxOffset())
	case key.Matches(msg, m.keys.NextPost):
		m.mount.selectPost(1)
	case key.Matches(msg, m.keys.PrevPost):
		m.mount.selectPost(-1)
	case key.Matches(msg, m.keys.Open):
		if b, ok := m.mount.selectedPost(); ok {
			id := b.Slug
			if id == "" {
				id = b.ID
			}
			return m.navigate(pagePost, id)
		}
	}
	return nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Height(m.bodyHeight()).Render(
			titleStyle.Render("Something went wrong: ") + m.err.Error()))
	case m.loading || m.mount == nil:
		b.WriteString(lipgloss.NewStyle().Height(m.bodyHeight()).Render(
			m.spinner.View() + " Preparing the show…"))
	default:
		b.WriteString(m.mount.view())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	items := []string{brandStyle.Render("✦ " + m.info.Name)}
	for _, k := range navOrder {
		st := navStyle
		if k == m.kind || (k == pageBlog && m.kind == pagePost) {
			st = navActiveStyle
		}
		items = append(items, st.Render(k.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// Close releases the current page's effects.
func (m *Model) Close() {
	m.unmount()
}

// Run starts the terminal site and blocks until the user quits or ctx is
// done.
func Run(ctx context.Context, loader Loader, opts ...Option) error {
	m := New(loader, append([]Option{WithContext(ctx)}, opts...)...)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
