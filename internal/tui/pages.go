package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/magnus-site/internal/config"
	"github.com/Zachkp/magnus-site/internal/content"
	"github.com/Zachkp/magnus-site/internal/site"
)

type pageKind int

const (
	pageHome pageKind = iota
	pageAbout
	pageServices
	pageBlog
	pageContact
	pagePost
)

// navOrder is the tab order; the post page is reached from the blog.
var navOrder = []pageKind{pageHome, pageAbout, pageServices, pageBlog, pageContact}

func (k pageKind) String() string {
	switch k {
	case pageHome:
		return "Home"
	case pageAbout:
		return "About"
	case pageServices:
		return "Services"
	case pageBlog, pagePost:
		return "Blog"
	case pageContact:
		return "Contact"
	}
	return "Unknown"
}

func (k pageKind) step(delta int) pageKind {
	idx := 0
	for i, p := range navOrder {
		if p == k || (k == pagePost && p == pageBlog) {
			idx = i
		}
	}
	n := len(navOrder)
	return navOrder[((idx+delta)%n+n)%n]
}

// pageData is the result of loading one page.
type pageData struct {
	kind     pageKind
	home     site.HomePage
	services site.ServicesPage
	blog     site.BlogPage
}

// layout turns page data into blocks and returns the page's selectable
// posts in display order.
func layout(d pageData, width int, info config.Site) ([]block, []content.Blog, error) {
	switch d.kind {
	case pageHome:
		return homeBlocks(d.home, width), nil, nil
	case pageAbout:
		return aboutBlocks(width, info), nil, nil
	case pageServices:
		return servicesBlocks(d.services, width), nil, nil
	case pageBlog:
		blocks, posts := blogBlocks(d.blog, width)
		return blocks, posts, nil
	case pagePost:
		blocks, err := postBlocks(d.blog, width)
		return blocks, nil, err
	case pageContact:
		return contactBlocks(width, info), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown page %d", d.kind)
}

func wrap(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func heading(width int, s string) block {
	return textBlock(effectFadeIn, titleStyle.Width(width).Render(s))
}

func card(width int, selected bool, lines ...string) string {
	st := cardStyle
	if selected {
		st = selectedCardStyle
	}
	return st.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func bannerBlock(b *content.Banner, width int) []block {
	if b == nil || b.Title == "" {
		return nil
	}
	lines := []string{titleStyle.Render(b.Title)}
	if b.Subtitle != "" {
		lines = append(lines, b.Subtitle)
	}
	if b.CTALink != "" {
		label := b.CTAText
		if label == "" {
			label = "Learn more"
		}
		lines = append(lines, mutedStyle.Render(label+": "+b.CTALink))
	}
	return []block{textBlock(effectNone, card(width, true, lines...))}
}

func serviceCard(width int, s content.Service, detailed bool) string {
	name := titleStyle.Render(s.Icon + " " + s.Name)
	if s.IsPopular {
		name += " " + badgeStyle.Render("Popular")
	}
	lines := []string{name, wrap(width-4, s.ShortDescription)}
	if detailed {
		if s.Description != "" {
			lines = append(lines, "", wrap(width-4, s.Description))
		}
		for _, f := range s.Features {
			lines = append(lines, "  ✦ "+f)
		}
	}
	if s.Price != "" {
		lines = append(lines, mutedStyle.Render(s.Price))
	}
	return card(width, false, lines...)
}

func postLines(width int, b content.Blog) []string {
	meta := b.Category
	if t := b.Published(); !t.IsZero() {
		meta += " · " + t.Format("Jan 2, 2006")
	}
	if b.ReadingTime > 0 {
		meta += fmt.Sprintf(" · %d min read", b.ReadingTime)
	}
	title := titleStyle.Render(b.Title)
	if b.IsFeatured {
		title += " " + badgeStyle.Render("Featured")
	}
	return []string{mutedStyle.Render(meta), title, wrap(width-4, b.Excerpt)}
}

func homeBlocks(h site.HomePage, width int) []block {
	hero := heroStyle.Width(width).Render(strings.Join([]string{
		mutedStyle.Render(content.HeroLabel),
		"",
		brandStyle.Render(content.HeroTitle),
		"",
		content.HeroSubtitle,
		"",
		mutedStyle.Render("scroll with ↓ · tab to explore"),
	}, "\n"))

	blocks := bannerBlock(h.Banner, width)
	blocks = append(blocks,
		textBlock(effectParallax, hero),
		block{effect: effectCountUp, stats: content.HomeStats, post: -1},
		heading(width, "What I Offer"),
	)
	for _, s := range h.Services {
		blocks = append(blocks, textBlock(effectFadeIn, serviceCard(width, s, false)))
	}
	blocks = append(blocks, heading(width, "From the Blog"))
	for _, b := range h.Blogs {
		blocks = append(blocks, textBlock(effectFadeIn, card(width, false, postLines(width, b)...)))
	}
	blocks = append(blocks, calloutBlock(width, content.Showreel), heading(width, "What Clients Say"))
	for _, t := range content.Testimonials {
		blocks = append(blocks, textBlock(effectFadeIn, card(width, false,
			badgeStyle.Render(t.Stars()),
			wrap(width-4, "“"+t.Quote+"”"),
			titleStyle.Render(t.Name)+" "+mutedStyle.Render(t.Role))))
	}
	return append(blocks, calloutBlock(width, content.BookingCTA))
}

func calloutBlock(width int, c content.Callout) block {
	return textBlock(effectFadeIn, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join([]string{
		mutedStyle.Render(c.Label),
		brandStyle.Render(c.Title),
		c.Text,
	}, "\n")))
}

func aboutBlocks(width int, info config.Site) []block {
	blocks := []block{
		heading(width, "About "+info.Name),
		textBlock(effectFadeIn, wrap(width, content.AboutMe)),
		textBlock(effectFadeIn, mutedStyle.Italic(true).Width(width).Render(content.AboutPhilosophy)),
		heading(width, "The Journey"),
	}
	for _, m := range content.Milestones {
		blocks = append(blocks, textBlock(effectFadeIn, card(width, false,
			titleStyle.Render(m.Icon+" "+m.Year+"  "+m.Event),
			wrap(width-4, m.Description))))
	}
	blocks = append(blocks, heading(width, "What I Believe"))
	for _, b := range content.Beliefs {
		blocks = append(blocks, textBlock(effectFadeIn, card(width, false,
			titleStyle.Render(b.Icon+" "+b.Title),
			wrap(width-4, b.Description))))
	}
	return blocks
}

func servicesBlocks(p site.ServicesPage, width int) []block {
	blocks := bannerBlock(p.Banner, width)
	blocks = append(blocks, heading(width, "Services"))
	for _, s := range p.Services {
		blocks = append(blocks, textBlock(effectFadeIn, serviceCard(width, s, true)))
	}
	blocks = append(blocks, heading(width, "How It Works"))
	for _, st := range content.BookingProcess {
		blocks = append(blocks, textBlock(effectFadeIn, card(width, false,
			brandStyle.Render(st.Step)+"  "+titleStyle.Render(st.Title),
			wrap(width-4, st.Description))))
	}
	return append(blocks, calloutBlock(width, content.BookingCTA))
}

func blogBlocks(p site.BlogPage, width int) ([]block, []content.Blog) {
	var posts []content.Blog
	if p.Featured != nil {
		posts = append(posts, *p.Featured)
	}
	posts = append(posts, p.Posts...)

	blocks := []block{
		heading(width, "Blog"),
		textBlock(effectNone, mutedStyle.Render(strings.Join(p.Categories, " · "))),
	}
	if len(posts) == 0 {
		return append(blocks, textBlock(effectNone, "No posts yet.")), nil
	}
	for i, b := range posts {
		lines := postLines(width, b)
		blocks = append(blocks, block{
			effect:   effectFadeIn,
			text:     card(width, false, lines...),
			selected: card(width, true, lines...),
			post:     i,
		})
	}
	return blocks, posts
}

func postBlocks(p site.BlogPage, width int) ([]block, error) {
	if p.Selected == nil {
		return []block{
			heading(width, "Post not found"),
			textBlock(effectNone, mutedStyle.Render("This post has vanished. Press esc to return to the blog.")),
		}, nil
	}
	b := p.Selected
	source := b.Content
	if source == "" {
		source = b.Excerpt
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	body, err := r.Render(source)
	if err != nil {
		return nil, fmt.Errorf("render post %s: %w", b.ID, err)
	}
	lines := postLines(width, *b)
	return []block{
		textBlock(effectNone, strings.Join(lines[:2], "\n")),
		textBlock(effectNone, strings.TrimRight(body, "\n")),
	}, nil
}

func contactBlocks(width int, info config.Site) []block {
	lines := []string{"✉  " + info.ContactEmail}
	if info.ContactPhone != "" {
		lines = append(lines, "☎  "+info.ContactPhone)
	}
	for _, l := range []struct{ name, url string }{
		{"Instagram", info.Social.Instagram},
		{"Facebook", info.Social.Facebook},
		{"YouTube", info.Social.YouTube},
	} {
		if l.url != "" {
			lines = append(lines, mutedStyle.Render(l.name+": "+l.url))
		}
	}
	return []block{
		heading(width, "Book a Performance"),
		textBlock(effectFadeIn, card(width, false, lines...)),
		textBlock(effectFadeIn, wrap(width, "Send a booking request from the web site: "+strings.TrimRight(info.URL, "/")+"/contact")),
	}
}
