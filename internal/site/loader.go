// Package site assembles the data each page renders. Every remote call
// may fail; a failed or empty answer is replaced by bundled default
// content so pages never render blank.
package site

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/magnus-site/internal/api"
	"github.com/Zachkp/magnus-site/internal/content"
)

// BlogSource is the subset of the blog API pages use.
type BlogSource interface {
	List(ctx context.Context, query string) (*api.BlogList, error)
	Get(ctx context.Context, identifier string) (*content.Blog, error)
	Featured(ctx context.Context) ([]content.Blog, error)
	Categories(ctx context.Context) ([]string, error)
}

// ServiceSource is the subset of the services API pages use.
type ServiceSource interface {
	List(ctx context.Context, query string) ([]content.Service, error)
	Get(ctx context.Context, identifier string) (*content.Service, error)
}

// ContactSink accepts contact form submissions.
type ContactSink interface {
	Submit(ctx context.Context, req content.ContactRequest) error
}

// BannerSource looks up page banners.
type BannerSource interface {
	Active(ctx context.Context, page string) (*content.Banner, error)
}

// Sources groups the remote collaborators of a Loader.
type Sources struct {
	Blogs    BlogSource
	Services ServiceSource
	Contact  ContactSink
	Banners  BannerSource
}

// SourcesFromClient wires every source to the gateway.
func SourcesFromClient(c *api.Client) Sources {
	return Sources{Blogs: c.Blogs, Services: c.Services, Contact: c.Contact, Banners: c.Banners}
}

const (
	homeServiceLimit  = 6
	homeServicesQuery = "?limit=6"
	homeBlogLimit     = 3
	blogListQuery     = "?limit=50"

	// DefaultFetchTimeout bounds how long a page waits on content calls.
	DefaultFetchTimeout = 5 * time.Second
)

// Loader fetches page data.
type Loader struct {
	src     Sources
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// WithFetchTimeout bounds content fetches. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(ld *Loader) { ld.timeout = d }
}

// NewLoader returns a loader over src.
func NewLoader(src Sources, opts ...Option) *Loader {
	l := &Loader{src: src, logger: zap.NewNop(), timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

func (l *Loader) fellBack(what string, err error) {
	if err != nil {
		l.logger.Warn("remote content unavailable, using defaults", zap.String("content", what), zap.Error(err))
		return
	}
	l.logger.Debug("remote content empty, using defaults", zap.String("content", what))
}

// HomePage is the data for the home page.
type HomePage struct {
	Services []content.Service
	Blogs    []content.Blog
	Banner   *content.Banner
	Fallback bool
}

// Home fetches services, featured posts and the home banner together and
// proceeds with whichever succeeded.
func (l *Loader) Home(ctx context.Context) HomePage {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	var (
		services    []content.Service
		blogs       []content.Blog
		banner      *content.Banner
		servicesErr error
		blogsErr    error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services, servicesErr = l.src.Services.List(gctx, homeServicesQuery)
		return nil
	})
	g.Go(func() error {
		blogs, blogsErr = l.src.Blogs.Featured(gctx)
		return nil
	})
	g.Go(func() error {
		banner = l.banner(gctx, "home")
		return nil
	})
	_ = g.Wait()

	page := HomePage{Banner: banner}
	if servicesErr != nil || len(services) == 0 {
		l.fellBack("home services", servicesErr)
		services = content.DefaultServices()
		page.Fallback = true
	}
	if blogsErr != nil || len(blogs) == 0 {
		l.fellBack("featured posts", blogsErr)
		blogs = content.DefaultBlogs()
		page.Fallback = true
	}
	page.Services = services[:min(len(services), homeServiceLimit)]
	page.Blogs = blogs[:min(len(blogs), homeBlogLimit)]
	return page
}

// ServicesPage is the data for the services list and detail pages.
type ServicesPage struct {
	Services []content.Service
	Selected *content.Service
	Banner   *content.Banner
	Fallback bool
}

// Services fetches the offerings. When identifier is set, Selected is the
// matching offering (by slug or id) or nil when none exists.
func (l *Loader) Services(ctx context.Context, identifier string) ServicesPage {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	var (
		list    []content.Service
		listErr error
		banner  *content.Banner
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, listErr = l.src.Services.List(gctx, "")
		return nil
	})
	g.Go(func() error {
		banner = l.banner(gctx, "services")
		return nil
	})
	_ = g.Wait()

	page := ServicesPage{Services: list, Banner: banner}
	if listErr != nil || len(list) == 0 {
		l.fellBack("services", listErr)
		page.Services = content.DefaultServices()
		page.Fallback = true
	}

	if identifier == "" {
		return page
	}
	if s, ok := content.FindService(page.Services, identifier); ok {
		page.Selected = &s
		return page
	}
	if !page.Fallback {
		if s, err := l.src.Services.Get(ctx, identifier); err == nil && s != nil && s.Name != "" {
			page.Selected = s
		}
	}
	return page
}

// BlogPage is the data for the blog list and post pages.
type BlogPage struct {
	Posts      []content.Blog
	Featured   *content.Blog
	Categories []string
	Search     string
	Category   string
	Selected   *content.Blog
	Total      int
	Fallback   bool
}

// Blog fetches posts and categories together, then applies the visitor's
// search and category filter locally. When identifier is set, Selected is
// the matching post or nil.
func (l *Loader) Blog(ctx context.Context, identifier, search, category string) BlogPage {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	if category == "" {
		category = content.AllCategories
	}

	var (
		list       *api.BlogList
		listErr    error
		categories []string
		catErr     error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, listErr = l.src.Blogs.List(gctx, blogListQuery)
		return nil
	})
	g.Go(func() error {
		categories, catErr = l.src.Blogs.Categories(gctx)
		return nil
	})
	_ = g.Wait()

	page := BlogPage{Search: search, Category: category}
	var posts []content.Blog
	if listErr == nil && list != nil && len(list.Blogs) > 0 {
		posts = list.Blogs
	} else {
		l.fellBack("posts", listErr)
		posts = content.DefaultBlogs()
		page.Fallback = true
	}

	if catErr == nil && len(categories) > 0 && !page.Fallback {
		page.Categories = append([]string{content.AllCategories}, categories...)
	} else {
		page.Categories = content.Categories(posts)
	}

	if identifier != "" {
		if b, ok := content.FindBlog(posts, identifier); ok {
			page.Selected = &b
		} else if !page.Fallback {
			if b, err := l.src.Blogs.Get(ctx, identifier); err == nil && b != nil && b.Title != "" {
				page.Selected = b
			}
		}
		return page
	}

	page.Total = len(posts)
	filtered := content.FilterBlogs(posts, search, category)
	if f, ok := content.Featured(posts); ok && search == "" && category == content.AllCategories {
		page.Featured = &f
		filtered = content.Without(filtered, f.ID)
	}
	page.Posts = filtered
	return page
}

// Banner returns the active banner for page, or nil. Banners are
// decorative, so failures are silent.
func (l *Loader) Banner(ctx context.Context, page string) *content.Banner {
	ctx, cancel := l.bound(ctx)
	defer cancel()
	return l.banner(ctx, page)
}

func (l *Loader) banner(ctx context.Context, page string) *content.Banner {
	if l.src.Banners == nil {
		return nil
	}
	b, err := l.src.Banners.Active(ctx, page)
	if err != nil {
		l.logger.Debug("banner unavailable", zap.String("page", page), zap.Error(err))
		return nil
	}
	return b
}

// SubmitContact validates req locally and, only if it is valid, sends it.
// The returned request is the trimmed form, suitable for re-rendering.
// Validation failures are content.FieldErrors; send failures come from the
// gateway unchanged.
func (l *Loader) SubmitContact(ctx context.Context, req content.ContactRequest) (content.ContactRequest, error) {
	req, err := content.ValidateContact(req)
	if err != nil {
		return req, err
	}
	ctx, cancel := l.bound(ctx)
	defer cancel()
	if err := l.src.Contact.Submit(ctx, req); err != nil {
		l.logger.Warn("contact submission failed", zap.Error(err))
		return req, err
	}
	l.logger.Info("contact submission sent", zap.String("subject", req.Subject))
	return req, nil
}
