package api

import (
	"context"
	"net/url"

	"github.com/Zachkp/magnus-site/internal/content"
)

// envelope is the service's response wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

// BlogList is one page of posts.
type BlogList struct {
	Blogs []content.Blog `json:"blogs"`
	Total int            `json:"total,omitempty"`
	Page  int            `json:"page,omitempty"`
	Pages int            `json:"pages,omitempty"`
}

// BlogClient calls the /blogs endpoints.
type BlogClient struct{ c *Client }

// List fetches posts. query is a raw query string suffix such as
// "?limit=6", appended as given.
func (b *BlogClient) List(ctx context.Context, query string) (*BlogList, error) {
	var env envelope[BlogList]
	if err := b.c.Get(ctx, "/blogs"+query, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Get fetches one post by id or slug.
func (b *BlogClient) Get(ctx context.Context, identifier string) (*content.Blog, error) {
	var env envelope[struct {
		Blog content.Blog `json:"blog"`
	}]
	if err := b.c.Get(ctx, "/blogs/"+url.PathEscape(identifier), &env); err != nil {
		return nil, err
	}
	return &env.Data.Blog, nil
}

// Featured fetches the featured posts.
func (b *BlogClient) Featured(ctx context.Context) ([]content.Blog, error) {
	var env envelope[BlogList]
	if err := b.c.Get(ctx, "/blogs/featured", &env); err != nil {
		return nil, err
	}
	return env.Data.Blogs, nil
}

// Categories fetches the post categories.
func (b *BlogClient) Categories(ctx context.Context) ([]string, error) {
	var env envelope[struct {
		Categories []string `json:"categories"`
	}]
	if err := b.c.Get(ctx, "/blogs/categories", &env); err != nil {
		return nil, err
	}
	return env.Data.Categories, nil
}

// ServiceClient calls the /services endpoints.
type ServiceClient struct{ c *Client }

// List fetches offerings. query is appended as given.
func (s *ServiceClient) List(ctx context.Context, query string) ([]content.Service, error) {
	var env envelope[struct {
		Services []content.Service `json:"services"`
	}]
	if err := s.c.Get(ctx, "/services"+query, &env); err != nil {
		return nil, err
	}
	return env.Data.Services, nil
}

// Get fetches one offering by id or slug.
func (s *ServiceClient) Get(ctx context.Context, identifier string) (*content.Service, error) {
	var env envelope[struct {
		Service content.Service `json:"service"`
	}]
	if err := s.c.Get(ctx, "/services/"+url.PathEscape(identifier), &env); err != nil {
		return nil, err
	}
	return &env.Data.Service, nil
}

// ContactClient calls the /contact endpoint.
type ContactClient struct{ c *Client }

// Submit posts a contact form as JSON.
func (cc *ContactClient) Submit(ctx context.Context, req content.ContactRequest) error {
	return cc.c.Post(ctx, "/contact", JSON(req), nil)
}

// BannerClient calls the /banners endpoints.
type BannerClient struct{ c *Client }

// DefaultBannerPage is used when Active is called with an empty page.
const DefaultBannerPage = "home"

// Active fetches the active banner for page. It returns nil, nil when the
// page has no banner.
func (bc *BannerClient) Active(ctx context.Context, page string) (*content.Banner, error) {
	if page == "" {
		page = DefaultBannerPage
	}
	var env envelope[struct {
		Banner *content.Banner `json:"banner"`
	}]
	if err := bc.c.Get(ctx, "/banners/active?page="+url.QueryEscape(page), &env); err != nil {
		return nil, err
	}
	return env.Data.Banner, nil
}
