// Package content holds the site's content models, the bundled default
// content shown when the remote service is unavailable, and the helpers
// pages use to search, filter and render it.
package content

import "time"

// Service is one bookable offering.
type Service struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon,omitempty"`
	Features         []string `json:"features,omitempty"`
	Price            string   `json:"price,omitempty"`
	IsPopular        bool     `json:"isPopular"`
}

// Blog is one post. Content is markdown.
type Blog struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
	ReadingTime int    `json:"readingTime"`
	IsFeatured  bool   `json:"isFeatured"`
	Content     string `json:"content,omitempty"`
}

// Published parses CreatedAt, which the service sends either as a date or
// a full timestamp. It returns the zero time when neither parses.
func (b Blog) Published() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, b.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Banner is a promotional strip for one page.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Page     string `json:"page"`
	CTAText  string `json:"ctaText,omitempty"`
	CTALink  string `json:"ctaLink,omitempty"`
	Image    string `json:"image,omitempty"`
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"min=2"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Subject string `json:"subject" form:"subject" validate:"min=3"`
	Message string `json:"message" form:"message" validate:"min=10"`
	Service string `json:"service,omitempty" form:"service"`
}
