package content

import "strings"

// AllCategories disables category filtering.
const AllCategories = "All"

// FilterBlogs returns the posts whose title or excerpt contains search
// (case-insensitive) and whose category equals category. An empty search
// matches everything; an empty category or AllCategories matches every
// category. Order is preserved.
func FilterBlogs(blogs []Blog, search, category string) []Blog {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Blog, 0, len(blogs))
	for _, b := range blogs {
		if category != "" && category != AllCategories && b.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Excerpt), needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Categories returns AllCategories followed by each distinct category in
// first-seen order.
func Categories(blogs []Blog) []string {
	seen := make(map[string]bool)
	out := []string{AllCategories}
	for _, b := range blogs {
		if b.Category == "" || seen[b.Category] {
			continue
		}
		seen[b.Category] = true
		out = append(out, b.Category)
	}
	return out
}

// FindService looks an offering up by slug or id.
func FindService(list []Service, identifier string) (Service, bool) {
	for _, s := range list {
		if s.Slug == identifier || s.ID == identifier {
			return s, true
		}
	}
	return Service{}, false
}

// FindBlog looks a post up by slug or id.
func FindBlog(list []Blog, identifier string) (Blog, bool) {
	for _, b := range list {
		if b.Slug == identifier || b.ID == identifier {
			return b, true
		}
	}
	return Blog{}, false
}

// Featured returns the first featured post, or the first post when none is
// flagged.
func Featured(blogs []Blog) (Blog, bool) {
	for _, b := range blogs {
		if b.IsFeatured {
			return b, true
		}
	}
	if len(blogs) > 0 {
		return blogs[0], true
	}
	return Blog{}, false
}

// Without returns blogs minus the post with the given id.
func Without(blogs []Blog, id string) []Blog {
	out := make([]Blog, 0, len(blogs))
	for _, b := range blogs {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
