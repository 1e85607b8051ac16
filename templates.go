package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/Zachkp/magnus-site/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"categoryColor": func(category string) string {
		if c, ok := content.CategoryColors[category]; ok {
			return c
		}
		return "#c9a227"
	},
	"published": func(b content.Blog) string {
		if t := b.Published(); !t.IsZero() {
			return t.Format("January 2, 2006")
		}
		return b.CreatedAt
	},
	"lower": strings.ToLower,
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
