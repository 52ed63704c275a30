// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog.
// It supports full-page rendering and HTMX fragment rendering, detecting
// the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"inkwell/internal/listing"
	"inkwell/internal/markdown"
	"inkwell/internal/models"
)

//go:embed templates/blog/*.html
var blogFS embed.FS

// Sidebar carries the rails rendered on every page: the latest posts, the
// archive months, and the tag cloud.
type Sidebar struct {
	LatestPosts   []models.Post
	ArchiveMonths []models.ArchiveMonth
	Tags          []models.Tag
}

// ListData is the result bundle for listing pages: the page of items, the
// pre-pagination total, the active filter, and the query echo.
type ListData struct {
	Title        string
	Filter       listing.Filter
	Page         listing.Page
	TotalResults int
	Query        string
	QueryPresent bool
	BasePath     string
	Sidebar      Sidebar
}

// PageURL builds the listing URL for page n, preserving the search query.
func (d ListData) PageURL(n int) string {
	q := url.Values{}
	if d.QueryPresent {
		q.Set("query", d.Query)
	}
	q.Set("page", strconv.Itoa(n))
	return d.BasePath + "?" + q.Encode()
}

// CommentFormData holds sticky comment form values and the first
// validation error, re-rendered on a rejected submission.
type CommentFormData struct {
	Name  string
	Email string
	Body  string
	Error string
}

// DetailData is the bundle for the post detail page. Query is always
// empty; the base layout's search box reads it on every page.
type DetailData struct {
	Title        string
	Query        string
	Post         *models.Post
	Author       *models.User
	Comments     []models.Comment
	CommentCount int
	SimilarPosts []models.Post
	CommentForm  CommentFormData
	Sidebar      Sidebar
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all blog templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// markdown renders post body Markdown to HTML. Conversion
			// failures fall back to escaped plain text.
			"markdown": func(source string) template.HTML {
				html, err := markdown.ToHTML(source)
				if err != nil {
					return template.HTML(template.HTMLEscapeString(source))
				}
				return template.HTML(html)
			},
			"longDate": func(t time.Time) string {
				return t.UTC().Format("January 2, 2006")
			},
			"shortDate": func(t time.Time) string {
				return t.UTC().Format("Jan 2, 2006")
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
		},
	}

	entries, err := blogFS.ReadDir("templates/blog")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmplName := name[:len(name)-len(".html")]

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			blogFS, "templates/blog/base.html", "templates/blog/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Render executes the named page template with the full base layout.
func (rn *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Fragment executes a single named block of a page template, used for
// HTMX partial responses.
func (rn *Renderer) Fragment(w io.Writer, name, block string, data any) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, block, data)
}

// IsPartial reports whether the request asks for a content fragment
// rather than a full document (the HTMX partial-fetch signal).
func IsPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
