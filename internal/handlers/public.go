// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the public HTTP surface of the blog: post
// listings with month/tag/search filtering, post detail with similar
// posts and comments, and comment submission.
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/cache"
	"inkwell/internal/listing"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/store"
)

const sidebarLatestLimit = 5

// Public serves the reader-facing pages. The page cache is optional; a
// nil cache disables full-page caching without changing behavior.
type Public struct {
	posts    *store.PostStore
	tags     *store.TagStore
	comments *store.CommentStore
	users    *store.UserStore
	renderer *render.Renderer
	pages    *cache.PageCache
}

func NewPublic(posts *store.PostStore, tags *store.TagStore, comments *store.CommentStore, users *store.UserStore, renderer *render.Renderer, pages *cache.PageCache) *Public {
	return &Public{
		posts:    posts,
		tags:     tags,
		comments: comments,
		users:    users,
		renderer: renderer,
		pages:    pages,
	}
}

// PostList serves the main listing plus its archive and tag variants.
// The same handler backs "/", "/archive/{year}/{month}" and "/tag/{slug}";
// the title search layers on top of whichever filter the route selected.
func (h *Public) PostList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()
	partial := render.IsPartial(r)

	values := r.URL.Query()
	_, queryPresent := values["query"]

	// Search results and partial fragments are never cached.
	cacheable := h.pages != nil && !partial && !queryPresent
	cacheKey := r.URL.RequestURI()
	if cacheable {
		if html, ok := h.pages.Get(ctx, cacheKey); ok {
			writeHTML(w, http.StatusOK, html)
			return
		}
	}

	filter, ok := h.resolveFilter(w, r)
	if !ok {
		return
	}

	posts, err := h.fetchPosts(now, filter)
	if err != nil {
		slog.Error("list posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var searchQuery string
	if queryPresent {
		form := SearchForm{Query: strings.TrimSpace(values.Get("query"))}
		if err := validate.Struct(form); err != nil {
			http.Error(w, "Invalid search query", http.StatusBadRequest)
			return
		}
		searchQuery = form.Query
		posts = listing.SearchByTitle(searchQuery, posts)
	}

	paginator := listing.NewPaginator(posts)
	page, err := paginator.PageFromToken(values.Get("page"))
	if err != nil {
		// Past the last page. A partial fetch gets an empty body so the
		// client stops appending; a full page clamps to the last page.
		if partial {
			writeHTML(w, http.StatusOK, nil)
			return
		}
		page = paginator.LastPage()
	}

	data := render.ListData{
		Title:        listTitle(filter, searchQuery, queryPresent),
		Filter:       filter,
		Page:         page,
		TotalResults: len(posts),
		Query:        searchQuery,
		QueryPresent: queryPresent,
		BasePath:     basePath(filter),
		Sidebar:      h.sidebar(now),
	}

	var buf bytes.Buffer
	if partial {
		err = h.renderer.Fragment(&buf, "list", "post_items", data)
	} else {
		err = h.renderer.Render(&buf, "list", data)
	}
	if err != nil {
		slog.Error("render listing", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
	if cacheable {
		h.pages.Set(ctx, cacheKey, buf.Bytes())
	}
}

// PostDetail serves one post by its dated URL, with similar posts and
// active comments.
func (h *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	// The search box submits relative to the current page; a search from
	// a detail page routes back to the main listing.
	if r.URL.Query().Has("query") {
		q := r.URL.Query().Get("query")
		http.Redirect(w, r, "/?query="+url.QueryEscape(q), http.StatusFound)
		return
	}

	cacheable := h.pages != nil
	cacheKey := r.URL.RequestURI()
	if cacheable {
		if html, ok := h.pages.Get(ctx, cacheKey); ok {
			writeHTML(w, http.StatusOK, html)
			return
		}
	}

	post, ok := h.findPost(w, r, now)
	if !ok {
		return
	}

	data := h.detailData(now, post, render.CommentFormData{})

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, "detail", data); err != nil {
		slog.Error("render detail", "error", err, "post_id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
	if cacheable {
		h.pages.Set(ctx, cacheKey, buf.Bytes())
	}
}

// CommentCreate accepts a comment submission for a post. A valid comment
// is persisted and answered with a redirect to the post's comment
// section; an invalid one re-renders the detail page with the submitted
// values and the first validation error.
func (h *Public) CommentCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	post, ok := h.findPost(w, r, now)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := CommentForm{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Body:  strings.TrimSpace(r.PostFormValue("body")),
	}

	if err := validate.Struct(form); err != nil {
		data := h.detailData(now, post, render.CommentFormData{
			Name:  form.Name,
			Email: form.Email,
			Body:  form.Body,
			Error: commentFormError(err),
		})

		var buf bytes.Buffer
		if err := h.renderer.Render(&buf, "detail", data); err != nil {
			slog.Error("render detail", "error", err, "post_id", post.ID)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusUnprocessableEntity, buf.Bytes())
		return
	}

	created, err := h.comments.Create(&models.Comment{
		PostID: post.ID,
		Name:   form.Name,
		Email:  form.Email,
		Body:   form.Body,
		Active: true,
	})
	if err != nil {
		slog.Error("create comment", "error", err, "post_id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("comment created", "comment_id", created.ID, "post_id", post.ID)

	if h.pages != nil {
		h.pages.Invalidate(ctx, post.URL())
	}
	http.Redirect(w, r, post.URL()+"#comments", http.StatusSeeOther)
}

// resolveFilter maps the matched route parameters to a listing filter.
// It writes the response itself on a malformed date or unknown tag.
func (h *Public) resolveFilter(w http.ResponseWriter, r *http.Request) (listing.Filter, bool) {
	if yearStr := chi.URLParam(r, "year"); yearStr != "" {
		year, yerr := strconv.Atoi(yearStr)
		month, merr := strconv.Atoi(chi.URLParam(r, "month"))
		if yerr != nil || merr != nil || month < 1 || month > 12 {
			http.NotFound(w, r)
			return listing.Filter{}, false
		}
		return listing.ByMonth(year, month), true
	}

	if tagSlug := chi.URLParam(r, "slug"); tagSlug != "" {
		tag, err := h.tags.FindBySlug(tagSlug)
		if err != nil {
			slog.Error("find tag", "error", err, "slug", tagSlug)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return listing.Filter{}, false
		}
		if tag == nil {
			http.NotFound(w, r)
			return listing.Filter{}, false
		}
		return listing.ByTag(tag), true
	}

	return listing.NoFilter(), true
}

func (h *Public) fetchPosts(now time.Time, filter listing.Filter) ([]models.Post, error) {
	switch filter.Kind {
	case listing.FilterByMonth:
		return h.posts.ListVisibleByMonth(now, filter.Year, filter.Month)
	case listing.FilterByTag:
		return h.posts.ListVisibleByTag(now, filter.Tag.ID)
	default:
		return h.posts.ListVisible(now)
	}
}

// findPost resolves the dated detail URL to a visible post. It writes
// the 404 itself when the date is malformed or nothing matches.
func (h *Public) findPost(w http.ResponseWriter, r *http.Request, now time.Time) (*models.Post, bool) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	day, derr := strconv.Atoi(chi.URLParam(r, "day"))
	slugParam := chi.URLParam(r, "slug")
	if yerr != nil || merr != nil || derr != nil || month < 1 || month > 12 || day < 1 || day > 31 || slugParam == "" {
		http.NotFound(w, r)
		return nil, false
	}

	post, err := h.posts.FindVisibleByDateSlug(now, year, month, day, slugParam)
	if err != nil {
		slog.Error("find post", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return post, true
}

// detailData assembles the detail bundle: the post with its author byline,
// its similar posts ranked by shared-tag count, and its active comments.
// Rail failures are logged and degrade to empty sections rather than
// failing the page.
func (h *Public) detailData(now time.Time, post *models.Post, form render.CommentFormData) render.DetailData {
	data := render.DetailData{
		Title:       post.Title,
		Post:        post,
		CommentForm: form,
		Sidebar:     h.sidebar(now),
	}

	author, err := h.users.FindByID(post.AuthorID)
	if err != nil {
		slog.Error("load author", "error", err, "post_id", post.ID)
	}
	data.Author = author

	tagIDs := make([]uuid.UUID, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	candidates, err := h.posts.ListVisibleSharingTags(now, post.ID, tagIDs)
	if err != nil {
		slog.Error("load similar posts", "error", err, "post_id", post.ID)
	}
	data.SimilarPosts = listing.SimilarPosts(post, candidates)

	comments, err := h.comments.ListActiveByPost(post.ID)
	if err != nil {
		slog.Error("load comments", "error", err, "post_id", post.ID)
	}
	data.Comments = comments
	data.CommentCount = len(comments)

	return data
}

// sidebar loads the rails shared by every page. Each rail fails soft.
func (h *Public) sidebar(now time.Time) render.Sidebar {
	var sb render.Sidebar

	latest, err := h.posts.ListLatest(now, sidebarLatestLimit)
	if err != nil {
		slog.Error("load latest posts", "error", err)
	}
	sb.LatestPosts = latest

	months, err := h.posts.ListArchiveMonths(now)
	if err != nil {
		slog.Error("load archive months", "error", err)
	}
	sb.ArchiveMonths = months

	tags, err := h.tags.List()
	if err != nil {
		slog.Error("load tags", "error", err)
	}
	sb.Tags = tags

	return sb
}

func listTitle(filter listing.Filter, query string, queryPresent bool) string {
	switch {
	case queryPresent:
		return fmt.Sprintf("Search: %s", query)
	case filter.Label() != "":
		return filter.Label()
	default:
		return "Latest writing"
	}
}

func basePath(filter listing.Filter) string {
	switch filter.Kind {
	case listing.FilterByMonth:
		return fmt.Sprintf("/archive/%d/%d", filter.Year, filter.Month)
	case listing.FilterByTag:
		return filter.Tag.URL()
	default:
		return "/"
	}
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
