// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// public blog.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// Comment submissions per client IP within the sliding window.
const (
	commentRateLimit  = 5
	commentRateWindow = time.Minute
)

// New creates and returns the configured Chi router. The returned stop
// function releases the rate limiter's background goroutine.
func New(public *handlers.Public) (chi.Router, func()) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Listing routes. The archive and tag variants share the listing
	// handler; the search query layers on top of any of them.
	r.Get("/", public.PostList)
	r.Get("/archive/{year}/{month}", public.PostList)
	r.Get("/tag/{slug}", public.PostList)

	// Post detail, addressed by UTC publish date plus slug.
	r.Get("/{year}/{month}/{day}/{slug}", public.PostDetail)

	// Comment submission — rate limited per client IP.
	limiter := middleware.NewRateLimiter(commentRateLimit, commentRateWindow)
	r.With(limiter.Middleware).Post("/{year}/{month}/{day}/{slug}/comments", public.CommentCreate)

	return r, limiter.Stop
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
