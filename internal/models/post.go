// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Post is a blog post. A post becomes visible to readers once its publish
// timestamp is reached; future-dated posts stay hidden from every read path.
// Slugs are unique per UTC publish date, not globally.
type Post struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	AuthorID         uuid.UUID `json:"author_id"`
	Body             string    `json:"body"`
	FeaturedImageURL *string   `json:"featured_image_url,omitempty"`
	PublishedAt      time.Time `json:"published_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Tags is populated by the post store's batch tag loading.
	Tags []Tag `json:"tags,omitempty"`
}

// IsVisible reports whether the post is published relative to the given time.
func (p *Post) IsVisible(now time.Time) bool {
	return !p.PublishedAt.After(now)
}

// URL returns the canonical detail path, dated by the UTC publish day.
func (p *Post) URL() string {
	d := p.PublishedAt.UTC()
	return fmt.Sprintf("/%d/%02d/%02d/%s", d.Year(), int(d.Month()), d.Day(), p.Slug)
}

// TagIDSet returns the post's tag IDs as a set for overlap computation.
func (p *Post) TagIDSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		set[t.ID] = struct{}{}
	}
	return set
}

// ArchiveMonth is one entry of the archive rail: a calendar month with at
// least one visible post, plus its post count.
type ArchiveMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// URL returns the archive listing path for the month.
func (m ArchiveMonth) URL() string {
	return fmt.Sprintf("/archive/%d/%d", m.Year, m.Month)
}

// Name returns the month formatted for display, e.g. "March 2026".
func (m ArchiveMonth) Name() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month).String(), m.Year)
}
