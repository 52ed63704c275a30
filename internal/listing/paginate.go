// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"errors"
	"strconv"

	"inkwell/internal/models"
)

// PageSize is the fixed page size for every listing context (main, tag,
// archive, search).
const PageSize = 4

// ErrPageOutOfRange is returned when a numeric page token exceeds the last
// page. The transport layer decides the policy: partial fetches answer with
// an empty result, full-page requests clamp to the last page.
var ErrPageOutOfRange = errors.New("page out of range")

// Page is one slice of an ordered result set plus its position metadata.
type Page struct {
	Items      []models.Post
	Number     int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a further page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber returns the previous page number.
func (p Page) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the next page number.
func (p Page) NextNumber() int { return p.Number + 1 }

// Paginator slices an ordered post sequence into fixed-size pages.
type Paginator struct {
	items []models.Post
}

// NewPaginator creates a paginator over the given ordered posts.
func NewPaginator(items []models.Post) *Paginator {
	return &Paginator{items: items}
}

// TotalPages returns the page count. An empty sequence still has one
// (empty) page.
func (p *Paginator) TotalPages() int {
	if len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + PageSize - 1) / PageSize
}

// Page returns the 1-based page n, or ErrPageOutOfRange if n exceeds the
// last page. Numbers below 1 are normalized to page 1.
func (p *Paginator) Page(n int) (Page, error) {
	if n < 1 {
		n = 1
	}
	total := p.TotalPages()
	if n > total {
		return Page{Number: n, TotalPages: total}, ErrPageOutOfRange
	}

	start := (n - 1) * PageSize
	end := start + PageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return Page{Items: p.items[start:end], Number: n, TotalPages: total}, nil
}

// PageFromToken resolves a request page token. Absent or non-numeric tokens
// normalize to page 1; numeric tokens follow Page's range rules. A numeric
// token past the int limit is still numeric: Atoi clamps it on a range
// error, so Page sees it as out of range (or below 1 when negative) rather
// than as page 1.
func (p *Paginator) PageFromToken(token string) (Page, error) {
	n, err := strconv.Atoi(token)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		n = 1
	}
	return p.Page(n)
}

// LastPage returns the final page. Used to clamp out-of-range full-page
// requests.
func (p *Paginator) LastPage() Page {
	pg, _ := p.Page(p.TotalPages())
	return pg
}
