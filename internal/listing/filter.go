// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing implements the post listing pipeline: the base filter
// selection, trigram title search, tag-overlap "similar posts" ranking, and
// fixed-size pagination. Everything here is pure computation over posts the
// stores have already fetched; "now" is always passed in by the caller.
package listing

import (
	"fmt"

	"inkwell/internal/models"
)

// FilterKind discriminates the base listing filter. Month and tag filters
// never combine: a request carries one or the other, or neither. The text
// query stage layers on top of whichever base filter was selected.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterByMonth
	FilterByTag
)

// Filter is the resolved base filter for a listing request.
type Filter struct {
	Kind  FilterKind
	Year  int
	Month int
	Tag   *models.Tag
}

// NoFilter returns the unfiltered main listing.
func NoFilter() Filter {
	return Filter{Kind: FilterNone}
}

// ByMonth filters to posts published within the given calendar month.
func ByMonth(year, month int) Filter {
	return Filter{Kind: FilterByMonth, Year: year, Month: month}
}

// ByTag filters to posts carrying the resolved tag.
func ByTag(tag *models.Tag) Filter {
	return Filter{Kind: FilterByTag, Tag: tag}
}

// Label returns a short human-readable description of the active filter,
// used by the listing heading. Empty for the unfiltered listing.
func (f Filter) Label() string {
	switch f.Kind {
	case FilterByMonth:
		return models.ArchiveMonth{Year: f.Year, Month: f.Month}.Name()
	case FilterByTag:
		return fmt.Sprintf("#%s", f.Tag.Name)
	default:
		return ""
	}
}
