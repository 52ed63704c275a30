// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"sort"
	"strings"
	"unicode"

	"inkwell/internal/models"
)

// SimilarityThreshold is the minimum trigram similarity a title must score
// against the query to count as a search match. Posts at or below the
// threshold are dropped, not ranked last.
const SimilarityThreshold = 0.1

// TrigramSimilarity scores two strings in [0,1] following PostgreSQL's
// pg_trgm semantics: both are lowercased and split into alphanumeric words,
// each word is padded with two leading and one trailing space, and the score
// is the ratio of shared trigrams to the union of both trigram sets.
// Identical non-empty strings score 1; strings with no shared trigrams score 0.
func TrigramSimilarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

// trigrams extracts the padded trigram set of a string. The window slides
// over runes, not bytes, so multi-byte characters form whole trigrams.
func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(strings.ToLower(s)) {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// splitWords breaks a string into runs of letters and digits.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SearchByTitle ranks posts by trigram similarity between the query and each
// title. Posts scoring at or below the threshold are excluded entirely; the
// rest are ordered by descending score, stable on the incoming order for
// ties. An empty result is a valid outcome, not an error. The length of the
// returned slice is the pre-pagination total used for "Found N results".
func SearchByTitle(query string, posts []models.Post) []models.Post {
	type scored struct {
		post  models.Post
		score float64
	}

	var matches []scored
	for _, p := range posts {
		if s := TrigramSimilarity(query, p.Title); s > SimilarityThreshold {
			matches = append(matches, scored{post: p, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]models.Post, len(matches))
	for i, m := range matches {
		result[i] = m.post
	}
	return result
}
