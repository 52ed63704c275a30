// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"sort"

	"inkwell/internal/models"
)

// SimilarLimit caps the "similar posts" rail. This is a ranking truncation,
// independent of the listing paginator.
const SimilarLimit = 4

// SimilarPosts ranks candidate posts by how many tags they share with the
// reference post. Candidates with zero shared tags are excluded outright —
// never merely ranked last — as is the reference post itself. Ordering is by
// shared-tag count descending, then publish time descending, truncated to
// SimilarLimit.
//
// Overlap is an explicit set intersection over tag IDs, so candidates only
// need their Tags loaded; no join resolution happens here.
func SimilarPosts(ref *models.Post, candidates []models.Post) []models.Post {
	refTags := ref.TagIDSet()
	if len(refTags) == 0 {
		return nil
	}

	type overlapped struct {
		post     models.Post
		sameTags int
	}

	var ranked []overlapped
	for _, c := range candidates {
		if c.ID == ref.ID {
			continue
		}
		same := 0
		for _, t := range c.Tags {
			if _, ok := refTags[t.ID]; ok {
				same++
			}
		}
		if same == 0 {
			continue
		}
		ranked = append(ranked, overlapped{post: c, sameTags: same})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].sameTags != ranked[j].sameTags {
			return ranked[i].sameTags > ranked[j].sameTags
		}
		return ranked[i].post.PublishedAt.After(ranked[j].post.PublishedAt)
	})

	if len(ranked) > SimilarLimit {
		ranked = ranked[:SimilarLimit]
	}

	result := make([]models.Post, len(ranked))
	for i, r := range ranked {
		result[i] = r.post
	}
	return result
}
