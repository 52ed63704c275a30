// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// postColumns is the canonical column list for scanning posts.
const postColumns = `p.id, p.title, p.slug, p.author_id, p.body,
       p.featured_image_url, p.published_at, p.created_at, p.updated_at`

// PostStore handles all post-related database operations. Every read method
// takes the evaluation time explicitly and returns only posts published at
// or before it — future-dated posts are invisible on every path.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// ListVisible returns all posts visible at the given time, newest first,
// with tags attached.
func (s *PostStore) ListVisible(now time.Time) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.published_at <= $1
		ORDER BY p.published_at DESC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list visible posts: %w", err)
	}
	return s.collect(rows)
}

// ListVisibleByMonth returns visible posts published within the given UTC
// calendar month, newest first.
func (s *PostStore) ListVisibleByMonth(now time.Time, year, month int) ([]models.Post, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.published_at <= $1
		  AND p.published_at >= $2 AND p.published_at < $3
		ORDER BY p.published_at DESC
	`, now, start, end)
	if err != nil {
		return nil, fmt.Errorf("list posts by month: %w", err)
	}
	return s.collect(rows)
}

// ListVisibleByTag returns visible posts carrying the given tag, newest first.
func (s *PostStore) ListVisibleByTag(now time.Time, tagID uuid.UUID) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN posts_tags pt ON pt.post_id = p.id
		WHERE p.published_at <= $1 AND pt.tag_id = $2
		ORDER BY p.published_at DESC
	`, now, tagID)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	return s.collect(rows)
}

// FindVisibleByDateSlug retrieves the visible post matching the UTC publish
// day and slug, as addressed by detail URLs. Returns nil if no visible post
// matches — including when the post exists but is future-dated.
func (s *PostStore) FindVisibleByDateSlug(now time.Time, year, month, day int, slugParam string) (*models.Post, error) {
	dayStart := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	p := &models.Post{}
	err := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.slug = $1
		  AND p.published_at <= $2
		  AND p.published_at >= $3 AND p.published_at < $4
	`, slugParam, now, dayStart, dayEnd).Scan(
		&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.Body,
		&p.FeaturedImageURL, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by date and slug: %w", err)
	}

	posts := []models.Post{*p}
	if err := s.attachTags(posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// ListVisibleSharingTags returns visible posts that share at least one of
// the given tags, excluding the reference post, newest first. The caller
// ranks them by overlap; a post sharing no tags never appears here.
func (s *PostStore) ListVisibleSharingTags(now time.Time, exclude uuid.UUID, tagIDs []uuid.UUID) ([]models.Post, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	// Build placeholder list for the IN clause; $1 and $2 are taken.
	placeholders := ""
	args := []any{now, exclude}
	for i, id := range tagIDs {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+3)
		args = append(args, id)
	}

	rows, err := s.db.Query(`
		SELECT DISTINCT `+postColumns+`
		FROM posts p
		JOIN posts_tags pt ON pt.post_id = p.id
		WHERE p.published_at <= $1
		  AND p.id <> $2
		  AND pt.tag_id IN (`+placeholders+`)
		ORDER BY p.published_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts sharing tags: %w", err)
	}
	return s.collect(rows)
}

// ListLatest returns the most recent visible posts, for the sidebar rail.
// Tags are not attached.
func (s *PostStore) ListLatest(now time.Time, limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.published_at <= $1
		ORDER BY p.published_at DESC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListArchiveMonths returns the distinct UTC months that have visible
// posts, newest first, with post counts.
func (s *PostStore) ListArchiveMonths(now time.Time) ([]models.ArchiveMonth, error) {
	rows, err := s.db.Query(`
		SELECT EXTRACT(YEAR FROM timezone('UTC', published_at))::int AS year,
		       EXTRACT(MONTH FROM timezone('UTC', published_at))::int AS month,
		       COUNT(*)::int
		FROM posts
		WHERE published_at <= $1
		GROUP BY year, month
		ORDER BY year DESC, month DESC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list archive months: %w", err)
	}
	defer rows.Close()

	var months []models.ArchiveMonth
	for rows.Next() {
		var m models.ArchiveMonth
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return nil, fmt.Errorf("scan archive month: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// Create inserts a new post and returns it with the generated ID.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRow(`
		INSERT INTO posts (title, slug, author_id, body, featured_image_url, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, slug, author_id, body,
		          featured_image_url, published_at, created_at, updated_at
	`, p.Title, p.Slug, p.AuthorID, p.Body, p.FeaturedImageURL, p.PublishedAt).Scan(
		&result.ID, &result.Title, &result.Slug, &result.AuthorID, &result.Body,
		&result.FeaturedImageURL, &result.PublishedAt, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// SetTags replaces a post's tag set in one transaction.
func (s *PostStore) SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set tags begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("set tags clear: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`
			INSERT INTO posts_tags (post_id, tag_id) VALUES ($1, $2)
		`, postID, tagID); err != nil {
			return fmt.Errorf("set tags insert: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a post by ID; its comments cascade.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// collect scans all rows and batch-attaches tags.
func (s *PostStore) collect(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()
	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTags(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// scanPosts reads post rows into a slice.
func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.Body,
			&p.FeaturedImageURL, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// attachTags loads tags for all given posts in a single query and fills
// each post's Tags slice in place.
func (s *PostStore) attachTags(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	// Build placeholder list for the IN clause.
	placeholders := ""
	args := make([]any, len(posts))
	index := make(map[uuid.UUID]*models.Post, len(posts))
	for i := range posts {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
		args[i] = posts[i].ID
		index[posts[i].ID] = &posts[i]
	}

	rows, err := s.db.Query(`
		SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
		FROM posts_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (`+placeholders+`)
		ORDER BY t.name
	`, args...)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		if p, ok := index[postID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}
