// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListActiveByPost returns a post's active comments, newest first.
// Comments held back by moderation never render.
func (s *CommentStore) ListActiveByPost(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, name, email, body, active, created_at, updated_at
		FROM comments
		WHERE post_id = $1 AND active = TRUE
		ORDER BY created_at DESC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list active comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body,
			&c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create inserts a new comment bound to its post and returns the persisted
// row. The moderation flag is stored as given, so a caller can create a
// comment already held back. The success response renders from this
// instance, never from the pre-insert form value.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	result := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, name, email, body, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, post_id, name, email, body, active, created_at, updated_at
	`, c.PostID, c.Name, c.Email, c.Body, c.Active).Scan(
		&result.ID, &result.PostID, &result.Name, &result.Email, &result.Body,
		&result.Active, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}
