package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/slug"
)

// seedPost describes one development post: tags by name and a publish
// offset relative to now (negative = past, positive = future).
type seedPost struct {
	title       string
	body        string
	tags        []string
	monthsAgo   int
	daysOffset  int
	futureDays  int
	commentedBy []string
}

// Seed populates the database with initial development data: one author,
// a handful of tags, posts spread across several months (including one
// future-dated post that must stay invisible), and a few comments.
// It is a no-op if any users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default author password.
	hash, err := bcrypt.GenerateFromPassword([]byte("author"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "author@inkwell.local", string(hash), "Default Author").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	tagIDs := make(map[string]string)
	for _, name := range []string{"go", "postgres", "web", "performance", "tooling"} {
		var id string
		err := db.QueryRow(`
			INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id
		`, name, slug.Generate(name)).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert tag %q: %w", name, err)
		}
		tagIDs[name] = id
	}

	now := time.Now().UTC()
	posts := []seedPost{
		{
			title: "Profiling a slow Postgres query", monthsAgo: 4,
			tags: []string{"postgres", "performance"},
			body: "We traced a listing slowdown to a missing composite index.\n\n```sql\nEXPLAIN ANALYZE SELECT * FROM posts ORDER BY published_at DESC;\n```",
		},
		{
			title: "Structured logging with slog", monthsAgo: 3,
			tags: []string{"go", "tooling"},
			body: "Switching from printf-style logs to `log/slog` made request tracing trivial.",
		},
		{
			title: "Connection pooling notes", monthsAgo: 3, daysOffset: 9,
			tags: []string{"go", "postgres", "performance"},
			body: "Defaults in `database/sql` are conservative; measure before tuning.",
		},
		{
			title: "Writing table-driven tests", monthsAgo: 2,
			tags: []string{"go", "tooling"},
			body: "Table tests keep edge cases visible in one place.",
			commentedBy: []string{"Rita", "Sam"},
		},
		{
			title: "Serving HTML fragments to HTMX", monthsAgo: 1,
			tags: []string{"go", "web"},
			body: "A fragment endpoint is the same handler with a smaller template.",
			commentedBy: []string{"Priya"},
		},
		{
			title: "Caching rendered pages in Valkey", monthsAgo: 1, daysOffset: 12,
			tags: []string{"web", "performance"},
			body: "Full-page caching with a five minute TTL removed the render cost entirely.",
		},
		{
			title: "Scheduled publishing works", futureDays: 14,
			tags: []string{"web"},
			body: "If you can read this on the homepage before its publish date, visibility filtering is broken.",
		},
	}

	for _, p := range posts {
		published := now.AddDate(0, -p.monthsAgo, p.daysOffset)
		if p.futureDays > 0 {
			published = now.AddDate(0, 0, p.futureDays)
		}

		var postID string
		err := db.QueryRow(`
			INSERT INTO posts (title, slug, author_id, body, published_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, p.title, slug.Generate(p.title), authorID, p.body, published).Scan(&postID)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.title, err)
		}

		for _, tagName := range p.tags {
			if _, err := db.Exec(`
				INSERT INTO posts_tags (post_id, tag_id) VALUES ($1, $2)
			`, postID, tagIDs[tagName]); err != nil {
				return fmt.Errorf("seed attach tag %q: %w", tagName, err)
			}
		}

		for _, name := range p.commentedBy {
			if _, err := db.Exec(`
				INSERT INTO comments (post_id, name, email, body)
				VALUES ($1, $2, $3, $4)
			`, postID, name, slug.Generate(name)+"@example.com", "Enjoyed this one, thanks."); err != nil {
				return fmt.Errorf("seed insert comment: %w", err)
			}
		}
	}

	slog.Info("database seeded with development data",
		"author", "author@inkwell.local",
		"posts", len(posts),
	)
	return nil
}
