// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAuthor creates a throwaway author and schedules its removal; posts
// and comments cascade with it.
func testAuthor(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()

	u, err := NewUserStore(db).Create(&models.User{
		Email:        "test-author-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		DisplayName:  "Test Author",
	})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u.ID
}

// testPost inserts a post for the author at the given publish time.
func testPost(t *testing.T, db *sql.DB, authorID uuid.UUID, title string, published time.Time) models.Post {
	t.Helper()

	s := NewPostStore(db)
	p, err := s.Create(&models.Post{
		Title:       title,
		Slug:        "test-" + uuid.NewString()[:8],
		AuthorID:    authorID,
		Body:        "test body",
		PublishedAt: published,
	})
	if err != nil {
		t.Fatalf("insert test post: %v", err)
	}
	return *p
}

// testTag inserts a tag and schedules its removal.
func testTag(t *testing.T, db *sql.DB, name string) models.Tag {
	t.Helper()

	s := NewTagStore(db)
	unique := name + "-" + uuid.NewString()[:8]
	tag, err := s.Create(unique, unique)
	if err != nil {
		t.Fatalf("insert test tag: %v", err)
	}
	t.Cleanup(func() { s.Delete(tag.ID) })
	return *tag
}
