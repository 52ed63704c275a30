package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when the users table is empty; calling it twice
	// must not duplicate anything. We don't clear the database first because
	// other test packages may run concurrently against the same instance.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'author@inkwell.local'").Scan(&userCount); err != nil {
		t.Fatalf("count authors: %v", err)
	}
	if userCount != 1 {
		t.Errorf("expected exactly 1 seeded author, got %d", userCount)
	}

	var postCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&postCount); err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if postCount < 1 {
		t.Errorf("expected seeded posts, got %d", postCount)
	}

	// The seed includes one future-dated post for visibility checks.
	var futureCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts WHERE published_at > NOW()").Scan(&futureCount); err != nil {
		t.Fatalf("count future posts: %v", err)
	}
	if futureCount < 1 {
		t.Errorf("expected at least 1 future-dated seed post, got %d", futureCount)
	}
}
