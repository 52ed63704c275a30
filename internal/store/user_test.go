package store

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/models"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	email := "author-" + uuid.NewString()[:8] + "@example.com"
	created, err := s.Create(&models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Signing Author",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", created.ID) })

	if created.ID == uuid.Nil {
		t.Error("created user has no generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created user has no created_at")
	}

	byEmail, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail == nil {
		t.Fatal("FindByEmail: user not found")
	}
	if byEmail.ID != created.ID {
		t.Errorf("FindByEmail id: got %s, want %s", byEmail.ID, created.ID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(byEmail.PasswordHash), []byte("s3cret")); err != nil {
		t.Errorf("stored password hash does not verify: %v", err)
	}

	byID, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil {
		t.Fatal("FindByID: user not found")
	}
	if byID.Email != email {
		t.Errorf("FindByID email: got %q, want %q", byID.Email, email)
	}
	if byID.DisplayName != "Signing Author" {
		t.Errorf("FindByID display name: got %q", byID.DisplayName)
	}
}

func TestUserStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	u, err := s.FindByEmail("nobody-" + uuid.NewString()[:8] + "@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u != nil {
		t.Errorf("unknown email: got user %q, want nil", u.Email)
	}

	u, err = s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u != nil {
		t.Errorf("unknown id: got user %q, want nil", u.Email)
	}
}
