package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func TestHashPassword(t *testing.T) {
	password := "securePassword123"

	hash, err := newTestHasher().Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "" {
		t.Error("expected non-empty hash")
	}

	if hash == password {
		t.Error("hash should not equal plaintext password")
	}
}

func TestHashPassword_DifferentHashes(t *testing.T) {
	h := newTestHasher()
	password := "securePassword123"

	hash1, err := h.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash2, err := h.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("same password should produce different hashes due to salt")
	}
}

func TestCheckPassword_Correct(t *testing.T) {
	h := newTestHasher()
	password := "securePassword123"

	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := h.Check(hash, password); err != nil {
		t.Errorf("expected correct password to match, got error: %v", err)
	}
}

func TestCheckPassword_Incorrect(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := h.Check(hash, "wrongPassword456"); err == nil {
		t.Error("expected error for incorrect password")
	}
}

func TestCheckPassword_EmptyPassword(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := h.Check(hash, ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if err := newTestHasher().Check("not-a-valid-bcrypt-hash", "password"); err == nil {
		t.Error("expected error for invalid hash format")
	}
}

func TestNewPasswordHasher_CostBounds(t *testing.T) {
	if got := NewPasswordHasher(0).Cost(); got != bcrypt.DefaultCost {
		t.Errorf("expected default cost for 0, got %d", got)
	}
	if got := NewPasswordHasher(bcrypt.MaxCost + 1).Cost(); got != bcrypt.DefaultCost {
		t.Errorf("expected default cost for out-of-range value, got %d", got)
	}
	if got := NewPasswordHasher(12).Cost(); got != 12 {
		t.Errorf("expected cost 12, got %d", got)
	}
}

func TestCheckDummy_DoesNotPanic(t *testing.T) {
	h := newTestHasher()
	h.CheckDummy("anything")
	h.CheckDummy("")
}
