package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if manager == nil {
		t.Fatal("expected JWTManager to be created")
	}
	if manager.secretKey != "test-secret" {
		t.Errorf("expected secretKey 'test-secret', got '%s'", manager.secretKey)
	}
	if manager.TokenDuration() != time.Hour {
		t.Errorf("expected tokenDuration 1h, got %v", manager.TokenDuration())
	}
}

func TestGenerateToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", 7*24*time.Hour)

	token, expiresAt, err := manager.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token == "" {
		t.Error("expected non-empty token")
	}

	expectedExpiry := time.Now().Add(7 * 24 * time.Hour)
	if expiresAt.Before(expectedExpiry.Add(-time.Minute)) || expiresAt.After(expectedExpiry.Add(time.Minute)) {
		t.Errorf("expiry time not within expected range")
	}
}

func TestValidateToken_Valid(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	token, expiresAt, err := manager.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected UserID 'user-123', got '%s'", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("expected a token id (jti)")
	}
	if claims.ExpiresAtTime().Unix() != expiresAt.Unix() {
		t.Errorf("expected expiry %v, got %v", expiresAt, claims.ExpiresAtTime())
	}
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	t1, _, _ := manager.GenerateToken("user-123")
	t2, _, _ := manager.GenerateToken("user-123")

	c1, err := manager.ValidateToken(t1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c2, err := manager.ValidateToken(t2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c1.ID == c2.ID {
		t.Error("expected distinct jti per issued token")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret-key", -time.Hour)

	token, _, err := manager.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = manager.ValidateToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_ExpiresAfterSevenDays(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	manager := NewJWTManager("test-secret-key", 7*24*time.Hour)
	manager.now = func() time.Time { return issued }

	token, _, err := manager.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	manager.now = func() time.Time { return issued.Add(7*24*time.Hour - time.Minute) }
	if _, err := manager.ValidateToken(token); err != nil {
		t.Errorf("expected token to be valid just before expiry, got %v", err)
	}

	manager.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired after 7 days, got %v", err)
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager("secret-key-1", time.Hour)
	manager2 := NewJWTManager("secret-key-2", time.Hour)

	token, _, err := manager1.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = manager2.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	claims := &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected unsigned token to be rejected, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	_, err := manager.ValidateToken("not-a-valid-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestValidateToken_EmptyToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	_, err := manager.ValidateToken("")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty token, got %v", err)
	}
}
