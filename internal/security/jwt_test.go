package security

import (
	"testing"
	"time"
)

func TestAPITokenRoundTrip(t *testing.T) {
	secret := []byte("test-signing-key")

	tokenString, err := GenerateAPIToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAPIToken() error = %v", err)
	}

	userID, err := UserIDFromAPIToken(tokenString, secret)
	if err != nil {
		t.Fatalf("UserIDFromAPIToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("UserIDFromAPIToken() = %d, want 42", userID)
	}
}

func TestAPITokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateAPIToken(42, []byte("right-key"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateAPIToken() error = %v", err)
	}

	if _, err := UserIDFromAPIToken(tokenString, []byte("wrong-key")); err == nil {
		t.Error("UserIDFromAPIToken() should fail with the wrong secret")
	}
}

func TestAPITokenExpired(t *testing.T) {
	secret := []byte("test-signing-key")
	tokenString, err := GenerateAPIToken(42, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAPIToken() error = %v", err)
	}

	if _, err := UserIDFromAPIToken(tokenString, secret); err == nil {
		t.Error("UserIDFromAPIToken() should reject an expired token")
	}
}

func TestAPITokenGarbage(t *testing.T) {
	if _, err := UserIDFromAPIToken("not-a-token", []byte("key")); err == nil {
		t.Error("UserIDFromAPIToken() should reject garbage input")
	}
}
