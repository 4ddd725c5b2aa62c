package jwt

import (
	"errors"
	"testing"

	"Receipt-Carbon-Backend/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token := service.GenerateTokenUser("0d9af437-20b7-4a51-a040-a44dbb16f2b1", "user")
	if token == "" {
		t.Fatal("generated token is empty")
	}

	userID, role, err := service.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "0d9af437-20b7-4a51-a040-a44dbb16f2b1" {
		t.Errorf("userID = %q", userID)
	}
	if role != "user" {
		t.Errorf("role = %q", role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token := NewJWTService("secret-a").GenerateTokenUser("some-user", "user")

	if _, _, err := NewJWTService("secret-b").GetUserIDByToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	service := NewJWTService("test-secret")
	if _, _, err := service.GetUserIDByToken("not.a.token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
