package auth

import (
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("a fine password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "a fine password" {
		t.Fatal("expected the hash to differ from the password")
	}
	if !VerifyPassword(hash, "a fine password") {
		t.Fatal("expected the right password to verify")
	}
	if VerifyPassword(hash, "a wrong password") {
		t.Fatal("expected a wrong password not to verify")
	}
}

func TestSignAndParseToken(t *testing.T) {
	m := NewTokenManager("test secret", time.Hour)

	token, err := m.Sign(42)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatal("expected a non-empty token")
	}
	if !token.ExpiresAt.After(time.Now()) {
		t.Fatal("expected the token to expire in the future")
	}

	id, err := m.Parse(token.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user id 42, got %d", id)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewTokenManager("one secret", time.Hour)
	verifier := NewTokenManager("another secret", time.Hour)

	token, err := signer.Sign(7)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := verifier.Parse(token.AccessToken); err == nil {
		t.Fatal("expected a token signed with another secret to be rejected")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test secret", -time.Minute)

	token, err := m.Sign(7)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := m.Parse(token.AccessToken); err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test secret", time.Hour)
	if _, err := m.Parse("not a token at all"); err == nil {
		t.Fatal("expected garbage to be rejected")
	}
}
