package validate

import (
	"errors"
	"testing"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
)

func TestCheckCollectsFirstFailurePerKey(t *testing.T) {
	v := New()
	v.Check(false, "name", "first message")
	v.Check(false, "name", "second message")
	v.Check(true, "email", "should not appear")

	err := v.Err()
	if err == nil {
		t.Fatal("expected an error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an *apperr.Error, got %T", err)
	}
	if appErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", appErr.Status)
	}
	if appErr.Fields["name"] != "first message" {
		t.Fatalf("expected the first message to win, got %q", appErr.Fields["name"])
	}
	if _, ok := appErr.Fields["email"]; ok {
		t.Fatal("expected no message for a passing check")
	}
}

func TestErrNilWhenClean(t *testing.T) {
	v := New()
	v.Check(true, "anything", "never recorded")
	if v.HasErrors() {
		t.Fatal("expected no errors")
	}
	if err := v.Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCheckEmail(t *testing.T) {
	for _, email := range []string{"", "missing-at.example.com", "a@", "@example.com"} {
		v := New()
		v.CheckEmail(email)
		if !v.HasErrors() {
			t.Errorf("expected %q to be rejected", email)
		}
	}
	v := New()
	v.CheckEmail("someone@example.com")
	if v.HasErrors() {
		t.Fatal("expected a valid email to pass")
	}
}

func TestCheckPassword(t *testing.T) {
	for _, password := range []string{"", "short", string(make([]byte, 80))} {
		v := New()
		v.CheckPassword(password)
		if !v.HasErrors() {
			t.Errorf("expected %q to be rejected", password)
		}
	}
	v := New()
	v.CheckPassword("long enough password")
	if v.HasErrors() {
		t.Fatal("expected a valid password to pass")
	}
}
