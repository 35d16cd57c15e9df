package db

import (
	"context"
	"errors"
	"testing"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/auth"
)

func TestCreateUserHashesPassword(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user, err := store.CreateUser(context.Background(), UserCreationInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "very secret password",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.PasswordHash == "very secret password" {
		t.Fatal("expected password to be hashed")
	}
	if !auth.VerifyPassword(user.PasswordHash, "very secret password") {
		t.Fatal("expected hash to verify against the original password")
	}
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	_, err := store.CreateUser(context.Background(), UserCreationInput{
		Name:     "",
		Email:    "not-an-email",
		Password: "short",
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if apperr.StatusOf(err) != 400 {
		t.Fatalf("expected status 400, got %d", apperr.StatusOf(err))
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an *apperr.Error, got %T", err)
	}
	for _, key := range []string{"name", "email", "password"} {
		if _, ok := appErr.Fields[key]; !ok {
			t.Errorf("expected a field message for %q", key)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	mustCreateUser(t, store, "dup@example.com")
	_, err := store.CreateUser(context.Background(), UserCreationInput{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "another long password",
	})
	if apperr.StatusOf(err) != 409 {
		t.Fatalf("expected status 409, got %d (%v)", apperr.StatusOf(err), err)
	}
}

func TestGetUserByEmailAbsent(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user, err := store.GetUserByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestUpdateUser(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "before@example.com")
	updated, err := store.UpdateUser(context.Background(), user.ID, UserUpdateInput{
		Name:  strPtr("Renamed"),
		Email: strPtr("after@example.com"),
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "Renamed" || updated.Email != "after@example.com" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// Unchanged fields keep their value.
	if updated.PasswordHash != user.PasswordHash {
		t.Fatal("expected password hash to be untouched")
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	mustCreateUser(t, store, "taken@example.com")
	user := mustCreateUser(t, store, "mine@example.com")

	_, err := store.UpdateUser(context.Background(), user.ID, UserUpdateInput{
		Email: strPtr("taken@example.com"),
	})
	if apperr.StatusOf(err) != 409 {
		t.Fatalf("expected status 409, got %d (%v)", apperr.StatusOf(err), err)
	}

	// Re-submitting your own email is not a conflict.
	if _, err := store.UpdateUser(context.Background(), user.ID, UserUpdateInput{
		Email: strPtr("mine@example.com"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "cascade@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	project := mustCreateProject(t, store, user.ID, client.ID, "Website")
	task := mustCreateTask(t, store, user.ID, project.ID, "Backend", 10, 25)
	if _, err := store.StartSession(context.Background(), task.ID, user.ID); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := store.CreateTax(context.Background(), user.ID, TaxCreationInput{Label: "IVA", Value: 0.22}); err != nil {
		t.Fatalf("create tax: %v", err)
	}

	if _, err := store.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	for name, count := range map[string]int64{
		"clients":  tableCount(t, store, "clients"),
		"projects": tableCount(t, store, "projects"),
		"tasks":    tableCount(t, store, "tasks"),
		"sessions": tableCount(t, store, "sessions"),
		"taxes":    tableCount(t, store, "taxes"),
	} {
		if count != 0 {
			t.Errorf("expected %s to be empty after user deletion, got %d rows", name, count)
		}
	}
}

func tableCount(t *testing.T, store *Store, table string) int64 {
	t.Helper()
	var count int64
	if err := store.db.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
