package db

import (
	"context"
	"testing"
	"time"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

func TestCreateProjectChecksClientOwnership(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	owner := mustCreateUser(t, store, "p-owner@example.com")
	intruder := mustCreateUser(t, store, "p-intruder@example.com")
	client := mustCreateClient(t, store, owner.ID, "acme")

	_, err := store.CreateProject(context.Background(), intruder.ID, ProjectCreationInput{
		Name:     "Sneaky",
		ClientID: client.ID,
	})
	if apperr.StatusOf(err) != 403 {
		t.Fatalf("expected status 403, got %d (%v)", apperr.StatusOf(err), err)
	}

	_, err = store.CreateProject(context.Background(), owner.ID, ProjectCreationInput{
		Name:     "Doomed",
		ClientID: client.ID + 100,
	})
	if apperr.StatusOf(err) != 404 {
		t.Fatalf("expected status 404, got %d (%v)", apperr.StatusOf(err), err)
	}
}

func TestGetProjectResolvesOwnerThroughClient(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	owner := mustCreateUser(t, store, "p-chain@example.com")
	intruder := mustCreateUser(t, store, "p-chain-intruder@example.com")
	client := mustCreateClient(t, store, owner.ID, "acme")
	project := mustCreateProject(t, store, owner.ID, client.ID, "Website")

	got, err := store.GetProject(context.Background(), project.ID, owner.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.OwnerID != owner.ID {
		t.Fatalf("expected owner id %d, got %d", owner.ID, got.OwnerID)
	}
	if _, err := store.GetProject(context.Background(), project.ID, intruder.ID); apperr.StatusOf(err) != 403 {
		t.Fatalf("expected status 403, got %d (%v)", apperr.StatusOf(err), err)
	}
}

func TestUpdateProjectCashedPair(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "cashed@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	project := mustCreateProject(t, store, user.ID, client.ID, "Website")

	if _, ok := project.CashedData(); ok {
		t.Fatal("expected a fresh project not to be cashed")
	}

	cashedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	updated, err := store.UpdateProject(context.Background(), project.ID, user.ID, ProjectUpdateInput{
		Cashed: &models.Cashed{At: cashedAt, Balance: 1500},
	})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	cashed, ok := updated.CashedData()
	if !ok {
		t.Fatal("expected the project to be cashed")
	}
	if cashed.Balance != 1500 || !cashed.At.Equal(cashedAt) {
		t.Fatalf("unexpected cashed data: %+v", cashed)
	}

	// Clearing removes both columns together.
	updated, err = store.UpdateProject(context.Background(), project.ID, user.ID, ProjectUpdateInput{
		ClearCashed: true,
	})
	if err != nil {
		t.Fatalf("clear cashed: %v", err)
	}
	if updated.CashedAt != nil || updated.CashedBalance != nil {
		t.Fatalf("expected cashed pair to be cleared: %+v", updated)
	}
}

func TestUpdateProjectMoveToForeignClient(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "move@example.com")
	other := mustCreateUser(t, store, "move-other@example.com")
	mine := mustCreateClient(t, store, user.ID, "mine")
	theirs := mustCreateClient(t, store, other.ID, "theirs")
	project := mustCreateProject(t, store, user.ID, mine.ID, "Website")

	_, err := store.UpdateProject(context.Background(), project.ID, user.ID, ProjectUpdateInput{
		ClientID: uintPtr(theirs.ID),
	})
	if apperr.StatusOf(err) != 403 {
		t.Fatalf("expected status 403, got %d (%v)", apperr.StatusOf(err), err)
	}
}

func TestProjectsForUserSpansClients(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "span@example.com")
	first := mustCreateClient(t, store, user.ID, "first")
	second := mustCreateClient(t, store, user.ID, "second")
	mustCreateProject(t, store, user.ID, first.ID, "Alpha")
	mustCreateProject(t, store, user.ID, second.ID, "Beta")

	conn, err := store.ProjectsForUser(context.Background(), user.ID, nil, ConnectionArgs{}, nil)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if conn.PageInfo.TotalCount != 2 {
		t.Fatalf("expected 2 projects, got %d", conn.PageInfo.TotalCount)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "delproject@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	project := mustCreateProject(t, store, user.ID, client.ID, "Website")
	task := mustCreateTask(t, store, user.ID, project.ID, "Backend", 10, 25)
	if _, err := store.StartSession(context.Background(), task.ID, user.ID); err != nil {
		t.Fatalf("start session: %v", err)
	}

	if _, err := store.DeleteProject(context.Background(), project.ID, user.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if n := tableCount(t, store, "tasks"); n != 0 {
		t.Fatalf("expected tasks to cascade, got %d rows", n)
	}
	if n := tableCount(t, store, "sessions"); n != 0 {
		t.Fatalf("expected sessions to cascade, got %d rows", n)
	}
	// The client itself is untouched.
	if _, err := store.GetClient(context.Background(), client.ID, user.ID); err != nil {
		t.Fatalf("client should survive project deletion: %v", err)
	}
}
