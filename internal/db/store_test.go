package db

import (
	"context"
	"testing"
	"time"

	"github.com/mconstantine/cooler-sub002/internal/models"
)

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return store, func() {
		_ = store.Close()
	}
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func uintPtr(u uint) *uint        { return &u }
func floatPtr(f float64) *float64 { return &f }

func mustCreateUser(t *testing.T, store *Store, email string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), UserCreationInput{
		Name:     "Test User",
		Email:    email,
		Password: "correct horse battery staple",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}
	return user
}

func mustCreateClient(t *testing.T, store *Store, userID uint, businessName string) *models.Client {
	t.Helper()
	client, err := store.CreateClient(context.Background(), userID, ClientCreationInput{
		Type:            models.ClientTypeBusiness,
		CountryCode:     strPtr("IT"),
		VatNumber:       strPtr("01234567890"),
		BusinessName:    strPtr(businessName),
		AddressCountry:  "IT",
		AddressProvince: "MI",
		AddressCity:     "Milan",
		AddressZip:      "20100",
		AddressStreet:   "Via Roma",
		AddressEmail:    "billing@" + businessName + ".example.com",
	})
	if err != nil {
		t.Fatalf("failed to prepare client: %v", err)
	}
	return client
}

func mustCreateProject(t *testing.T, store *Store, viewerID, clientID uint, name string) *models.Project {
	t.Helper()
	project, err := store.CreateProject(context.Background(), viewerID, ProjectCreationInput{
		Name:     name,
		ClientID: clientID,
	})
	if err != nil {
		t.Fatalf("failed to prepare project: %v", err)
	}
	return project
}

func mustCreateTask(t *testing.T, store *Store, viewerID, projectID uint, name string, expected, hourly float64) *models.Task {
	t.Helper()
	task, err := store.CreateTask(context.Background(), viewerID, TaskCreationInput{
		Name:                 name,
		StartTime:            time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		ExpectedWorkingHours: expected,
		HourlyCost:           hourly,
		ProjectID:            projectID,
	})
	if err != nil {
		t.Fatalf("failed to prepare task: %v", err)
	}
	return task
}

// mustCreateClosedSession inserts a session of the given duration. It
// goes through StartSession and UpdateSession so the same invariants
// apply as in production use.
func mustCreateClosedSession(t *testing.T, store *Store, viewerID, taskID uint, start time.Time, hours float64) *models.Session {
	t.Helper()
	session, err := store.StartSession(context.Background(), taskID, viewerID)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	session, err = store.UpdateSession(context.Background(), session.ID, viewerID, SessionUpdateInput{
		StartTime: &start,
		EndTime:   &end,
	})
	if err != nil {
		t.Fatalf("failed to close session: %v", err)
	}
	return session
}
