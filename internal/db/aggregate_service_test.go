package db

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/mconstantine/cooler-sub002/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestTaskAggregates(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "agg-task@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	project := mustCreateProject(t, store, user.ID, client.ID, "Website")
	task := mustCreateTask(t, store, user.ID, project.ID, "Backend", 10, 25)

	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	mustCreateClosedSession(t, store, user.ID, task.ID, base, 3)
	mustCreateClosedSession(t, store, user.ID, task.ID, base.Add(24*time.Hour), 1.5)
	mustCreateClosedSession(t, store, user.ID, task.ID, base.Add(48*time.Hour), 2)

	actual, err := store.TaskActualWorkingHours(context.Background(), task.ID, nil)
	if err != nil {
		t.Fatalf("task actual working hours: %v", err)
	}
	if !almostEqual(actual, 6.5) {
		t.Fatalf("expected 6.5 actual hours, got %f", actual)
	}

	budget, err := store.ProjectBudget(context.Background(), project.ID, nil)
	if err != nil {
		t.Fatalf("project budget: %v", err)
	}
	if !almostEqual(budget, 250) {
		t.Fatalf("expected budget 250, got %f", budget)
	}

	balance, err := store.ProjectBalance(context.Background(), project.ID, nil)
	if err != nil {
		t.Fatalf("project balance: %v", err)
	}
	if !almostEqual(balance, 162.5) {
		t.Fatalf("expected balance 162.5, got %f", balance)
	}
}

func TestAggregatesComposeUpwards(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "agg-compose@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	first := mustCreateProject(t, store, user.ID, client.ID, "First")
	second := mustCreateProject(t, store, user.ID, client.ID, "Second")
	taskA := mustCreateTask(t, store, user.ID, first.ID, "A", 10, 25)
	taskB := mustCreateTask(t, store, user.ID, second.ID, "B", 4, 50)

	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	mustCreateClosedSession(t, store, user.ID, taskA.ID, base, 2)
	mustCreateClosedSession(t, store, user.ID, taskB.ID, base.Add(24*time.Hour), 1)

	expected, err := store.UserExpectedWorkingHours(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("user expected working hours: %v", err)
	}
	if !almostEqual(expected, 14) {
		t.Fatalf("expected 14 hours, got %f", expected)
	}

	budget, err := store.UserBudget(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("user budget: %v", err)
	}
	if !almostEqual(budget, 10*25+4*50) {
		t.Fatalf("expected budget 450, got %f", budget)
	}

	balance, err := store.UserBalance(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("user balance: %v", err)
	}
	if !almostEqual(balance, 2*25+1*50) {
		t.Fatalf("expected balance 100, got %f", balance)
	}

	actual, err := store.UserActualWorkingHours(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("user actual working hours: %v", err)
	}
	if !almostEqual(actual, 3) {
		t.Fatalf("expected 3 actual hours, got %f", actual)
	}
}

func TestAggregatesEmptyAreZero(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "agg-empty@example.com")

	for name, fn := range map[string]func() (float64, error){
		"expected": func() (float64, error) {
			return store.UserExpectedWorkingHours(context.Background(), user.ID, nil)
		},
		"actual": func() (float64, error) {
			return store.UserActualWorkingHours(context.Background(), user.ID, nil)
		},
		"budget": func() (float64, error) {
			return store.UserBudget(context.Background(), user.ID, nil)
		},
		"balance": func() (float64, error) {
			return store.UserBalance(context.Background(), user.ID, nil)
		},
		"cashed": func() (float64, error) {
			return store.UserCashedBalance(context.Background(), user.ID, nil)
		},
	} {
		got, err := fn()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != 0 {
			t.Errorf("expected %s to be 0, got %f", name, got)
		}
	}
}

func TestAggregatesSinceFilter(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "agg-since@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	project := mustCreateProject(t, store, user.ID, client.ID, "Website")
	task := mustCreateTask(t, store, user.ID, project.ID, "Backend", 10, 25)

	before := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	after := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	mustCreateClosedSession(t, store, user.ID, task.ID, before, 2)
	mustCreateClosedSession(t, store, user.ID, task.ID, after, 3)

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual, err := store.TaskActualWorkingHours(context.Background(), task.ID, &cutoff)
	if err != nil {
		t.Fatalf("task actual working hours: %v", err)
	}
	if !almostEqual(actual, 3) {
		t.Fatalf("expected only the later session to count, got %f", actual)
	}
}

func TestOpenSessionCountsUpToNow(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "agg-open@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	project := mustCreateProject(t, store, user.ID, client.ID, "Website")
	task := mustCreateTask(t, store, user.ID, project.ID, "Backend", 10, 25)

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }
	session, err := store.StartSession(context.Background(), task.ID, user.ID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := store.UpdateSession(context.Background(), session.ID, user.ID, SessionUpdateInput{
		StartTime: &start,
	}); err != nil {
		t.Fatalf("pin start time: %v", err)
	}

	store.now = func() time.Time { return start.Add(90 * time.Minute) }
	actual, err := store.TaskActualWorkingHours(context.Background(), task.ID, nil)
	if err != nil {
		t.Fatalf("task actual working hours: %v", err)
	}
	if !almostEqual(actual, 1.5) {
		t.Fatalf("expected 1.5 hours for the running session, got %f", actual)
	}
}

func TestCashedBalance(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "agg-cashed@example.com")
	client := mustCreateClient(t, store, user.ID, "acme")
	early := mustCreateProject(t, store, user.ID, client.ID, "Early")
	late := mustCreateProject(t, store, user.ID, client.ID, "Late")
	mustCreateProject(t, store, user.ID, client.ID, "Never cashed")

	if _, err := store.UpdateProject(context.Background(), early.ID, user.ID, ProjectUpdateInput{
		Cashed: &models.Cashed{At: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Balance: 1000},
	}); err != nil {
		t.Fatalf("cash early project: %v", err)
	}
	if _, err := store.UpdateProject(context.Background(), late.ID, user.ID, ProjectUpdateInput{
		Cashed: &models.Cashed{At: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Balance: 500},
	}); err != nil {
		t.Fatalf("cash late project: %v", err)
	}

	total, err := store.UserCashedBalance(context.Background(), user.ID, nil)
	if err != nil {
		t.Fatalf("user cashed balance: %v", err)
	}
	if !almostEqual(total, 1500) {
		t.Fatalf("expected 1500, got %f", total)
	}

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	recent, err := store.UserCashedBalance(context.Background(), user.ID, &cutoff)
	if err != nil {
		t.Fatalf("user cashed balance since: %v", err)
	}
	if !almostEqual(recent, 500) {
		t.Fatalf("expected 500, got %f", recent)
	}

	own, err := store.ProjectCashedBalance(context.Background(), early.ID, nil)
	if err != nil {
		t.Fatalf("project cashed balance: %v", err)
	}
	if !almostEqual(own, 1000) {
		t.Fatalf("expected 1000, got %f", own)
	}
}
