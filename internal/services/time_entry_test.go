package services

import (
	"errors"
	"testing"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestTimeEntryCreateRejectsNonPositiveHours(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	task := createTask(t, database, project, "Design", &alice)

	service := NewTimeEntryService(database)

	for _, hours := range []float64{0, -1.5} {
		if _, err := service.Create(task.ID, hours, alice); !errors.Is(err, ErrNonPositiveHours) {
			t.Errorf("Create(%v) error = %v, want ErrNonPositiveHours", hours, err)
		}
	}

	entry, err := service.Create(task.ID, 2.5, alice)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if entry.HoursSpent != 2.5 {
		t.Errorf("hours = %v, want 2.5", entry.HoursSpent)
	}
}

func TestTimeEntryTotals(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, database, "Bob", "bob@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPublic)
	task := createTask(t, database, project, "Design", &alice)

	service := NewTimeEntryService(database)

	// A task without entries sums to 0.0, not an error.
	total, err := service.TaskTotal(task.ID, alice)
	if err != nil {
		t.Fatalf("TaskTotal() error: %v", err)
	}
	if total != 0 {
		t.Errorf("empty task total = %v, want 0", total)
	}

	if _, err := service.Create(task.ID, 2, alice); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := service.Create(task.ID, 1.5, alice); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := service.Create(task.ID, 4, bob); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	total, err = service.TaskTotal(task.ID, alice)
	if err != nil {
		t.Fatalf("TaskTotal() error: %v", err)
	}
	if total != 7.5 {
		t.Errorf("task total = %v, want 7.5", total)
	}

	mine, err := service.TaskTotalForCurrentUser(task.ID, alice)
	if err != nil {
		t.Fatalf("TaskTotalForCurrentUser() error: %v", err)
	}
	if mine != 3.5 {
		t.Errorf("alice's task total = %v, want 3.5", mine)
	}

	bobTotal, err := service.TotalForCurrentUser(bob)
	if err != nil {
		t.Fatalf("TotalForCurrentUser() error: %v", err)
	}
	if bobTotal != 4 {
		t.Errorf("bob's overall total = %v, want 4", bobTotal)
	}
}

func TestTimeEntryAccessFollowsTask(t *testing.T) {
	database := openTestDB(t)

	alice := createUser(t, database, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, database, "Bob", "bob@example.com", models.RoleUser)
	project := createProject(t, database, alice, "Apollo", models.VisibilityPrivate)
	task := createTask(t, database, project, "Design", &alice)

	service := NewTimeEntryService(database)

	if _, err := service.Create(task.ID, 1, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("Create() by stranger error = %v, want ErrNotFound", err)
	}
	if _, err := service.ListByTask(task.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListByTask() by stranger error = %v, want ErrNotFound", err)
	}
}
