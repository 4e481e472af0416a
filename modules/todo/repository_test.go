package todo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&Todo{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	todo, err := repo.Create(ctx, "Buy milk", "two litres", "2024-01-01")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if todo.ID == 0 {
		t.Fatal("expected an id to be assigned")
	}

	var found Todo
	if err := db.First(&found, todo.ID).Error; err != nil {
		t.Fatalf("failed to find created task: %v", err)
	}

	if found.TaskName != "Buy milk" {
		t.Errorf("expected name %q, got %q", "Buy milk", found.TaskName)
	}
	if found.TaskDescription != "two litres" {
		t.Errorf("expected description %q, got %q", "two litres", found.TaskDescription)
	}
	if found.TaskStatus != StatusPending {
		t.Errorf("expected status %q, got %q", StatusPending, found.TaskStatus)
	}
	if got := found.DueDateString(); got != "2024-01-01" {
		t.Errorf("expected due date %q, got %q", "2024-01-01", got)
	}
}

func TestRepository_CreateAssignsIncreasingIDs(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, "first", "", "2024-01-01")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := repo.Create(ctx, "second", "", "2024-01-02")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestRepository_CreateRejects(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		dueDate  string
		field    string
		message  string
	}{
		{
			name:     "malformed date",
			taskName: "Task",
			dueDate:  "tomorrow",
			field:    "due_date",
			message:  "“tomorrow” value has an invalid date format. It must be in YYYY-MM-DD format.",
		},
		{
			name:     "impossible date",
			taskName: "Task",
			dueDate:  "2024-02-30",
			field:    "due_date",
			message:  "“2024-02-30” value has the correct format (YYYY-MM-DD) but it is an invalid date.",
		},
		{
			name:     "name too long",
			taskName: strings.Repeat("x", 256),
			dueDate:  "2024-01-01",
			field:    "task_name",
			message:  "Ensure this value has at most 255 characters (it has 256).",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewRepository(db)

			_, err := repo.Create(context.Background(), tc.taskName, "", tc.dueDate)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
			if verr.Error() != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, verr.Error())
			}

			var count int64
			db.Model(&Todo{}).Count(&count)
			if count != 0 {
				t.Errorf("expected no rows, got %d", count)
			}
		})
	}
}

func TestRepository_CreateAcceptsMaxLengthName(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	name := strings.Repeat("é", MaxTaskNameLength)
	todo, err := repo.Create(context.Background(), name, "", "2024-01-01")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if todo.TaskName != name {
		t.Error("expected name to be stored unchanged")
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "GetByID Test", "desc", "2030-12-31")
	if err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("existing task", func(t *testing.T) {
		found, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if found.ID != created.ID {
			t.Errorf("expected ID %d, got %d", created.ID, found.ID)
		}
		if found.DueDateString() != "2030-12-31" {
			t.Errorf("expected due date %q, got %q", "2030-12-31", found.DueDateString())
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_ListAll(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		todos, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll() error = %v", err)
		}
		if todos == nil {
			t.Error("expected an empty slice, got nil")
		}
		if len(todos) != 0 {
			t.Errorf("expected 0 tasks, got %d", len(todos))
		}
	})

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, "Task "+string(rune('A'+i)), "", "2024-01-01"); err != nil {
			t.Fatalf("failed to create test task: %v", err)
		}
	}

	t.Run("with tasks", func(t *testing.T) {
		todos, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll() error = %v", err)
		}
		if len(todos) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(todos))
		}
		for i, todo := range todos {
			if todo.ID != uint(i+1) {
				t.Errorf("expected ascending ids, got %d at position %d", todo.ID, i)
			}
		}
	})
}

func TestRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	todo, err := repo.Create(ctx, "Original", "", "2024-01-01")
	if err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("complete existing task", func(t *testing.T) {
		todo.Complete()
		if err := repo.Save(ctx, todo); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		var found Todo
		if err := db.First(&found, todo.ID).Error; err != nil {
			t.Fatalf("failed to find saved task: %v", err)
		}
		if found.TaskStatus != StatusCompleted {
			t.Errorf("expected status %q, got %q", StatusCompleted, found.TaskStatus)
		}
		if found.TaskName != "Original" {
			t.Errorf("expected name to be unchanged, got %q", found.TaskName)
		}
	})

	t.Run("saving twice is harmless", func(t *testing.T) {
		if err := repo.Save(ctx, todo); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	})

	t.Run("unsaved task", func(t *testing.T) {
		if err := repo.Save(ctx, &Todo{}); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("deleted task is not resurrected", func(t *testing.T) {
		gone, err := repo.Create(ctx, "Gone", "", "2024-01-01")
		if err != nil {
			t.Fatalf("failed to create test task: %v", err)
		}
		if err := repo.Delete(ctx, gone.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		_ = repo.Save(ctx, gone)
		if _, err := repo.GetByID(ctx, gone.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	todo, err := repo.Create(ctx, "To Be Deleted", "", "2024-01-01")
	if err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("delete existing task", func(t *testing.T) {
		if err := repo.Delete(ctx, todo.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		// Hard delete: the row is gone even for unscoped queries.
		var count int64
		if err := db.Unscoped().Model(&Todo{}).Where("id = ?", todo.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 0 {
			t.Errorf("expected row to be removed, found %d", count)
		}
	})

	t.Run("delete non-existent task", func(t *testing.T) {
		if err := repo.Delete(ctx, todo.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
