package todo

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Store is the persistence contract the HTTP handlers and services depend on.
type Store interface {
	Create(ctx context.Context, taskName, taskDescription, dueDate string) (*Todo, error)
	GetByID(ctx context.Context, id uint) (*Todo, error)
	ListAll(ctx context.Context) ([]*Todo, error)
	Save(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id uint) error
}

// Repository is the GORM-backed Store.
type Repository struct {
	db *gorm.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new todo repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create validates and inserts a new pending task.
func (r *Repository) Create(ctx context.Context, taskName, taskDescription, dueDate string) (*Todo, error) {
	if n := utf8.RuneCountInString(taskName); n > MaxTaskNameLength {
		return nil, invalidf("task_name",
			"Ensure this value has at most %d characters (it has %d).", MaxTaskNameLength, n)
	}
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	todo := &Todo{
		TaskName:        taskName,
		TaskDescription: taskDescription,
		TaskStatus:      StatusPending,
		DueDate:         due,
	}
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return todo, nil
}

// GetByID retrieves a task by its id.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Todo, error) {
	var todo Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &todo, nil
}

// ListAll retrieves every task ordered by id.
func (r *Repository) ListAll(ctx context.Context) ([]*Todo, error) {
	todos := make([]*Todo, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return todos, nil
}

// Save writes every column of an existing task. It never inserts.
func (r *Repository) Save(ctx context.Context, todo *Todo) error {
	if todo.ID == 0 {
		return ErrNotFound
	}
	if err := r.db.WithContext(ctx).Model(todo).Select("*").Updates(todo).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete permanently removes a task.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Todo{}, id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
