package todo

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// MaxTaskNameLength bounds Todo.TaskName.
const MaxTaskNameLength = 255

// Todo is a persisted task.
type Todo struct {
	ID              uint           `gorm:"primaryKey"`
	TaskName        string         `gorm:"size:255;not null"`
	TaskDescription string         `gorm:"type:text;not null"`
	TaskStatus      Status         `gorm:"size:10;not null;default:pending"`
	DueDate         datatypes.Date `gorm:"not null"`
}

// TableName returns the table name for Todo model.
func (Todo) TableName() string {
	return "todos"
}

// String returns the task name.
func (t *Todo) String() string {
	return t.TaskName
}

// DueDateString formats the due date as YYYY-MM-DD.
func (t *Todo) DueDateString() string {
	return time.Time(t.DueDate).Format(time.DateOnly)
}

// Complete marks the task as completed.
func (t *Todo) Complete() {
	t.TaskStatus = StatusCompleted
}
