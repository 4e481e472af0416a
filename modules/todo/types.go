package todo

// Response texts shared by every transport.
const (
	MessageCreated   = "Task created"
	MessageCompleted = "Task marked as completed"
	MessageDeleted   = "Task deleted"
	DetailNotFound   = "Task not found"
	DetailRequired   = "task_name and due_date are required."
)

// ErrRequiredFields is returned when task_name or due_date is missing or empty.
var ErrRequiredFields = &ValidationError{Field: "task_name,due_date", Message: DetailRequired}

// CreateTaskRequest is the input for creating a task.
type CreateTaskRequest struct {
	TaskName        string `json:"task_name" form:"task_name" binding:"required"`
	TaskDescription string `json:"task_description" form:"task_description"`
	DueDate         string `json:"due_date" form:"due_date" binding:"required"`
}

// Validate checks the required fields.
func (r CreateTaskRequest) Validate() error {
	if r.TaskName == "" || r.DueDate == "" {
		return ErrRequiredFields
	}
	return nil
}

// CreateTaskResponse is the response after creating a task.
type CreateTaskResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID              uint   `json:"id"`
	TaskName        string `json:"task_name"`
	TaskDescription string `json:"task_description"`
	TaskStatus      Status `json:"task_status"`
	DueDate         string `json:"due_date"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response containing every task.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// TaskIDRequest addresses a single task.
type TaskIDRequest struct {
	ID uint `json:"id"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToTaskResponse converts a Todo entity to a TaskResponse.
func ToTaskResponse(t *Todo) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		TaskName:        t.TaskName,
		TaskDescription: t.TaskDescription,
		TaskStatus:      t.TaskStatus,
		DueDate:         t.DueDateString(),
	}
}

// ToTaskResponses converts a slice of entities, never returning nil.
func ToTaskResponses(todos []*Todo) []TaskResponse {
	out := make([]TaskResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, ToTaskResponse(t))
	}
	return out
}
