package todo

import (
	"context"

	"github.com/go-monolith/mono"
)

// listTasks handles the todo.list service request.
func (m *Module) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	todos, err := m.repo.ListAll(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: ToTaskResponses(todos)}, nil
}

// createTask handles the todo.create service request.
func (m *Module) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	if err := req.Validate(); err != nil {
		return CreateTaskResponse{}, err
	}

	todo, err := m.repo.Create(ctx, req.TaskName, req.TaskDescription, req.DueDate)
	if err != nil {
		return CreateTaskResponse{}, err
	}

	m.logger.Info("Task created", "id", todo.ID)
	return CreateTaskResponse{ID: todo.ID, Message: MessageCreated}, nil
}

// completeTask handles the todo.complete service request.
func (m *Module) completeTask(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (MessageResponse, error) {
	todo, err := m.repo.GetByID(ctx, req.ID)
	if err != nil {
		return MessageResponse{}, err
	}

	todo.Complete()
	if err := m.repo.Save(ctx, todo); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: MessageCompleted}, nil
}

// deleteTask handles the todo.delete service request.
func (m *Module) deleteTask(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (MessageResponse, error) {
	if _, err := m.repo.GetByID(ctx, req.ID); err != nil {
		return MessageResponse{}, err
	}

	if err := m.repo.Delete(ctx, req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: MessageDeleted}, nil
}
