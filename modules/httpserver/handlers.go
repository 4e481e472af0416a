package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/edealasc/todoapp/modules/todo"
	"github.com/gin-gonic/gin"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/go-playground/validator/v10"
)

// Pinger reports whether the storage engine is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Handlers contains HTTP request handlers for task operations.
type Handlers struct {
	store  todo.Store
	pinger Pinger
	logger types.Logger
}

// NewHandlers creates a new handlers instance. pinger may be nil.
func NewHandlers(store todo.Store, pinger Pinger, logger types.Logger) *Handlers {
	return &Handlers{
		store:  store,
		pinger: pinger,
		logger: logger,
	}
}

// ListTasks handles GET on the collection: every task as a JSON array.
func (h *Handlers) ListTasks(c *gin.Context) {
	todos, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.handleStoreError(c, err, "list tasks")
		return
	}

	c.JSON(http.StatusOK, todo.ToTaskResponses(todos))
}

// CreateTask handles POST on the collection. The new task is always pending.
func (h *Handlers) CreateTask(c *gin.Context) {
	var req todo.CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: bindErrorDetail(err)})
		return
	}

	created, err := h.store.Create(c.Request.Context(), req.TaskName, req.TaskDescription, req.DueDate)
	if err != nil {
		// Any storage failure on create is a 400.
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, todo.CreateTaskResponse{
		ID:      created.ID,
		Message: todo.MessageCreated,
	})
}

// CompleteTask handles PUT on a task. The request body is never read.
func (h *Handlers) CompleteTask(c *gin.Context) {
	task, ok := h.lookup(c)
	if !ok {
		return
	}

	task.Complete()
	if err := h.store.Save(c.Request.Context(), task); err != nil {
		h.handleStoreError(c, err, "complete task")
		return
	}

	c.JSON(http.StatusOK, todo.MessageResponse{Message: todo.MessageCompleted})
}

// DeleteTask handles DELETE on a task.
func (h *Handlers) DeleteTask(c *gin.Context) {
	task, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), task.ID); err != nil {
		h.handleStoreError(c, err, "delete task")
		return
	}

	c.JSON(http.StatusOK, todo.MessageResponse{Message: todo.MessageDeleted})
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"detail": err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// NotFound answers requests that match no route.
func (h *Handlers) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Not found."})
}

// MethodNotAllowed answers a known route hit with an unsupported verb.
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Detail: fmt.Sprintf("Method %q not allowed.", c.Request.Method),
	})
}

// lookup resolves the :id path parameter to a stored task, writing the
// error response itself when it cannot.
func (h *Handlers) lookup(c *gin.Context) (*todo.Todo, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: todo.DetailNotFound})
		return nil, false
	}

	task, err := h.store.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.handleStoreError(c, err, "get task")
		return nil, false
	}
	return task, true
}

// handleStoreError writes the HTTP response for a store error.
func (h *Handlers) handleStoreError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, todo.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: todo.DetailNotFound})
	case todo.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
	default:
		h.logger.Error("Store operation failed", "operation", operation, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}
}

// bindErrorDetail turns a binding failure into the detail text. An empty
// body counts as missing fields.
func bindErrorDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
		return todo.DetailRequired
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return "JSON parse error - " + err.Error()
	}
	return err.Error()
}
