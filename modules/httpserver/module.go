package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/edealasc/todoapp/modules/todo"
	"github.com/gin-gonic/gin"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Config configures the HTTP server module.
type Config struct {
	Port           int
	APIRoot        string
	MetricsEnabled bool
}

// Module implements an HTTP server using the Gin framework.
type Module struct {
	cfg        Config
	server     *http.Server
	engine     *gin.Engine
	todoModule *todo.Module
	logger     types.Logger
}

// Compile-time interface checks
var _ mono.Module = (*Module)(nil)

// NewModule creates a new HTTP server module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "http-server"
}

// SetTodoModule sets the todo module dependency.
func (m *Module) SetTodoModule(todoModule *todo.Module) {
	m.todoModule = todoModule
}

// Start builds the router and starts listening.
func (m *Module) Start(_ context.Context) error {
	if m.todoModule == nil {
		return fmt.Errorf("todo module not set")
	}
	store := m.todoModule.Store()
	if store == nil {
		return fmt.Errorf("todo module not started")
	}

	gin.SetMode(gin.ReleaseMode)

	m.engine = NewRouter(m.cfg, NewHandlers(store, m.todoModule, m.logger), m.logger)

	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", m.cfg.Port),
		Handler:           m.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		m.logger.Info("HTTP server starting", "port", m.cfg.Port, "api_root", m.cfg.APIRoot)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.server != nil {
		m.logger.Info("Shutting down HTTP server")
		return m.server.Shutdown(ctx)
	}
	return nil
}

// NewRouter wires the handlers into a gin engine.
func NewRouter(cfg Config, h *Handlers, logger types.Logger) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware(logger))

	if cfg.MetricsEnabled {
		metrics := NewMetrics()
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", metrics.Handler())
	}

	engine.NoRoute(h.NotFound)
	engine.NoMethod(h.MethodNotAllowed)

	engine.GET("/health", h.HealthCheck)

	tasks := engine.Group(cfg.APIRoot)
	{
		tasks.GET("/", h.ListTasks)
		tasks.POST("/", h.CreateTask)
		tasks.PUT("/:id/", h.CompleteTask)
		tasks.DELETE("/:id/", h.DeleteTask)
	}

	return engine
}

// loggingMiddleware logs each request under a request id, reusing the
// client's X-Request-ID when present.
func loggingMiddleware(logger types.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		logger.Info("HTTP request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
