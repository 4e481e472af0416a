package main

import (
	"context"
	"log"
	"os"

	"github.com/edealasc/todoapp/config"
	httpservermod "github.com/edealasc/todoapp/modules/httpserver"
	todomod "github.com/edealasc/todoapp/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("=== Todo App ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database Driver: %s", cfg.DBDriver)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Create modules
	todoModule := todomod.NewModule(todomod.DBConfig{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		Debug:        cfg.DBDebug,
		MaxOpenConns: cfg.DBMaxOpenConns,
	}, app.Logger())
	httpServerModule := httpservermod.NewModule(httpservermod.Config{
		Port:           cfg.HTTPPort,
		APIRoot:        cfg.APIRoot,
		MetricsEnabled: cfg.MetricsEnabled,
	}, app.Logger())

	// Wire up dependencies
	httpServerModule.SetTodoModule(todoModule)

	// The todo module must start first so the HTTP server can reach its store.
	app.Register(todoModule)
	app.Register(httpServerModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	root := cfg.APIRoot
	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d%s/", cfg.HTTPPort, root)
	log.Println("Endpoints:")
	log.Printf("  GET    %s/        - List tasks", root)
	log.Printf("  POST   %s/        - Create a task", root)
	log.Printf("  PUT    %s/:id/    - Mark a task completed", root)
	log.Printf("  DELETE %s/:id/    - Delete a task", root)
	log.Println("  GET    /health   - Health check")
	if cfg.MetricsEnabled {
		log.Println("  GET    /metrics  - Prometheus metrics")
	}
	log.Println("")
	log.Println("NATS services: services.todo.{list,create,complete,delete}")
	log.Println("Press Ctrl+C to shutdown")
}
