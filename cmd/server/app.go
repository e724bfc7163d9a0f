package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rlbaker/todoservice/internal/config"
	"github.com/rlbaker/todoservice/internal/platform/fs"
	"github.com/rlbaker/todoservice/internal/platform/memory"
	"github.com/rlbaker/todoservice/internal/platform/sqlite"
	"github.com/rlbaker/todoservice/internal/service"
	"github.com/rlbaker/todoservice/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Store (behind the interface; the backend was picked at startup)
	taskStore store.TaskStore

	// Service interfaces
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized, including the one-time storage backend selection.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.taskStore, err = newTaskStore(&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task store: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized", "store_backend", cfg.Store.Backend())
	return app, nil
}

// newTaskStore selects the storage backend from configuration. The choice
// is made exactly once, here; everything above operates against the
// store.TaskStore interface and never mixes backends at runtime.
func newTaskStore(cfg *config.StoreConfig) (store.TaskStore, error) {
	switch {
	case cfg.Memory != nil:
		return memory.NewTaskStore(), nil
	case cfg.FS != nil:
		return fs.NewTaskStore(cfg.FS.Dir)
	case cfg.SQL != nil:
		return sqlite.NewTaskStore(cfg.SQL.Path)
	default:
		return nil, fmt.Errorf("no storage backend configured")
	}
}

// cleanup handles graceful shutdown of application resources. In-flight
// storage calls have already completed by the time the HTTP server's
// drain finishes, so closing the store here never interrupts a write.
func (app *application) cleanup() {
	if closer, ok := app.taskStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing task store", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
