// Package main implements the entry point for the todoservice server,
// a small task-tracking API with interchangeable storage backends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/rlbaker/todoservice/internal/config"
	"github.com/rlbaker/todoservice/internal/platform/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		port       = flag.Int("port", 0, "override the configured listen port")
	)
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, sets up logging, and hands control to the
// application. Split out of main so the exit path stays in one place.
func run(configPath string, portOverride int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if portOverride != 0 {
		cfg.Server.Port = portOverride
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend())

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
