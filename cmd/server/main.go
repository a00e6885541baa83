// Package main implements the entry point for the task extraction API
// server, which accepts PDF uploads and returns the maintenance tasks found
// in them.
package main

import (
	"context"
	"fmt"
	"log"
)

func main() {
	fmt.Println("Task Extraction API Server Starting...")

	if err := run(context.Background()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, sets up logging, wires the application and
// serves until a shutdown signal arrives.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
