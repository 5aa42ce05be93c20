package main

import (
	"log/slog"
	"os"

	"employee-admin/internal/app"
	"employee-admin/internal/config"
	"employee-admin/internal/logger"
)

func main() {
	slog.SetDefault(logger.New(os.Stdout, "info", "text"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
