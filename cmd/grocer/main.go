package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmynk/grocer/internal/auth"
	"github.com/mmynk/grocer/internal/config"
	"github.com/mmynk/grocer/internal/dashboard"
	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/prompt"
	"github.com/mmynk/grocer/internal/receipt"
	"github.com/mmynk/grocer/internal/service"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/pkg/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("error")
		slog.Error("Failed to load config", "error", err)
		return 1
	}

	// Setup structured logging
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			logging.Setup("error")
			slog.Error("Failed to create log directory", "error", err)
			return 1
		}
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logging.Setup("error")
			slog.Error("Failed to open log file", "path", cfg.LogFile, "error", err)
			return 1
		}
		defer logFile.Close()
		logging.SetupWithLevel(logFile, logging.ParseLevel(cfg.LogLevel), true)
	} else {
		logging.Setup(cfg.LogLevel)
	}

	ctx := context.Background()

	// Initialize storage
	store, err := storage.Open(cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return 1
	}
	slog.Info("Storage initialized", "backend", cfg.StoreBackend, "data_dir", cfg.DataDir)

	recorder := metrics.New()
	defer writeMetrics(recorder, cfg.MetricsPath)

	users := storage.NewUserRepository(store.Users)
	accounts := service.NewAccountService(auth.NewPasswordAuthenticator(users), users, recorder, slog.Default())

	if cfg.AdminEmail != "" {
		if _, err := accounts.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			slog.Error("Failed to seed admin account", "email", cfg.AdminEmail, "error", err)
			return 1
		}
	}

	d := dashboard.New(
		prompt.New(os.Stdin, os.Stdout),
		accounts,
		service.NewInventoryService(store.Items, recorder),
		service.NewPurchaseService(store.Items, store.Bills, recorder),
		auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		receipt.New(cfg.Currency),
	)

	if err := d.Run(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return 0
		}
		slog.Error("Dashboard stopped", "error", err)
		return 1
	}
	return 0
}

func writeMetrics(recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		slog.Error("Failed to write metrics", "path", path, "error", err)
		return
	}
	slog.Info("Metrics written", "path", path)
}
