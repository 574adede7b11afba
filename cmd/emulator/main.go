// Package main runs a local emulator of the personal-finance backend for
// development and testing.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/api"
	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/store"
)

const (
	defaultPort   = "4010"
	defaultDBPath = "./data/fintrack.db"
)

func main() {
	// Setup structured JSON logging.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Get configuration from environment variables.
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		slog.Error("failed to create data directory", "error", err, "db_path", dbPath)
		os.Exit(1)
	}

	// Initialize store.
	st, err := store.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize store", "error", err, "db_path", dbPath)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", dbPath)

	// Seed fixtures into an empty store, either from a YAML file or the
	// built-in set.
	seed := store.DefaultSeed(time.Now())
	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		seed, err = store.LoadSeedFile(seedFile)
		if err != nil {
			slog.Error("failed to load seed file", "error", err, "seed_file", seedFile)
			os.Exit(1)
		}
		slog.Info("seed file loaded", "seed_file", seedFile)
	}
	if err := st.Seed(seed); err != nil {
		slog.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	// Setup router with request logging around the shared route table.
	handler := middleware.Logger(api.NewRouter(st))

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	slog.Info("starting finance API emulator", "addr", addr, "port", port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
