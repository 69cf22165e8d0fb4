// main is the entry point of the student-registry service.
//
// Startup sequence:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Open the storage backend (in-memory by default, SQLite optional)
//  4. Build the router and start the HTTP server in a goroutine
//  5. Block until SIGINT/SIGTERM, then shut down gracefully
//
// Running locally:
//
//	go run ./cmd/student-registry --config=config/local.yaml
//
// or with no config at all (in-memory store, localhost:8082):
//
//	go run ./cmd/student-registry
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmathur/student-registry/internal/config"
	"github.com/kmathur/student-registry/internal/server"
	"github.com/kmathur/student-registry/internal/storage"
	"github.com/kmathur/student-registry/internal/storage/memory"
	"github.com/kmathur/student-registry/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting student-registry",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Backend),
	)

	// The rest of the code sees only the storage.Storage interface —
	// picking a backend is this one switch.
	var store storage.Storage
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.Storage.Path)
		if err != nil {
			log.Error("failed to initialise storage",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		store = db
	default:
		store = memory.New()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: server.New(store, log),

		// Timeouts guard against slow clients holding connections open.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks, so it runs in its own goroutine while main
	// waits for a shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := srv.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// In-flight requests get five seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the environment:
// human-readable text in dev, JSON for machine ingestion elsewhere.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
