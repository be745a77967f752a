// Package main runs a local stand-in for the remote task list API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"tasklist/internal/apistub"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "", "sqlite database path (in-memory collection if empty)")
	flag.Parse()

	logger := newLoggerFromEnv()
	slog.SetDefault(logger)

	var repo apistub.Repository
	if *dbPath != "" {
		sq, err := apistub.NewSQLiteRepo(*dbPath)
		if err != nil {
			logger.Error("sqlite_open_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer sq.Close()
		if err := sq.ApplyMigrations(context.Background()); err != nil {
			logger.Error("migrate_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repo = sq
	} else {
		repo = apistub.NewMemoryRepo()
	}

	srv := apistub.NewServer(repo, logger)

	logger.Info("stub_listen", slog.String("addr", *addr))
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		logger.Error("stub_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLoggerFromEnv() *slog.Logger {
	level := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	return slog.New(handler)
}
