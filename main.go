package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/auth"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/config"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/scheduler"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/server"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/store"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks)

	dataStore := store.New()
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)

	sched := scheduler.NewScheduler(dataStore)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataStore, tokens)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}
