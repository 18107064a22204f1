package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/config"
	"taskmanager_web/internal/models"
	"taskmanager_web/internal/stubapi"
)

func main() {
	seed := flag.Bool("seed", false, "Start with a few example tasks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	store := stubapi.NewStore()
	if *seed {
		seedTasks(store)
	}
	e := stubapi.New(store, logger).Echo()

	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Infof("Stub task API listening on port %s%s", cfg.Stub.Port, stubapi.BasePath)
		if err := e.Start(":" + cfg.Stub.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Stub task API stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down stub task API...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Failed to shut down cleanly: %v", err)
	}
}

func seedTasks(store *stubapi.Store) {
	store.Create(models.Task{Title: "Write the weekly report", Description: "Summarise progress for the team"})
	store.Create(models.Task{Title: "Review pull requests"})
	done := store.Create(models.Task{Title: "Set up the dev environment", Description: "Go toolchain and editor"})
	_, _ = store.Complete(done.ID)
}
