package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matmo1/Another-book-store/internal/app"
	"github.com/matmo1/Another-book-store/internal/config"
	"github.com/matmo1/Another-book-store/internal/logger"
)

func runServe(parent context.Context) error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	ctx, stop := signal.NotifyContext(
		parent,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- application.Run()
	}()

	logger.Info("book store started", map[string]any{
		"port":           cfg.AppPort,
		"session_policy": cfg.SessionPolicy,
	})

	select {
	case <-ctx.Done(): // wait for Ctrl+C
		logger.Info("shutdown signal received", nil)
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server failed", map[string]any{
				"error": err.Error(),
			})
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("book store stopped cleanly", nil)
	return nil
}
