package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillswap/internal/app"
	"skillswap/internal/config"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, cleanup, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		logger.Fatalf("invalid HTTP port: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Fiber.Listen(addr)
	}()
	logger.Printf("[App] %s listening on %s", cfg.App.AppName, addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("server error: %v", err)
		}
	case <-sigCh:
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := application.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Printf("shutdown error: %v", err)
		}
	}
}
