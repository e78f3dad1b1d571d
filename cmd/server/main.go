package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"hire-portal/internal/app"
	"hire-portal/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	portal, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	c := portal.Container
	c.Logger.Printf("[Portal] Starting addr=%s backend=%s cache=%s events=%s",
		addr, cfg.Backend.BaseURL, onOff(c.Cache.Enabled()), onOff(c.NATS != nil && c.NATS.IsConnected()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- portal.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		c.Logger.Printf("[Portal] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := portal.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
