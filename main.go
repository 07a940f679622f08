package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vit0-9/ip-reverse-app/pkg/config"
	"github.com/vit0-9/ip-reverse-app/pkg/logger"
	"github.com/vit0-9/ip-reverse-app/pkg/utils"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "err", err)
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatal("Failed to initialize logger", "err", err)
	}
	if envErr != nil {
		l.Warn("No .env file loaded, using system environment variables")
	}

	gin.SetMode(cfg.GinMode)

	geo := utils.OpenGeoLocator(cfg.MMDBCountryPath, cfg.MMDBASNPath, l)
	app := NewApp(l, geo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error("Server failed", "err", err)
		}
	case <-ctx.Done():
		l.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := app.Shutdown(shutdownCtx); err != nil {
			l.Error("Graceful shutdown failed", "err", err)
		}
		cancel()
	}

	if err := geo.Close(); err != nil {
		l.Error("Closing GeoIP databases", "err", err)
	}
}
