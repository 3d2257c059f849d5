package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"darf/internal/app"
	"darf/internal/config"
	"darf/internal/handler"
	"darf/internal/logger"
	"darf/internal/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg, zl)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.EnsureAdmin(ctx); err != nil {
		return err
	}

	checks := map[string]handler.Pinger{}
	if a.DB != nil {
		checks["database"] = a.DB
	}
	if a.Redis != nil {
		checks["redis"] = handler.PingFunc(a.Redis.Health)
	}

	r := router.Setup(a.Auth, router.Handlers{
		Auth:      handler.NewAuthHandler(a.Auth),
		Record:    handler.NewRecordHandler(a.Records, a.Queries),
		Query:     handler.NewQueryHandler(a.Queries),
		Aggregate: handler.NewAggregateHandler(a.Aggregates),
		Catalog:   handler.NewCatalogHandler(),
		Export:    handler.NewExportHandler(a.Exports),
		Health:    handler.NewHealthHandler(checks),
	}, router.Options{
		Logger:         zl,
		Metrics:        a.Metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
