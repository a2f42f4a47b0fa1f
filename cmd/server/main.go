// Package main is the entry point for the catalog bridge HTTP server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"

	"hive-bridge/internal/api"
	"hive-bridge/internal/config"
	"hive-bridge/internal/hive"
	"hive-bridge/internal/metastore"
	"hive-bridge/internal/middleware"
	"hive-bridge/internal/remote"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	metaDB, err := metastore.OpenSQLite(cfg.MetaDBPath)
	if err != nil {
		return err
	}
	defer metaDB.Close() //nolint:errcheck
	if err := metastore.RunMigrations(metaDB); err != nil {
		return err
	}

	remoteDB, err := sql.Open(cfg.RemoteDriver, cfg.RemoteDSN)
	if err != nil {
		return err
	}
	defer remoteDB.Close() //nolint:errcheck

	provider := remote.NewSessionProvider()
	provider.Activate(remote.NewSession(remote.ConnForDriver(remoteDB, cfg.RemoteDriver)))

	catalog := hive.New(metastore.NewCatalog(metaDB), provider, hive.WithLogger(logger))
	handler := api.NewHandler(catalog, logger)

	server := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: handler.Router(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.ListenAddr, "metastore", cfg.MetaDBPath, "remote_driver", cfg.RemoteDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
