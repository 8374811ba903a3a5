package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/dharmasatrya/flightfinder/internal/config"
	"github.com/dharmasatrya/flightfinder/internal/handler"
	"github.com/dharmasatrya/flightfinder/internal/logging"
	"github.com/dharmasatrya/flightfinder/internal/providers"
	"github.com/dharmasatrya/flightfinder/internal/search"
	"github.com/dharmasatrya/flightfinder/internal/server"
	"github.com/dharmasatrya/flightfinder/internal/store"
)

func main() {
	cfg, err := config.Load(viper.New(), os.Getenv("FLIGHTFINDER_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	provider, err := providers.NewTripAdvisorProvider(providers.TripAdvisorConfig{
		BaseURL:       cfg.API.BaseURL,
		Host:          cfg.API.Host,
		APIKey:        cfg.API.Key,
		Timeout:       cfg.API.Timeout,
		ForwardAdults: cfg.API.ForwardAdults,
	})
	if err != nil {
		logger.Error("failed to initialize provider", "error", err)
		os.Exit(1)
	}
	svc := search.NewService(provider, logger)

	sessionStore, err := newStore(cfg.Session, logger)
	if err != nil {
		logger.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}
	registry := store.NewRegistry(sessionStore, cfg.Session.TTL)
	defer registry.Close()

	e, err := server.New(handler.NewSearchHandler(svc, registry, logger))
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("starting flightfinder server", "port", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func newStore(cfg config.SessionConfig, logger *slog.Logger) (store.Store, error) {
	if cfg.Store != "redis" {
		logger.Info("session store: memory", "ttl", cfg.TTL)
		return store.NewMemoryStore(cfg.TTL), nil
	}

	redisStore, err := store.NewRedisStore(store.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.TTL,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("session store: redis", "host", cfg.Redis.Host, "port", cfg.Redis.Port, "ttl", cfg.TTL)
	return redisStore, nil
}
