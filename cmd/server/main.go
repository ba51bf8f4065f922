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

	"sentiserve/config"
	"sentiserve/internal/api"
	"sentiserve/internal/cache"
	"sentiserve/internal/logging"
	"sentiserve/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	settings, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(settings.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	engine, cleanup, err := buildEngine(settings)
	if err != nil {
		slog.Error("[Main] Failed to initialize engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	opts := []sentiment.ServiceOption{}
	if settings.CacheEnabled() {
		resultCache, err := cache.NewValkeyCache(settings)
		if err != nil {
			slog.Warn("[Main] Result cache unavailable, serving without it",
				slog.String("error", err.Error()))
		} else {
			defer resultCache.Close()
			opts = append(opts, sentiment.WithCache(resultCache))
		}
	}

	service := sentiment.NewService(engine, settings, opts...)
	server := api.NewServer(service)

	go func() {
		slog.Info("[Main] Server starting",
			slog.String("addr", settings.ListenAddr),
			slog.String("engine", settings.Engine),
			slog.String("model", settings.ModelName))
		if err := server.Start(settings.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Shutdown failed", slog.String("error", err.Error()))
	}
}

func buildEngine(settings config.Settings) (sentiment.Engine, func(), error) {
	switch settings.Engine {
	case "vader":
		return sentiment.NewVaderEngine(), func() {}, nil
	case "openai":
		engine, err := sentiment.NewOpenAIEngine(settings)
		if err != nil {
			return nil, nil, err
		}
		return engine, func() {}, nil
	default:
		engine, err := sentiment.NewHugotEngine(settings)
		if err != nil {
			return nil, nil, err
		}
		return engine, func() {
			if err := engine.Close(); err != nil {
				slog.Warn("[Main] Failed to close engine", slog.String("error", err.Error()))
			}
		}, nil
	}
}
