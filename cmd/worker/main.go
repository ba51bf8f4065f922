package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentiserve/config"
	"sentiserve/internal/logging"
	"sentiserve/internal/queue"
	"sentiserve/internal/sentiment"
	"sentiserve/internal/store"
	"sentiserve/internal/worker"
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

	service := sentiment.NewService(engine, settings)

	var producer *queue.Producer
	for {
		producer, err = queue.NewProducer(settings)
		if err == nil {
			break
		}
		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer producer.Close()

	consumer, err := queue.NewConsumer(settings)
	if err != nil {
		slog.Error("[Main] Failed to initialize consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer consumer.Close()

	var resultStore worker.ResultStore
	if !settings.StoreDisabled {
		dynamoStore, err := store.New(ctx, settings)
		if err != nil {
			slog.Error("[Main] Failed to initialize result store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		resultStore = dynamoStore
	}

	w := worker.New(service, consumer, producer, resultStore)
	if err := w.Run(ctx); err != nil {
		slog.Error("[Main] Worker stopped with error", slog.String("error", err.Error()))
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
