package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"bookit/internal/notifications/worker"
	"bookit/pkg/config"
	"bookit/pkg/kafka"
	kafka_config "bookit/pkg/kafka/config"
)

const (
	ServiceName   = "notifier"
	ConsumerGroup = "booking-notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	w := worker.New(cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.EventsTopic, ConsumerGroup, cfg.EventsTopic+".dlq", w.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	cfg.Log.Info("Notifier started", "topic", cfg.EventsTopic, "group", ConsumerGroup)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
