package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"brewery/internal/app"
	"brewery/internal/config"
	"brewery/internal/logging"
	"brewery/internal/services"
	"brewery/pkg/rabbitmq"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("brewery stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// --- Beer events ---
	// RABBITMQ_URL left empty runs the service without an event stream.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Warn("error closing RabbitMQ client", "error", err)
			}
		}()

		if err := mqClient.Consume(ctx, auditBeerEvent(logger)); err != nil {
			return fmt.Errorf("failed to start RabbitMQ consumer: %w", err)
		}
		publisher = mqClient
	}

	// --- HTTP application ---
	application, err := app.New(ctx, cfg, logger, publisher)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("error closing database", "error", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.AppPort, "driver", cfg.DatabaseDriver)
		serverErr <- application.Fiber.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	if err := application.Fiber.ShutdownWithTimeout(config.ShutdownTimeout); err != nil {
		return fmt.Errorf("error during Fiber shutdown: %w", err)
	}
	return nil
}

// auditBeerEvent logs every beer lifecycle event read from the queue.
// Undecodable payloads are rejected so they are requeued once.
func auditBeerEvent(logger *slog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.BeerEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode beer event %s: %w", msg.MessageId, err)
		}
		logger.Info("beer event",
			"type", event.Type,
			"beer_id", event.BeerID,
			"upc", event.Upc,
			"occurred_at", event.OccurredAt,
			"message_id", msg.MessageId,
			"routing_key", msg.RoutingKey,
		)
		return nil
	}
}
