package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-shop/internal/analytics"
	"go-shop/pkg/clickhouse"
	"go-shop/pkg/config"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/rabbitmq"
)

const queueName = "analytics.order_events"

func main() {
	// Load configuration
	cfg := config.LoadForApp("ANALYTICS")

	// Initialize logger
	log := logger.New("analytics", cfg.LogLevel)
	defer log.Sync()

	log.Info("starting analytics worker")

	// Connect to ClickHouse
	chClient, err := clickhouse.NewClient(clickhouse.Config{
		Addr:     cfg.ClickHouseAddr,
		Database: cfg.ClickHouseDatabase,
		Username: cfg.ClickHouseUser,
		Password: cfg.ClickHousePassword,
	})
	if err != nil {
		log.Fatal("failed to connect to ClickHouse: " + err.Error())
	}
	defer chClient.Close()
	log.Info("connected to ClickHouse")

	// Connect to RabbitMQ; unlike the web apps the worker is useless
	// without it
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ: " + err.Error())
	}
	defer rabbitConn.Close()

	consumer, err := rabbitmq.NewConsumer(
		rabbitConn,
		queueName,
		events.ExchangeOrders,
		[]string{
			events.RoutingKeyOrderPlaced,
			events.RoutingKeyOrderStatusChanged,
			events.RoutingKeyOrderRated,
		},
		cfg.RabbitMQPrefetch,
		log,
	)
	if err != nil {
		log.Fatal("failed to create consumer: " + err.Error())
	}

	worker := analytics.NewWorker(chClient, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Consume(ctx, worker.Handle); err != nil {
		log.Fatal("failed to start consuming: " + err.Error())
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()
	log.Info("worker stopped")
}
