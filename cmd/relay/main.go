package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/23f3000115/agency-os/config"
	"github.com/23f3000115/agency-os/module/core"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg, "agency-relay")
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg, cfg.MQTTClientID+"-relay", logger)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	relay, err := core.BuildRelay(db, amqpConn, mqttClient, logger)
	if err != nil {
		log.Fatalf("relay: %v", err)
	}
	defer func() { _ = relay.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := relay.Run(ctx); err != nil {
		logger.Error("relay stopped", "error", err)
		return
	}
	logger.Info("shutting down")
}
