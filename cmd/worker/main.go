package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/kafka"
	"github.com/Jaxki97/lussoautostudio/internal/notifier"
	"github.com/Jaxki97/lussoautostudio/shared/logger"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker tails the reservation event topic and dispatches customer
// notifications. Delivery here is decoupled from the booking write path; the
// API stays up even when this process is down, and events are picked up once
// it returns.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	client := kafka.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Received shutdown signal, stopping consumer.")
		cancel()
	}()

	log.Info().Str("topic", cfg.Kafka.Topic).Msg("Starting reservation event worker.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, handleEvent)
}

func handleEvent(msg kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[notifier.Event](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode reservation event")

		return
	}

	event, ok := decoded.Value.(notifier.Event)
	if !ok {
		log.Error().Str("key", decoded.Key).Msg("unexpected reservation event payload")

		return
	}

	// TODO: hook up the SMS gateway once the studio picks a provider.
	log.Info().
		Str("event", event.Event).
		Str("reservation", event.ID).
		Str("date", event.Date).
		Int("start_hour", event.StartHour).
		Str("customer", event.Name).
		Msg("reservation event received")
}
