package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/kafka"
	"github.com/Jaxki97/lussoautostudio/infras/otel"
	"github.com/Jaxki97/lussoautostudio/internal/domains/reservation/model"
	"github.com/Jaxki97/lussoautostudio/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	EventCreated   = "reservation.created"
	EventCancelled = "reservation.cancelled"
	EventMoved     = "reservation.moved"
)

// Notifier publishes reservation lifecycle events for downstream consumers
// (customer email, admin alerts). Delivery is best effort: a failed
// notification is logged and swallowed, never surfaced as a booking failure.
type Notifier interface {
	Notify(ctx context.Context, event string, reservation model.Reservation)
}

// Event is the wire payload published for each lifecycle transition.
type Event struct {
	Event     string `json:"event"`
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Service   string `json:"service"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Vehicle   string `json:"vehicle"`
	Status    string `json:"status"`
}

type kafkaNotifier struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (n *kafkaNotifier) Notify(ctx context.Context, eventType string, reservation model.Reservation) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelNotifierScopeName, constant.OtelNotifierScopeName+".Notify")
	defer scope.End()

	payload := Event{
		Event:     eventType,
		ID:        reservation.ID,
		Date:      reservation.Date.UTC().Format(constant.DayFormat),
		StartHour: reservation.StartHour,
		EndHour:   reservation.EndHour,
		Service:   reservation.Service,
		Name:      reservation.Name,
		Phone:     reservation.Phone,
		Vehicle:   reservation.Vehicle,
		Status:    reservation.Status,
	}

	err := n.client.SendMessages(ctx, n.cfg.Kafka.Topic, kafka.Message{
		Key:   reservation.ID,
		Value: payload,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", eventType).Str("reservation", reservation.ID).Msg("failed to publish reservation event")
	}
}
