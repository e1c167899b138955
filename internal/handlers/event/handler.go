// Package event consumes the accessory desk topic and applies rental returns.
package event

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"sportshub/config"
	"sportshub/infras/kafka"
	"sportshub/infras/otel"
	"sportshub/internal/domains/reservation/model/dto"
	"sportshub/internal/domains/reservation/service"
	"sportshub/shared"
	"sportshub/shared/constant"
	"sportshub/shared/failure"
	"sportshub/shared/model"
)

// DeskActor is recorded as modified_by on returns reported by the desk.
const DeskActor = "accessory-desk"

type Handler struct {
	service service.Reservation
	kafka   kafka.Client
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Reservation, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		kafka:   kafkaClient,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run blocks until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	topic := h.cfg.Kafka.Topics.RentalReturned

	log.Info().Str("topic", topic).Str("group", h.cfg.Kafka.ConsumerGroup).Msg("Consuming rental returns.")

	return h.kafka.Consume(ctx, h.cfg.Kafka.ConsumerGroup, topic, h.HandleRentalReturned) //nolint:wrapcheck
}

// HandleRentalReturned moves the rental to returned on behalf of its club.
// Only infrastructure errors are returned, so the consumer retries those and
// commits past malformed or already applied messages.
func (h *Handler) HandleRentalReturned(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleRentalReturned")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if eventType := kafka.EventType(message); eventType != "" && eventType != constant.EventAccessoryReturned {
		log.Debug().Str("event", eventType).Msg("skipping unrelated event")

		return nil
	}

	evt, err := kafka.Decode[dto.RentalReturned](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping malformed rental return")

		return nil
	}

	if evt.ReservationID == "" || evt.ClubID == "" {
		log.Error().Str("key", string(message.Key)).Msg("dropping rental return without reservation or club")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"reservation.id": evt.ReservationID,
		"club.id":        evt.ClubID,
	})

	ctx = shared.WithRequester(ctx, model.Requester{ID: DeskActor, Role: constant.RoleClub, ClubID: evt.ClubID})

	if _, err = h.service.Return(ctx, evt.ReservationID); err != nil {
		if failure.GetCode(err) >= http.StatusInternalServerError {
			return err
		}

		log.Warn().
			Err(err).
			Str("reservation_id", evt.ReservationID).
			Str("reason", failure.GetReason(err)).
			Msg("rental return rejected")

		return nil
	}

	log.Info().Str("reservation_id", evt.ReservationID).Msg("rental returned")

	return nil
}
