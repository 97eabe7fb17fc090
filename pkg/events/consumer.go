package events

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

const (
	NumberConsumers = 5
	BatchSize       = 20
)

// ReceivedEvent is the consumer side of ctdf.Event with the body left undecoded
type ReceivedEvent struct {
	Type      ctdf.EventType
	Timestamp string
	Body      json.RawMessage
}

type Handler func(event *ReceivedEvent) error

type BatchConsumer struct {
	Handler Handler
}

func NewBatchConsumer(handler Handler) *BatchConsumer {
	if handler == nil {
		handler = LogEvent
	}

	return &BatchConsumer{Handler: handler}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		var event ReceivedEvent
		if err := json.Unmarshal([]byte(delivery.Payload()), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject event")
			}
			continue
		}

		if err := consumer.Handler(&event); err != nil {
			log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to handle event")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject event")
			}
			continue
		}

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Msg("Failed to ack event")
		}
	}
}

func LogEvent(event *ReceivedEvent) error {
	log.Info().
		Str("type", string(event.Type)).
		Str("timestamp", event.Timestamp).
		Int("bytes", len(event.Body)).
		Msg("Received event")

	if log.Logger.GetLevel() <= zerolog.DebugLevel {
		var body interface{}
		if err := json.Unmarshal(event.Body, &body); err == nil {
			pretty.Println(body)
		}
	}

	return nil
}
