package events

import (
	"encoding/json"
	"fmt"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/ctdf"
)

const QueueName = "events"

type PublishObserver interface {
	EventPublished(err error)
}

type Publisher struct {
	Queue    rmq.Queue
	Observer PublishObserver
}

func NewPublisher(connection rmq.Connection) (*Publisher, error) {
	queue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, fmt.Errorf("opening %s queue: %w", QueueName, err)
	}

	return &Publisher{Queue: queue}, nil
}

func (p *Publisher) Publish(event *ctdf.Event) error {
	eventBytes, err := json.Marshal(event)
	if err == nil {
		err = p.Queue.PublishBytes(eventBytes)
	}

	if p.Observer != nil {
		p.Observer.EventPublished(err)
	}

	if err != nil {
		return fmt.Errorf("publishing %s event: %w", event.Type, err)
	}

	log.Debug().Str("type", string(event.Type)).Int("bytes", len(eventBytes)).Msg("Published event")

	return nil
}
