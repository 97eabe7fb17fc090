package consumer

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/redis_client"
)

type RedisConsumer struct {
	QueueName string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer

	// StatsListen serves queue stats, health and Metrics when set
	StatsListen string
	Metrics     http.Handler
}

func (c *RedisConsumer) Setup() error {
	if err := c.startConsumers(); err != nil {
		return err
	}

	if c.StatsListen != "" {
		go c.startStatsServer()
	}

	return nil
}

func (c *RedisConsumer) startConsumers() error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := redis_client.QueueConnection.OpenQueue(c.QueueName)
	if err != nil {
		return fmt.Errorf("opening queue %s: %w", c.QueueName, err)
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return fmt.Errorf("consuming queue %s: %w", c.QueueName, err)
	}

	for i := 0; i < c.NumberConsumers; i++ {
		log.Info().Msgf("Starting %s consumer %d", c.QueueName, i)

		if _, err := queue.AddBatchConsumer(fmt.Sprintf("%s-%d", c.QueueName, i), int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return fmt.Errorf("adding consumer to %s: %w", c.QueueName, err)
		}
	}

	return nil
}

func (c *RedisConsumer) startStatsServer() {
	mux := http.NewServeMux()

	endpoint := fmt.Sprintf("/%s/stats", c.QueueName)
	mux.Handle(endpoint, NewStatsHandler(redis_client.QueueConnection))
	mux.Handle("/health", NewHealthHandler())
	if c.Metrics != nil {
		mux.Handle("/metrics", c.Metrics)
	}

	log.Info().Msgf("Stats server listening on http://%s%s", c.StatsListen, endpoint)
	if err := http.ListenAndServe(c.StatsListen, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Stats server stopped")
	}
}
